package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sgladkov/storefront/internal/core/domain"
	"github.com/sgladkov/storefront/internal/core/port"
)

var productColumns = []string{
	"id", "name", "description", "price", "offer_price", "images",
	"brand", "color", "category", "stock", "created_at", "updated_at",
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := domain.Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.OfferPrice,
		&product.Images,
		&product.Brand,
		&product.Color,
		&product.Category,
		&product.Stock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Insert("products").
		Columns(productColumns...).
		Values(product.ID, product.Name, product.Description, product.Price,
			product.OfferPrice, product.Images, product.Brand, product.Color,
			product.Category, product.Stock, product.CreatedAt, product.UpdatedAt)

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domain.ErrConflictingData
		}
		return nil, err
	}

	return product, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("name", product.Name).
		Set("description", product.Description).
		Set("price", product.Price).
		Set("offer_price", product.OfferPrice).
		Set("images", product.Images).
		Set("brand", product.Brand).
		Set("color", product.Color).
		Set("category", product.Category).
		Set("stock", product.Stock).
		Set("updated_at", product.UpdatedAt).
		Where(sq.Eq{"id": product.ID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.ErrDataNotFound
	}

	return product, nil
}

func (r *Repository) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	statement := r.db.QueryBuilder.
		Delete("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return domain.ErrConflictingData
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}

	return nil
}

func (r *Repository) ReadProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	product, err := scanProduct(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	return product, nil
}

func (r *Repository) ListProducts(ctx context.Context, filter port.ProductFilter) ([]*domain.Product, error) {
	statement := r.db.QueryBuilder.
		Select(productColumns...).
		From("products").
		OrderBy("created_at DESC")

	if filter.Category != "" {
		statement = statement.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Brand != "" {
		statement = statement.Where(sq.ILike{"brand": "%" + filter.Brand + "%"})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		statement = statement.Where(sq.Or{
			sq.ILike{"name": pattern},
			sq.ILike{"description": pattern},
		})
	}
	if filter.MinPrice.Valid {
		statement = statement.Where(sq.GtOrEq{"price": filter.MinPrice.Decimal})
	}
	if filter.MaxPrice.Valid {
		statement = statement.Where(sq.LtOrEq{"price": filter.MaxPrice.Decimal})
	}

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

// DecrementStock is the inventory ledger's conditional decrement: one update
// that only applies when enough stock remains, so concurrent checkouts can
// never drive stock negative.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("stock", sq.Expr("stock - ?", quantity)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": productID}).
		Where(sq.GtOrEq{"stock": quantity})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		product, err := r.ReadProduct(ctx, productID)
		if err != nil {
			return err
		}
		return &domain.InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}

	return nil
}

// IncrementStock restocks a product, used to compensate a failed checkout.
func (r *Repository) IncrementStock(ctx context.Context, productID uuid.UUID, quantity int64) error {
	statement := r.db.QueryBuilder.
		Update("products").
		Set("stock", sq.Expr("stock + ?", quantity)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrDataNotFound, productID)
	}

	return nil
}
