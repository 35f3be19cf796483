package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/sgladkov/storefront/internal/core/domain"
)

func (r *Repository) ListCart(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	columns := []string{"c.product_id", "c.quantity"}
	for _, col := range productColumns {
		columns = append(columns, "p."+col)
	}

	statement := r.db.QueryBuilder.
		Select(columns...).
		From("cart_items c").
		Join("products p ON p.id = c.product_id").
		Where(sq.Eq{"c.user_id": userID}).
		OrderBy("p.name")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		item := domain.CartItem{}
		product := domain.Product{}
		err := rows.Scan(
			&item.ProductID,
			&item.Quantity,
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
		item.Product = &product
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *Repository) AddCartItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) error {
	statement := r.db.QueryBuilder.
		Insert("cart_items").
		Columns("user_id", "product_id", "quantity").
		Values(userID, productID, quantity).
		Suffix("ON CONFLICT (user_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity")

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) SetCartQuantity(ctx context.Context, userID uuid.UUID, productID uuid.UUID, quantity int64) error {
	statement := r.db.QueryBuilder.
		Update("cart_items").
		Set("quantity", quantity).
		Where(sq.Eq{"user_id": userID, "product_id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDataNotFound
	}

	return nil
}

func (r *Repository) RemoveCartItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error {
	statement := r.db.QueryBuilder.
		Delete("cart_items").
		Where(sq.Eq{"user_id": userID, "product_id": productID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *Repository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	statement := r.db.QueryBuilder.
		Delete("cart_items").
		Where(sq.Eq{"user_id": userID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
