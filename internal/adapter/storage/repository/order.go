package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sgladkov/storefront/internal/core/domain"
)

var orderColumns = []string{
	"id", "user_id", "address", "city", "postal_code", "country",
	"payment_method", "total_price", "is_paid", "paid_at",
	"payment_id", "payment_status", "payment_update_time", "payment_email",
	"is_delivered", "delivered_at", "status", "created_at", "updated_at",
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	order := domain.Order{}
	var paymentID, paymentStatus, paymentUpdateTime, paymentEmail *string

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.ShippingAddress.Address,
		&order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode,
		&order.ShippingAddress.Country,
		&order.PaymentMethod,
		&order.TotalPrice,
		&order.IsPaid,
		&order.PaidAt,
		&paymentID,
		&paymentStatus,
		&paymentUpdateTime,
		&paymentEmail,
		&order.IsDelivered,
		&order.DeliveredAt,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentID != nil {
		order.PaymentResult = &domain.PaymentResult{ID: *paymentID}
		if paymentStatus != nil {
			order.PaymentResult.Status = *paymentStatus
		}
		if paymentUpdateTime != nil {
			order.PaymentResult.UpdateTime = *paymentUpdateTime
		}
		if paymentEmail != nil {
			order.PaymentResult.EmailAddress = *paymentEmail
		}
	}

	return &order, nil
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		orderSt := r.db.QueryBuilder.
			Insert("orders").
			Columns("id", "user_id", "address", "city", "postal_code", "country",
				"payment_method", "total_price", "is_paid", "is_delivered",
				"status", "created_at", "updated_at").
			Values(order.ID, order.UserID,
				order.ShippingAddress.Address, order.ShippingAddress.City,
				order.ShippingAddress.PostalCode, order.ShippingAddress.Country,
				order.PaymentMethod, order.TotalPrice, order.IsPaid,
				order.IsDelivered, order.Status, order.CreatedAt, order.UpdatedAt)

		sql, args, err := orderSt.ToSql()
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		itemsSt := r.db.QueryBuilder.
			Insert("order_items").
			Columns("order_id", "product_id", "quantity")
		for _, item := range order.Items {
			itemsSt = itemsSt.Values(order.ID, item.ProductID, item.Quantity)
		}

		sql, args, err = itemsSt.ToSql()
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// DeleteOrder removes an order record. Orders are never deleted through the
// normal flow; this only serves checkout compensation.
func (r *Repository) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	statement := r.db.QueryBuilder.
		Delete("orders").
		Where(sq.Eq{"id": orderID})

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

func (r *Repository) ReadOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	order, err := scanOrder(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrDataNotFound
		}
		return nil, err
	}

	items, err := r.loadOrderItems(ctx, []uuid.UUID{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

func (r *Repository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachItems(ctx, list)
}

// ListOrders returns every order with the owning user's id and name
// populated, for the admin view.
func (r *Repository) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	columns := make([]string, 0, len(orderColumns)+1)
	for _, c := range orderColumns {
		columns = append(columns, "o."+c)
	}
	columns = append(columns, "u.name")

	statement := r.db.QueryBuilder.
		Select(columns...).
		From("orders o").
		Join("users u ON u.id = o.user_id").
		OrderBy("o.created_at DESC")

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]*domain.Order, 0)
	for rows.Next() {
		order := domain.Order{}
		var paymentID, paymentStatus, paymentUpdateTime, paymentEmail *string
		var userName string

		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.ShippingAddress.Address,
			&order.ShippingAddress.City,
			&order.ShippingAddress.PostalCode,
			&order.ShippingAddress.Country,
			&order.PaymentMethod,
			&order.TotalPrice,
			&order.IsPaid,
			&order.PaidAt,
			&paymentID,
			&paymentStatus,
			&paymentUpdateTime,
			&paymentEmail,
			&order.IsDelivered,
			&order.DeliveredAt,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
			&userName,
		)
		if err != nil {
			return nil, err
		}

		if paymentID != nil {
			order.PaymentResult = &domain.PaymentResult{ID: *paymentID}
			if paymentStatus != nil {
				order.PaymentResult.Status = *paymentStatus
			}
			if paymentUpdateTime != nil {
				order.PaymentResult.UpdateTime = *paymentUpdateTime
			}
			if paymentEmail != nil {
				order.PaymentResult.EmailAddress = *paymentEmail
			}
		}
		order.User = &domain.User{ID: order.UserID, Name: userName}

		list = append(list, &order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return r.attachItems(ctx, list)
}

// MarkOrderPaid applies the first payment confirmation. The update is
// conditional on is_paid being false, so a duplicate confirmation racing this
// one leaves paid_at and the payment result untouched.
func (r *Repository) MarkOrderPaid(ctx context.Context, orderID uuid.UUID, result domain.PaymentResult) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("is_paid", true).
		Set("paid_at", time.Now()).
		Set("status", domain.OrderStatusPaid).
		Set("payment_id", result.ID).
		Set("payment_status", result.Status).
		Set("payment_update_time", result.UpdateTime).
		Set("payment_email", result.EmailAddress).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID, "is_paid": false})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return nil, err
	}

	// Zero rows affected means the order was missing or already paid; either
	// way the re-read reports the authoritative state.
	return r.ReadOrder(ctx, orderID)
}

func (r *Repository) MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	statement := r.db.QueryBuilder.
		Update("orders").
		Set("is_delivered", true).
		Set("delivered_at", time.Now()).
		Set("status", domain.OrderStatusDelivered).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": orderID})

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

	return r.ReadOrder(ctx, orderID)
}

func (r *Repository) attachItems(ctx context.Context, orders []*domain.Order) ([]*domain.Order, error) {
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	items, err := r.loadOrderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
	}

	return orders, nil
}

func (r *Repository) loadOrderItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]domain.OrderItem, error) {
	statement := r.db.QueryBuilder.
		Select("order_id", "product_id", "quantity").
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs})

	sql, args, err := statement.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]domain.OrderItem)
	for rows.Next() {
		var orderID uuid.UUID
		item := domain.OrderItem{}
		if err := rows.Scan(&orderID, &item.ProductID, &item.Quantity); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}

	return items, rows.Err()
}
