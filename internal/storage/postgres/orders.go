package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

type orderRepository struct {
	q querier
}

type orderItemRepository struct {
	q querier
}

const orderColumns = `id, user_id, ordered, start_date, ordered_date, address_id, payment_id, coupon_id`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Ordered, &o.StartDate, &o.OrderedDate, &o.AddressID, &o.PaymentID, &o.CouponID); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) GetOpen(ctx context.Context, userID int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND NOT ordered`
	order, err := scanOrder(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) LockOpen(ctx context.Context, userID int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND NOT ordered FOR UPDATE`
	order, err := scanOrder(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) CreateOpen(ctx context.Context, userID int64) (*model.Order, bool, error) {
	const query = `INSERT INTO orders (user_id) VALUES ($1)
                   ON CONFLICT (user_id) WHERE NOT ordered DO NOTHING
                   RETURNING id, start_date`
	order := model.Order{UserID: userID}
	err := r.q.QueryRow(ctx, query, userID).Scan(&order.ID, &order.StartDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.LockOpen(ctx, userID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &order, true, nil
}

func (r *orderRepository) LockByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	order, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (r *orderRepository) ListCompleted(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 AND ordered ORDER BY ordered_date DESC`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) SetAddress(ctx context.Context, orderID, addressID int64) error {
	return r.exec(ctx, `UPDATE orders SET address_id=$1 WHERE id=$2`, addressID, orderID)
}

func (r *orderRepository) SetCoupon(ctx context.Context, orderID, couponID int64) error {
	return r.exec(ctx, `UPDATE orders SET coupon_id=$1 WHERE id=$2`, couponID, orderID)
}

func (r *orderRepository) Complete(ctx context.Context, orderID, paymentID int64, at time.Time) error {
	const completeOrder = `UPDATE orders SET ordered=TRUE, payment_id=$1, ordered_date=$2 WHERE id=$3 AND NOT ordered`
	if err := r.exec(ctx, completeOrder, paymentID, at, orderID); err != nil {
		return err
	}
	const completeItems = `UPDATE order_items SET ordered=TRUE WHERE order_id=$1`
	if _, err := r.q.Exec(ctx, completeItems, orderID); err != nil {
		return err
	}
	return nil
}

// exec runs a single-row update and reports ErrNotFound when nothing changed.
func (r *orderRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- OrderItemRepository implementation ---

func (r *orderItemRepository) GetOrCreate(ctx context.Context, userID, itemID int64) (*model.OrderItem, bool, error) {
	const query = `INSERT INTO order_items (user_id, item_id) VALUES ($1, $2)
                   ON CONFLICT (user_id, item_id) WHERE NOT ordered DO NOTHING
                   RETURNING id`
	oi := model.OrderItem{UserID: userID, ItemID: itemID, Quantity: 1}
	err := r.q.QueryRow(ctx, query, userID, itemID).Scan(&oi.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, err := r.FindOpen(ctx, userID, itemID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return &oi, true, nil
}

func (r *orderItemRepository) FindOpen(ctx context.Context, userID, itemID int64) (*model.OrderItem, error) {
	const query = `SELECT id, user_id, item_id, ordered, quantity, order_id
                   FROM order_items WHERE user_id=$1 AND item_id=$2 AND NOT ordered`
	var (
		oi      model.OrderItem
		orderID *int64
	)
	err := r.q.QueryRow(ctx, query, userID, itemID).Scan(&oi.ID, &oi.UserID, &oi.ItemID, &oi.Ordered, &oi.Quantity, &orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if orderID != nil {
		oi.OrderID = *orderID
	}
	return &oi, nil
}

func (r *orderItemRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT oi.id, oi.user_id, oi.item_id, oi.ordered, oi.quantity,
                          i.title, i.slug, i.description, i.price_cents
                   FROM order_items oi JOIN items i ON i.id = oi.item_id
                   WHERE oi.order_id=$1 ORDER BY oi.id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.OrderItem
	for rows.Next() {
		var (
			oi    model.OrderItem
			cents int64
		)
		if err := rows.Scan(&oi.ID, &oi.UserID, &oi.ItemID, &oi.Ordered, &oi.Quantity,
			&oi.Item.Title, &oi.Item.Slug, &oi.Item.Description, &cents); err != nil {
			return nil, err
		}
		oi.OrderID = orderID
		oi.Item.ID = oi.ItemID
		oi.Item.Price = model.FromMinorUnits(cents)
		result = append(result, oi)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderItemRepository) Attach(ctx context.Context, orderItemID, orderID int64) error {
	return r.exec(ctx, `UPDATE order_items SET order_id=$1 WHERE id=$2`, orderID, orderItemID)
}

func (r *orderItemRepository) SetQuantity(ctx context.Context, orderItemID int64, quantity int) error {
	return r.exec(ctx, `UPDATE order_items SET quantity=$1 WHERE id=$2`, quantity, orderItemID)
}

func (r *orderItemRepository) Delete(ctx context.Context, orderItemID int64) error {
	return r.exec(ctx, `DELETE FROM order_items WHERE id=$1`, orderItemID)
}

func (r *orderItemRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
