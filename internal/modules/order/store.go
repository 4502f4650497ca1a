// README: Order store backed by PostgreSQL; order creation is one transaction.
package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"tiffin/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// CreateOrder inserts the order and all its items atomically. Inside the
// transaction every referenced menu item is re-read with a shared lock and
// compared against the quoted price and availability, so an item disabled
// or re-priced between pricing and commit aborts the whole order
// (ErrMenuChanged) instead of persisting a stale total. An order is never
// visible without its items.
func (s *Store) CreateOrder(ctx context.Context, o *Order, items []OrderItem) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := recheckItems(ctx, tx, items); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, number, user_id, hotel_id, status, status_version,
			payment_method, payment_status, delivery_address, delivery_notes, delivery_time,
			subtotal, delivery_fee, total_amount, currency, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $16
		)`,
		string(o.ID), o.Number, string(o.UserID), string(o.HotelID), string(o.Status), o.StatusVersion,
		string(o.PaymentMethod), string(o.PaymentStatus), o.DeliveryAddress, o.DeliveryNotes, o.DeliveryTime,
		o.Subtotal.Amount, o.DeliveryFee.Amount, o.TotalAmount.Amount, o.TotalAmount.Currency, o.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, it := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			string(o.ID), string(it.MenuItemID), it.Name, it.Quantity, it.UnitPrice.Amount, it.Subtotal.Amount,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_events (order_id, from_status, to_status, actor_role, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(o.ID), string(StatusNone), string(o.Status), "user", string(o.UserID), o.CreatedAt,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// recheckItems compares the live menu rows against the quote inside the
// insert transaction. FOR SHARE blocks a concurrent availability or price
// update until this order commits.
func recheckItems(ctx context.Context, tx pgx.Tx, items []OrderItem) error {
	ids := make([]string, len(items))
	want := make(map[types.ID]OrderItem, len(items))
	for i, it := range items {
		ids[i] = string(it.MenuItemID)
		want[it.MenuItemID] = it
	}

	rows, err := tx.Query(ctx, `
		SELECT id, price, is_available FROM menu_items WHERE id = ANY($1) FOR SHARE`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var id types.ID
		var price int64
		var available bool
		if err := rows.Scan(&id, &price, &available); err != nil {
			return err
		}
		it, ok := want[id]
		if !ok {
			continue
		}
		if !available || price != it.UnitPrice.Amount {
			return ErrMenuChanged
		}
		seen++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if seen != len(want) {
		return ErrMenuChanged
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Order, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, number, user_id, hotel_id, status, status_version,
		       payment_method, payment_status, delivery_address, delivery_notes, delivery_time,
		       subtotal, delivery_fee, total_amount, currency, created_at, updated_at, cancelled_at
		FROM orders
		WHERE id = $1`, string(id),
	)

	var o Order
	var notes *string
	var deliveryTime, cancelledAt *time.Time
	err := row.Scan(
		&o.ID, &o.Number, &o.UserID, &o.HotelID, &o.Status, &o.StatusVersion,
		&o.PaymentMethod, &o.PaymentStatus, &o.DeliveryAddress, &notes, &deliveryTime,
		&o.Subtotal.Amount, &o.DeliveryFee.Amount, &o.TotalAmount.Amount, &o.TotalAmount.Currency,
		&o.CreatedAt, &o.UpdatedAt, &cancelledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.DeliveryNotes = notes
	o.DeliveryTime = deliveryTime
	o.CancelledAt = cancelledAt
	o.Subtotal.Currency = o.TotalAmount.Currency
	o.DeliveryFee.Currency = o.TotalAmount.Currency
	return &o, nil
}

func (s *Store) Items(ctx context.Context, orderID types.ID) ([]OrderItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT order_id, menu_item_id, name, quantity, unit_price, subtotal
		FROM order_items
		WHERE order_id = $1`, string(orderID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.OrderID, &it.MenuItemID, &it.Name, &it.Quantity, &it.UnitPrice.Amount, &it.Subtotal.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus applies one lifecycle transition with an optimistic
// concurrency check; it reports false when another writer moved the order
// first. A non-nil paymentStatus is applied in the same statement.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status, version int, paymentStatus *PaymentStatus) (bool, error) {
	var pay *string
	if paymentStatus != nil {
		v := string(*paymentStatus)
		pay = &v
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE orders
		SET status = $1,
		    status_version = status_version + 1,
		    payment_status = COALESCE($2, payment_status),
		    cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END,
		    updated_at = NOW()
		WHERE id = $3 AND status = $4 AND status_version = $5`,
		string(to),
		pay,
		string(id),
		string(from),
		version,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (s *Store) AppendEvent(ctx context.Context, e *Event) error {
	var actor *string
	if e.ActorID != nil {
		v := string(*e.ActorID)
		actor = &v
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_status_events (order_id, from_status, to_status, actor_role, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		string(e.OrderID), string(e.FromStatus), string(e.ToStatus), e.ActorRole, actor, e.CreatedAt,
	)
	return err
}

// InsertReview enforces at most one review per (order, user) via the
// table's primary key.
func (s *Store) InsertReview(ctx context.Context, r *Review) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO order_reviews (order_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		string(r.OrderID), string(r.UserID), r.Rating, r.Comment, r.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrAlreadyExists
	}
	return err
}
