package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"yemalin/internal/domain"
)

// SQLOrders OrderRepository поверх SQLStore
type SQLOrders struct{ s *SQLStore }

func NewSQLOrders(s *SQLStore) *SQLOrders { return &SQLOrders{s: s} }

var _ OrderRepository = (*SQLOrders)(nil)

const orderColumns = `id, user_id, order_number, status, payment_status, subtotal, shipping_cost, tax, total,
	shipping_name, shipping_email, shipping_phone, shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country,
	payment_type, card_last4, card_holder, charge_ref, tracking_number, shipped_at, delivered_at, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*domain.Order, error) {
	var (
		o         domain.Order
		userID    sql.NullString
		status    string
		payStatus string
		shipped   sql.NullTime
		delivered sql.NullTime
	)
	err := row.Scan(&o.ID, &userID, &o.OrderNumber, &status, &payStatus,
		&o.Subtotal, &o.ShippingCost, &o.Tax, &o.Total,
		&o.Shipping.Name, &o.Shipping.Email, &o.Shipping.Phone, &o.Shipping.Address,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.Zip, &o.Shipping.Country,
		&o.Payment.Type, &o.Payment.CardLast4, &o.Payment.CardHolder,
		&o.ChargeRef, &o.TrackingNumber, &shipped, &delivered, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o.UserID = stringPtr(userID)
	o.Status = domain.OrderStatus(status)
	o.PaymentStatus = domain.PaymentStatus(payStatus)
	o.ShippedAt = timePtr(shipped)
	o.DeliveredAt = timePtr(delivered)
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	o.Items = []domain.OrderItem{}
	return &o, nil
}

// Create inserts the order header and its item snapshots atomically.
func (r *SQLOrders) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.CreatedAt = now()
	o.UpdatedAt = o.CreatedAt
	return r.s.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := r.s.exec(ctx, `INSERT INTO orders (`+orderColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, nullString(o.UserID), o.OrderNumber, string(o.Status), string(o.PaymentStatus),
			o.Subtotal, o.ShippingCost, o.Tax, o.Total,
			o.Shipping.Name, o.Shipping.Email, o.Shipping.Phone, o.Shipping.Address,
			o.Shipping.City, o.Shipping.State, o.Shipping.Zip, o.Shipping.Country,
			o.Payment.Type, o.Payment.CardLast4, o.Payment.CardHolder,
			o.ChargeRef, o.TrackingNumber, nullTime(o.ShippedAt), nullTime(o.DeliveredAt), o.CreatedAt, o.UpdatedAt)
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if err != nil {
			return err
		}
		for i := range o.Items {
			it := &o.Items[i]
			if it.ID == "" {
				it.ID = uuid.NewString()
			}
			it.OrderID = o.ID
			if _, err := r.s.exec(ctx, `INSERT INTO order_items
				(id, order_id, position, product_id, product_name, product_image, size, quantity, price, subtotal)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				it.ID, it.OrderID, i, it.ProductID, it.ProductName, it.ProductImage,
				it.Size, it.Quantity, it.Price, it.Subtotal); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID locks the order row inside a transaction, so two concurrent status
// changes of the same order are serialized.
func (r *SQLOrders) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.s.queryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`+r.s.forUpdate(ctx), id))
	if err != nil {
		return nil, err
	}
	return o, r.loadItems(ctx, []*domain.Order{o})
}

func (r *SQLOrders) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	o, err := scanOrder(r.s.queryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, number))
	if err != nil {
		return nil, err
	}
	return o, r.loadItems(ctx, []*domain.Order{o})
}

func (r *SQLOrders) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
}

func (r *SQLOrders) List(ctx context.Context, limit, offset int) ([]domain.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
}

func (r *SQLOrders) list(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.s.query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	var ptrs []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()
	if err := r.loadItems(ctx, ptrs); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(ptrs))
	for _, o := range ptrs {
		out = append(out, *o)
	}
	return out, nil
}

func (r *SQLOrders) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]any, len(orders))
	index := make(map[string]*domain.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = o
	}
	rows, err := r.s.query(ctx, `SELECT id, order_id, product_id, product_name, product_image, size, quantity, price, subtotal
		FROM order_items WHERE order_id IN (`+placeholders(len(ids))+`) ORDER BY order_id, position`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.ProductImage,
			&it.Size, &it.Quantity, &it.Price, &it.Subtotal); err != nil {
			return err
		}
		if o, ok := index[it.OrderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// Update writes the mutable header fields. Items and amounts are immutable after creation.
func (r *SQLOrders) Update(ctx context.Context, o *domain.Order) error {
	o.UpdatedAt = now()
	res, err := r.s.exec(ctx, `UPDATE orders
		SET status = ?, payment_status = ?, charge_ref = ?, tracking_number = ?, shipped_at = ?, delivered_at = ?, updated_at = ?
		WHERE id = ?`,
		string(o.Status), string(o.PaymentStatus), o.ChargeRef, o.TrackingNumber,
		nullTime(o.ShippedAt), nullTime(o.DeliveredAt), o.UpdatedAt, o.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates with portable CASE sums (MySQL has no FILTER clause).
func (r *SQLOrders) Stats(ctx context.Context) (domain.OrderStats, error) {
	var st domain.OrderStats
	err := r.s.queryRow(ctx, `SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'processing' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'shipped' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'delivered' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN payment_status = 'paid' THEN total ELSE 0 END), 0)
		FROM orders`).Scan(&st.Total, &st.Pending, &st.Processing, &st.Shipped, &st.Delivered,
		&st.Cancelled, &st.PaidOrders, &st.TotalRevenue)
	if err != nil {
		return domain.OrderStats{}, err
	}
	averageOrderValue(&st)
	return st, nil
}
