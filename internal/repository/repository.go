package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
)

var (
	// ErrNotFound возвращается, когда сущность не найдена
	ErrNotFound = errors.New("not found")
	// ErrDuplicate unique key (email, order number) already taken
	ErrDuplicate = errors.New("duplicate")
	// ErrInsufficientStock stock change would make a counter negative
	ErrInsufficientStock = errors.New("insufficient stock")
)

// UserRepository credential store
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	TouchLogin(ctx context.Context, id string, at time.Time) error
	// ListVIP users holding any tier, biggest spenders first.
	ListVIP(ctx context.Context) ([]domain.User, error)
}

// ProductRepository catalog store.
//
// Update never touches stock: all stock changes go through AdjustStock,
// which moves the per-size counter and the aggregate counter together.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListComingSoon(ctx context.Context) ([]domain.Product, error)
	// ListAll every product, inactive ones included, sorted by name.
	ListAll(ctx context.Context) ([]domain.Product, error)
	SizeStock(ctx context.Context, productID, size string) (int64, error)
	AdjustStock(ctx context.Context, productID, size string, delta int64) error
}

// OrderRepository order store. Items are written with the order and never updated.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, limit, offset int) ([]domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Stats(ctx context.Context) (domain.OrderStats, error)
}

// AbandonedCartRepository keeps at most one cart per email.
type AbandonedCartRepository interface {
	// Save starts a new abandonment cycle for c.Email, replacing any previous record.
	Save(ctx context.Context, c *domain.AbandonedCart) error
	GetActive(ctx context.Context, email string) (*domain.AbandonedCart, error)
	ListActive(ctx context.Context) ([]domain.AbandonedCart, error)
	MarkReminderSent(ctx context.Context, email string, stage int) error
	MarkRecovered(ctx context.Context, email string, at time.Time) error
}

// TxManager абстракция транзакции. Для in-memory это глобальная блокировка записи.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NormalizeEmail canonical form used as the lookup key for users and carts
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// averageOrderValue fills AverageOrderValue from revenue and paid count.
func averageOrderValue(st *domain.OrderStats) {
	if st.PaidOrders == 0 {
		st.AverageOrderValue = decimal.Zero
		return
	}
	st.AverageOrderValue = st.TotalRevenue.Div(decimal.NewFromInt(st.PaidOrders)).Round(2)
}
