package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/repository"
)

// CartService фиксирует брошенные корзины и их восстановление
type CartService struct {
	carts    repository.AbandonedCartRepository
	products repository.ProductRepository
	now      func() time.Time
}

func NewCartService(carts repository.AbandonedCartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (s *CartService) WithClock(now func() time.Time) *CartService {
	s.now = now
	return s
}

// CartLine одна позиция корзины, как её присылает клиент
type CartLine struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"gt=0"`
}

type abandonInput struct {
	Email string     `validate:"required,email"`
	Lines []CartLine `validate:"required,min=1,dive"`
}

// Abandon records the cart of email as abandoned now. Names, prices and stock
// are snapshotted from the catalog; a previous record for the email is replaced
// and its reminder cycle starts over.
func (s *CartService) Abandon(ctx context.Context, email string, lines []CartLine) (*domain.AbandonedCart, error) {
	email = repository.NormalizeEmail(email)
	if err := validateStruct(abandonInput{Email: email, Lines: lines}); err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(lines))
	value := decimal.Zero
	for _, l := range lines {
		p, err := s.products.GetByID(ctx, l.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("unknown product %q", l.ProductID)
		}
		if err != nil {
			return nil, err
		}
		stock, ok := p.SizeStock(l.Size)
		if !ok {
			return nil, invalid("product %q has no size %q", p.Name, l.Size)
		}
		items = append(items, domain.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.PrimaryImage(),
			Size:      l.Size,
			Quantity:  l.Quantity,
			Price:     p.Price,
			Stock:     stock,
		})
		value = value.Add(p.Price.Mul(decimal.NewFromInt(l.Quantity)))
	}
	cart := domain.AbandonedCart{
		Email:       email,
		Items:       items,
		CartValue:   value.Round(2),
		AbandonedAt: s.now().UTC(),
	}
	if err := s.carts.Save(ctx, &cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return &cart, nil
}

// Recover marks the active cart of email as recovered. Returns
// repository.ErrNotFound when there is nothing to recover.
func (s *CartService) Recover(ctx context.Context, email string) error {
	email = repository.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}
	return s.carts.MarkRecovered(ctx, email, s.now().UTC())
}

// ListActive abandoned carts not yet recovered, for the admin view
func (s *CartService) ListActive(ctx context.Context) ([]domain.AbandonedCart, error) {
	return s.carts.ListActive(ctx)
}
