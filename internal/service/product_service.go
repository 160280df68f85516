package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"yemalin/internal/domain"
	"yemalin/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo repository.ProductRepository
	tx   repository.TxManager
}

func NewProductService(repo repository.ProductRepository, tx repository.TxManager) *ProductService {
	return &ProductService{repo: repo, tx: tx}
}

// NewProduct входные данные для создания товара
type NewProduct struct {
	Name            string               `json:"name" validate:"required,max=255"`
	Description     string               `json:"description"`
	Price           decimal.Decimal      `json:"price"`
	Color           string               `json:"color" validate:"max=128"`
	IsLimited       bool                 `json:"isLimited"`
	TotalMade       int64                `json:"totalMade" validate:"gte=0"`
	IsActive        *bool                `json:"isActive"`
	IsComingSoon    bool                 `json:"isComingSoon"`
	ReleaseDate     *time.Time           `json:"releaseDate"`
	ExclusiveAccess bool                 `json:"exclusiveAccess"`
	Images          []string             `json:"images" validate:"dive,required"`
	Sizes           []domain.ProductSize `json:"sizes" validate:"required,min=1,dive"`
}

// ProductUpdate partial update; nil fields stay unchanged. Stock is not part of it.
type ProductUpdate struct {
	Name            *string          `json:"name" validate:"omitempty,max=255"`
	Description     *string          `json:"description"`
	Price           *decimal.Decimal `json:"price"`
	Color           *string          `json:"color" validate:"omitempty,max=128"`
	IsLimited       *bool            `json:"isLimited"`
	TotalMade       *int64           `json:"totalMade" validate:"omitempty,gte=0"`
	IsActive        *bool            `json:"isActive"`
	IsComingSoon    *bool            `json:"isComingSoon"`
	ReleaseDate     *time.Time       `json:"releaseDate"`
	ExclusiveAccess *bool            `json:"exclusiveAccess"`
	Images          []string         `json:"images" validate:"omitempty,dive,required"`
}

func (s *ProductService) GetActive(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListActive(ctx)
}

// ListAll whole catalog for admins, inactive products included
func (s *ProductService) ListAll(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAll(ctx)
}

func (s *ProductService) GetComingSoon(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListComingSoon(ctx)
}

// GetEarlyAccess coming-soon products reserved for VIP customers
func (s *ProductService) GetEarlyAccess(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.ListComingSoon(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.ExclusiveAccess {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *ProductService) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// CheckAvailability reports whether qty units of size are in stock. Unknown
// products and sizes are simply unavailable.
func (s *ProductService) CheckAvailability(ctx context.Context, productID, size string, qty int64) (bool, error) {
	if productID == "" || size == "" || qty <= 0 {
		return false, ErrInvalidInput
	}
	stock, err := s.repo.SizeStock(ctx, productID, size)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return qty <= stock, nil
}

// DecrementStock takes qty units of one size; size row and aggregate move together.
func (s *ProductService) DecrementStock(ctx context.Context, productID, size string, qty int64) error {
	if productID == "" || size == "" || qty <= 0 {
		return ErrInvalidInput
	}
	err := s.repo.AdjustStock(ctx, productID, size, -qty)
	if errors.Is(err, repository.ErrInsufficientStock) {
		available, _ := s.repo.SizeStock(ctx, productID, size)
		return &StockError{ProductID: productID, Size: size, Requested: qty, Available: available}
	}
	return err
}

// IncrementStock is the inverse of DecrementStock.
func (s *ProductService) IncrementStock(ctx context.Context, productID, size string, qty int64) error {
	if productID == "" || size == "" || qty <= 0 {
		return ErrInvalidInput
	}
	return s.repo.AdjustStock(ctx, productID, size, qty)
}

func (s *ProductService) Create(ctx context.Context, in NewProduct) (*domain.Product, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	seen := make(map[string]struct{}, len(in.Sizes))
	for _, sz := range in.Sizes {
		if sz.Size == "" || sz.Stock < 0 {
			return nil, invalid("size %q: stock must be a non-negative count", sz.Size)
		}
		if _, dup := seen[sz.Size]; dup {
			return nil, invalid("size %q listed twice", sz.Size)
		}
		seen[sz.Size] = struct{}{}
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	p := domain.Product{
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price.Round(2),
		Color:           in.Color,
		IsLimited:       in.IsLimited,
		TotalMade:       in.TotalMade,
		IsActive:        active,
		IsComingSoon:    in.IsComingSoon,
		ReleaseDate:     in.ReleaseDate,
		ExclusiveAccess: in.ExclusiveAccess,
		Images:          append([]string{}, in.Images...),
		Sizes:           append([]domain.ProductSize{}, in.Sizes...),
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductUpdate) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name == "" {
		return nil, invalid("name must not be empty")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, invalid("price must not be negative")
	}
	var updated *domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Price != nil {
			p.Price = in.Price.Round(2)
		}
		if in.Color != nil {
			p.Color = *in.Color
		}
		if in.IsLimited != nil {
			p.IsLimited = *in.IsLimited
		}
		if in.TotalMade != nil {
			p.TotalMade = *in.TotalMade
		}
		if in.IsActive != nil {
			p.IsActive = *in.IsActive
		}
		if in.IsComingSoon != nil {
			p.IsComingSoon = *in.IsComingSoon
		}
		if in.ReleaseDate != nil {
			p.ReleaseDate = in.ReleaseDate
		}
		if in.ExclusiveAccess != nil {
			p.ExclusiveAccess = *in.ExclusiveAccess
		}
		if in.Images != nil {
			p.Images = append([]string{}, in.Images...)
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetSizeStock sets the absolute count of one size (admin restock). The
// difference goes through AdjustStock so the aggregate stays in sync.
func (s *ProductService) SetSizeStock(ctx context.Context, id, size string, stock int64) (*domain.Product, error) {
	if id == "" || size == "" || stock < 0 {
		return nil, ErrInvalidInput
	}
	var updated *domain.Product
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.SizeStock(ctx, id, size)
		if err != nil {
			return err
		}
		if err := s.repo.AdjustStock(ctx, id, size, stock-current); err != nil {
			return err
		}
		updated, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
