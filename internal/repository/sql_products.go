package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"yemalin/internal/domain"
)

// SQLProducts ProductRepository поверх SQLStore
type SQLProducts struct{ s *SQLStore }

func NewSQLProducts(s *SQLStore) *SQLProducts { return &SQLProducts{s: s} }

var _ ProductRepository = (*SQLProducts)(nil)

const productColumns = `id, name, description, price, color, stock, is_limited, total_made, is_active, is_coming_soon, release_date, exclusive_access, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*domain.Product, error) {
	var (
		p       domain.Product
		release sql.NullTime
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Color, &p.Stock, &p.IsLimited,
		&p.TotalMade, &p.IsActive, &p.IsComingSoon, &release, &p.ExclusiveAccess, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ReleaseDate = timePtr(release)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	p.Images = []string{}
	p.Sizes = []domain.ProductSize{}
	return &p, nil
}

// Create inserts the product with its images and sizes in one transaction.
// The aggregate stock column is computed from the sizes.
func (r *SQLProducts) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	domain.SortSizes(p.Sizes)
	p.Stock = 0
	for _, sz := range p.Sizes {
		p.Stock += sz.Stock
	}
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	return r.s.WithTransaction(ctx, func(ctx context.Context) error {
		_, err := r.s.exec(ctx, `INSERT INTO products (`+productColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Description, p.Price, p.Color, p.Stock, p.IsLimited, p.TotalMade,
			p.IsActive, p.IsComingSoon, nullTime(p.ReleaseDate), p.ExclusiveAccess, p.CreatedAt, p.UpdatedAt)
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		if err != nil {
			return err
		}
		if err := r.insertImages(ctx, p.ID, p.Images); err != nil {
			return err
		}
		for _, sz := range p.Sizes {
			if _, err := r.s.exec(ctx, `INSERT INTO product_sizes (product_id, size, stock) VALUES (?, ?, ?)`,
				p.ID, sz.Size, sz.Stock); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLProducts) insertImages(ctx context.Context, productID string, images []string) error {
	for i, img := range images {
		if _, err := r.s.exec(ctx, `INSERT INTO product_images (product_id, sort_order, image_url) VALUES (?, ?, ?)`,
			productID, i, img); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLProducts) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	p, err := scanProduct(r.s.queryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	list := []domain.Product{*p}
	if err := r.enrich(ctx, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

// Update rewrites descriptive fields and the image list; stock is never touched here.
func (r *SQLProducts) Update(ctx context.Context, p *domain.Product) error {
	return r.s.WithTransaction(ctx, func(ctx context.Context) error {
		res, err := r.s.exec(ctx, `UPDATE products
			SET name = ?, description = ?, price = ?, color = ?, is_limited = ?, total_made = ?,
			    is_active = ?, is_coming_soon = ?, release_date = ?, exclusive_access = ?, updated_at = ?
			WHERE id = ?`,
			p.Name, p.Description, p.Price, p.Color, p.IsLimited, p.TotalMade,
			p.IsActive, p.IsComingSoon, nullTime(p.ReleaseDate), p.ExclusiveAccess, now(), p.ID)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return ErrNotFound
		}
		if _, err := r.s.exec(ctx, `DELETE FROM product_images WHERE product_id = ?`, p.ID); err != nil {
			return err
		}
		if err := r.insertImages(ctx, p.ID, p.Images); err != nil {
			return err
		}
		fresh, err := r.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		*p = *fresh
		return nil
	})
}

func (r *SQLProducts) ListActive(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE is_active = TRUE AND is_coming_soon = FALSE
		ORDER BY created_at DESC, id`)
}

func (r *SQLProducts) ListComingSoon(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products
		WHERE is_coming_soon = TRUE
		ORDER BY release_date IS NULL, release_date ASC, id`)
}

func (r *SQLProducts) ListAll(ctx context.Context) ([]domain.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, id`)
}

func (r *SQLProducts) list(ctx context.Context, query string) ([]domain.Product, error) {
	rows, err := r.s.query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.enrich(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// enrich loads ordered images and sizes for a batch of products
func (r *SQLProducts) enrich(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]any, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}
	in := placeholders(len(ids))

	rows, err := r.s.query(ctx, `SELECT product_id, image_url FROM product_images
		WHERE product_id IN (`+in+`) ORDER BY product_id, sort_order`, ids...)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pid, url string
		if err := rows.Scan(&pid, &url); err != nil {
			rows.Close()
			return err
		}
		i := index[pid]
		products[i].Images = append(products[i].Images, url)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = r.s.query(ctx, `SELECT product_id, size, stock FROM product_sizes WHERE product_id IN (`+in+`)`, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			pid string
			sz  domain.ProductSize
		)
		if err := rows.Scan(&pid, &sz.Size, &sz.Stock); err != nil {
			return err
		}
		i := index[pid]
		products[i].Sizes = append(products[i].Sizes, sz)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	for i := range products {
		domain.SortSizes(products[i].Sizes)
	}
	return nil
}

// SizeStock reads one size counter, locking the row inside a transaction.
func (r *SQLProducts) SizeStock(ctx context.Context, productID, size string) (int64, error) {
	var stock int64
	err := r.s.queryRow(ctx, `SELECT stock FROM product_sizes WHERE product_id = ? AND size = ?`+r.s.forUpdate(ctx),
		productID, size).Scan(&stock)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("size %q: %w", size, ErrNotFound)
	}
	return stock, err
}

// AdjustStock moves the size row and the aggregate row in the same transaction.
// The guarded UPDATE refuses to go below zero, so concurrent writers cannot oversell.
func (r *SQLProducts) AdjustStock(ctx context.Context, productID, size string, delta int64) error {
	if delta == 0 {
		_, err := r.SizeStock(ctx, productID, size)
		return err
	}
	return r.s.WithTransaction(ctx, func(ctx context.Context) error {
		res, err := r.s.exec(ctx, `UPDATE product_sizes SET stock = stock + ?
			WHERE product_id = ? AND size = ? AND stock + ? >= 0`, delta, productID, size, delta)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			if _, err := r.SizeStock(ctx, productID, size); err != nil {
				return err
			}
			return ErrInsufficientStock
		}
		_, err = r.s.exec(ctx, `UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`, delta, now(), productID)
		return err
	})
}
