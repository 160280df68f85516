package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"yemalin/internal/domain"
)

// SQLUsers UserRepository поверх SQLStore
type SQLUsers struct{ s *SQLStore }

func NewSQLUsers(s *SQLStore) *SQLUsers { return &SQLUsers{s: s} }

var _ UserRepository = (*SQLUsers)(nil)

const userColumns = `id, email, password_hash, name, phone, profile_image, total_spent, vip_tier, created_at, updated_at, last_login`

func scanUser(row interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		tier      string
		lastLogin sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.ProfileImage,
		&u.TotalSpent, &tier, &u.CreatedAt, &u.UpdatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.VIPTier = domain.VIPTier(tier)
	u.LastLogin = timePtr(lastLogin)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func (r *SQLUsers) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = NormalizeEmail(u.Email)
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	_, err := r.s.exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Phone, u.ProfileImage,
		u.TotalSpent, string(u.VIPTier), u.CreatedAt, u.UpdatedAt, nullTime(u.LastLogin))
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID locks the row when called inside a transaction.
func (r *SQLUsers) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`+r.s.forUpdate(ctx), id))
}

func (r *SQLUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.s.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, NormalizeEmail(email)))
}

func (r *SQLUsers) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = now()
	res, err := r.s.exec(ctx, `UPDATE users
		SET password_hash = ?, name = ?, phone = ?, profile_image = ?, total_spent = ?, vip_tier = ?, updated_at = ?
		WHERE id = ?`,
		u.PasswordHash, u.Name, u.Phone, u.ProfileImage, u.TotalSpent, string(u.VIPTier), u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	fresh, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = *fresh
	return nil
}

func (r *SQLUsers) TouchLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.s.exec(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, at.UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLUsers) ListVIP(ctx context.Context) ([]domain.User, error) {
	rows, err := r.s.query(ctx, `SELECT `+userColumns+` FROM users WHERE vip_tier <> '' ORDER BY total_spent DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}
