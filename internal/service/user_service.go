package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"yemalin/internal/auth"
	"yemalin/internal/domain"
	"yemalin/internal/repository"
)

// UserService регистрация, вход и профиль покупателя
type UserService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
	admins map[string]struct{}
	now    func() time.Time
	cost   int

	compare   func(hash, password []byte) error
	dummyOnce sync.Once
	dummy     []byte
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenService, adminEmails []string) *UserService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[repository.NormalizeEmail(e)] = struct{}{}
	}
	return &UserService{users: users, tokens: tokens, admins: admins, now: time.Now, cost: bcrypt.DefaultCost,
		compare: bcrypt.CompareHashAndPassword}
}

// WithHashCost lowers the bcrypt cost; tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.cost = cost
	return s
}

// SignupInput данные регистрации
type SignupInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=64"`
}

// ProfileUpdate nil fields stay unchanged
type ProfileUpdate struct {
	Name         *string `json:"name" validate:"omitempty,max=255"`
	Phone        *string `json:"phone" validate:"omitempty,max=64"`
	ProfileImage *string `json:"profileImage" validate:"omitempty,max=1024"`
}

// AuthResult user plus a fresh token pair
type AuthResult struct {
	User   *domain.User   `json:"user"`
	Tokens auth.TokenPair `json:"tokens"`
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}
	return s.authResult(&u)
}

// Login answers ErrUnauthorized for both unknown email and wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		// same bcrypt work as a wrong password, so timing does not tell accounts apart
		_ = s.compare(s.dummyHash(), []byte(password))
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	if !s.VerifyPassword(u, password) {
		return nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}
	at := s.now().UTC()
	if err := s.users.TouchLogin(ctx, u.ID, at); err != nil {
		return nil, err
	}
	u.LastLogin = &at
	return s.authResult(u)
}

// Refresh exchanges a refresh token for a new pair. The user is re-read so
// the new access token reflects the current VIP state.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	return s.authResult(u)
}

func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	return u, nil
}

// FindByEmail returns nil, nil when no such user exists.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// FindByID returns nil, nil when no such user exists.
func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, nil
	}
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	u, err := s.Me(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.ProfileImage != nil {
		u.ProfileImage = *in.ProfileImage
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// VerifyPassword constant-time comparison against the stored hash
func (s *UserService) VerifyPassword(u *domain.User, candidate string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return s.compare([]byte(u.PasswordHash), []byte(candidate)) == nil
}

func (s *UserService) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("yemalin-no-such-user"), s.cost)
	})
	return s.dummy
}

// ListVIP customers holding a tier, biggest spenders first
func (s *UserService) ListVIP(ctx context.Context) ([]domain.User, error) {
	return s.users.ListVIP(ctx)
}

func (s *UserService) IsAdmin(u *domain.User) bool {
	if u == nil {
		return false
	}
	_, ok := s.admins[repository.NormalizeEmail(u.Email)]
	return ok
}

// IsAdminEmail same check for callers holding only token claims
func (s *UserService) IsAdminEmail(email string) bool {
	_, ok := s.admins[repository.NormalizeEmail(email)]
	return ok
}

func (s *UserService) authResult(u *domain.User) (*AuthResult, error) {
	pair, err := s.tokens.Issue(auth.Identity{
		UserID:  u.ID,
		Email:   u.Email,
		IsVIP:   u.IsVIP(),
		VIPTier: string(u.VIPTier),
	})
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Tokens: pair}, nil
}
