package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	// ErrTokenExpired подпись верна, но срок действия истёк
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed bad signature, wrong issuer/audience/use or not a JWT at all
	ErrTokenMalformed = errors.New("invalid token")
)

const (
	useAccess  = "access"
	useRefresh = "refresh"
)

// TokenConfig параметры подписи и срока жизни токенов
type TokenConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Identity what gets embedded into an access token
type Identity struct {
	UserID  string
	Email   string
	IsVIP   bool
	VIPTier string
}

// Claims payload of both token kinds. Refresh tokens carry only the
// registered claims and Use.
type Claims struct {
	Email   string `json:"email,omitempty"`
	IsVIP   bool   `json:"is_vip,omitempty"`
	VIPTier string `json:"vip_tier,omitempty"`
	Use     string `json:"use"`
	jwt.RegisteredClaims
}

// UserID subject of the token
func (c *Claims) UserID() string { return c.Subject }

// TokenPair access + refresh
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	cfg    TokenConfig
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenService{
		cfg: cfg,
		key: []byte(cfg.Secret),
		now: time.Now,
		// time based claims are checked by hand against the injected clock
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// WithClock replaces the time source; used by tests.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Issue signs a fresh access/refresh pair for id.
func (s *TokenService) Issue(id Identity) (TokenPair, error) {
	if id.UserID == "" {
		return TokenPair{}, errors.New("identity without user id")
	}
	now := s.now()
	accessExp := now.Add(s.cfg.AccessTTL)

	access := Claims{
		Email:            id.Email,
		IsVIP:            id.IsVIP,
		VIPTier:          id.VIPTier,
		Use:              useAccess,
		RegisteredClaims: s.registered(id.UserID, now, accessExp),
	}
	refresh := Claims{
		Use:              useRefresh,
		RegisteredClaims: s.registered(id.UserID, now, now.Add(s.cfg.RefreshTTL)),
	}

	at, err := s.sign(access)
	if err != nil {
		return TokenPair{}, err
	}
	rt, err := s.sign(refresh)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: at, RefreshToken: rt, ExpiresAt: accessExp.UTC()}, nil
}

func (s *TokenService) registered(sub string, iat, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    s.cfg.Issuer,
		Audience:  jwt.ClaimStrings{s.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(iat),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (s *TokenService) sign(c Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks an access token. It returns claims, ErrTokenExpired or ErrTokenMalformed.
func (s *TokenService) Verify(token string) (*Claims, error) {
	return s.verify(token, useAccess)
}

// VerifyRefresh checks a refresh token and returns its subject.
func (s *TokenService) VerifyRefresh(token string) (string, error) {
	c, err := s.verify(token, useRefresh)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

func (s *TokenService) verify(token, use string) (*Claims, error) {
	claims := &Claims{}
	_, err := s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, ErrTokenMalformed
	}
	if claims.Subject == "" || claims.Use != use ||
		!claims.VerifyIssuer(s.cfg.Issuer, true) ||
		!claims.VerifyAudience(s.cfg.Audience, true) {
		return nil, ErrTokenMalformed
	}
	if !claims.VerifyExpiresAt(s.now(), true) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// Decode reads claims without checking signature or expiry. Never use the
// result for authorization.
func (s *TokenService) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := s.parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <t>" header value.
func BearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	t := strings.TrimSpace(header[len(prefix):])
	return t, t != ""
}

// ParseTTL accepts Go durations ("15m", "12h") and whole days ("7d").
func ParseTTL(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasSuffix(raw, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid ttl %q", raw)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid ttl %q", raw)
	}
	return d, nil
}
