package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"yemalin/internal/auth"
)

// Config настройки процесса, читаются из окружения (и .env, если он есть)
type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	CartDBPath         string
	JWTSecret          string
	JWTIssuer          string
	JWTAudience        string
	AccessTTL          time.Duration
	RefreshTTL         time.Duration
	ReminderInterval   time.Duration
	AdminEmails        []string
	SlowQueryThreshold time.Duration
}

// Storage database settings only. Tools that never issue tokens (the catalog
// seeder) load this instead of the full Config.
type Storage struct {
	DatabaseURL        string
	SlowQueryThreshold time.Duration
}

// Load reads the optional .env file and then the process environment.
// Variables already set in the environment win over .env values.
func Load(files ...string) (Config, error) {
	if err := loadEnvFiles(files...); err != nil {
		return Config{}, err
	}
	return FromEnv(os.Getenv)
}

// LoadStorage is Load for Storage.
func LoadStorage(files ...string) (Storage, error) {
	if err := loadEnvFiles(files...); err != nil {
		return Storage{}, err
	}
	return StorageFromEnv(os.Getenv)
}

func loadEnvFiles(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
		log.Printf("[INFO] no .env file, using process environment")
	}
	return nil
}

func lookup(getenv func(string) string) func(key, def string) string {
	return func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
}

// StorageFromEnv reads DATABASE_URL and SLOW_QUERY_THRESHOLD.
func StorageFromEnv(getenv func(string) string) (Storage, error) {
	get := lookup(getenv)
	st := Storage{DatabaseURL: get("DATABASE_URL", "")}
	var err error
	if st.SlowQueryThreshold, err = time.ParseDuration(get("SLOW_QUERY_THRESHOLD", "1s")); err != nil {
		return Storage{}, fmt.Errorf("SLOW_QUERY_THRESHOLD: %w", err)
	}
	return st, nil
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := lookup(getenv)

	cfg := Config{
		HTTPAddr:    get("HTTP_ADDR", ":9091"),
		CartDBPath:  get("CART_DB_PATH", "carts.db"),
		JWTSecret:   get("JWT_SECRET", ""),
		JWTIssuer:   get("JWT_ISSUER", "yemalin-api"),
		JWTAudience: get("JWT_AUDIENCE", "yemalin-app"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	st, err := StorageFromEnv(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL, cfg.SlowQueryThreshold = st.DatabaseURL, st.SlowQueryThreshold

	if cfg.AccessTTL, err = auth.ParseTTL(get("JWT_EXPIRES_IN", "7d")); err != nil {
		return Config{}, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}
	if cfg.RefreshTTL, err = auth.ParseTTL(get("JWT_REFRESH_EXPIRES_IN", "30d")); err != nil {
		return Config{}, fmt.Errorf("JWT_REFRESH_EXPIRES_IN: %w", err)
	}
	if cfg.ReminderInterval, err = time.ParseDuration(get("REMINDER_INTERVAL", "5m")); err != nil || cfg.ReminderInterval <= 0 {
		return Config{}, fmt.Errorf("REMINDER_INTERVAL: invalid duration %q", get("REMINDER_INTERVAL", "5m"))
	}

	for _, e := range strings.Split(get("ADMIN_EMAILS", ""), ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, e)
		}
	}
	return cfg, nil
}

// TokenConfig token service settings derived from cfg
func (c Config) TokenConfig() auth.TokenConfig {
	return auth.TokenConfig{
		Secret:     c.JWTSecret,
		Issuer:     c.JWTIssuer,
		Audience:   c.JWTAudience,
		AccessTTL:  c.AccessTTL,
		RefreshTTL: c.RefreshTTL,
	}
}
