package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Dialect SQL flavour the store talks to
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// SQLStore database/sql-хранилище. Запросы пишутся с плейсхолдером "?",
// для PostgreSQL они переписываются в $1..$n.
type SQLStore struct {
	db        *sql.DB
	dialect   Dialect
	slowQuery time.Duration
}

var _ TxManager = (*SQLStore)(nil)

// OpenSQL opens a pool for a postgres://, postgresql://, mysql:// or mariadb:// URL.
func OpenSQL(databaseURL string, slowQuery time.Duration) (*SQLStore, error) {
	driver, dsn, dialect, err := ParseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return NewSQLStore(db, dialect, slowQuery), nil
}

// NewSQLStore wraps an already opened pool.
func NewSQLStore(db *sql.DB, dialect Dialect, slowQuery time.Duration) *SQLStore {
	return &SQLStore{db: db, dialect: dialect, slowQuery: slowQuery}
}

func (s *SQLStore) Dialect() Dialect { return s.dialect }

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLStore) Close() error { return s.db.Close() }

// ParseDatabaseURL maps a database URL to driver name, driver DSN and dialect.
func ParseDatabaseURL(raw string) (driver, dsn string, dialect Dialect, err error) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return "pgx", raw, DialectPostgres, nil
	case strings.HasPrefix(raw, "mysql://"), strings.HasPrefix(raw, "mariadb://"):
		dsn, err := toMySQLDSN(raw)
		if err != nil {
			return "", "", "", err
		}
		return "mysql", dsn, DialectMySQL, nil
	}
	return "", "", "", fmt.Errorf("unsupported database url scheme: %q", raw)
}

// mariadb:// или mysql:// → формат MySQL driver
func toMySQLDSN(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse dsn: %w", err)
	}
	cfg := mysql.NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if cfg.User == "" || cfg.Addr == "" || cfg.DBName == "" {
		return "", fmt.Errorf("incomplete dsn (user/host/db)")
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.InterpolateParams = true
	return cfg.FormatDSN(), nil
}

type sqlTxKey struct{}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func txFrom(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(sqlTxKey{}).(*sql.Tx)
	return tx, ok
}

func (s *SQLStore) conn(ctx context.Context) querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return s.db
}

// WithTransaction runs fn inside BEGIN/COMMIT; any error rolls everything back.
// A nested call joins the transaction already carried by ctx.
func (s *SQLStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(context.WithValue(ctx, sqlTxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("[ERROR] rollback: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// forUpdate row lock suffix, only meaningful inside a transaction
func (s *SQLStore) forUpdate(ctx context.Context) string {
	if _, ok := txFrom(ctx); ok {
		return " FOR UPDATE"
	}
	return ""
}

func (s *SQLStore) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	defer s.observe(query, time.Now())
	return s.conn(ctx).ExecContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	defer s.observe(query, time.Now())
	return s.conn(ctx).QueryContext(ctx, s.rebind(query), args...)
}

func (s *SQLStore) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	defer s.observe(query, time.Now())
	return s.conn(ctx).QueryRowContext(ctx, s.rebind(query), args...)
}

// observe logs slow statements; nothing is retried
func (s *SQLStore) observe(query string, start time.Time) {
	if s.slowQuery <= 0 {
		return
	}
	if d := time.Since(start); d > s.slowQuery {
		log.Printf("[WARN] slow query (%s): %s", d.Round(time.Millisecond), strings.Join(strings.Fields(query), " "))
	}
}

func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders "?, ?, ?" for an IN list of n values
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return false
}

// Migrate applies the embedded schema for the store's dialect. Statements are idempotent.
func (s *SQLStore) Migrate(ctx context.Context) error {
	raw, err := schemaFS.ReadFile("schema/" + string(s.dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range splitStatements(string(raw)) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func splitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		lines := make([]string, 0)
		for _, line := range strings.Split(part, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// now truncated to microseconds, the precision both dialects store
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
