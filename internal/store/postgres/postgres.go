// Package postgres is the PostgreSQL store.Store built on pgxpool. Ids are
// UUID strings kept in TEXT primary keys.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/store"
)

// Config holds the pool settings.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	ConnectTimeout  time.Duration
	// SimpleProtocol is required behind PgBouncer in transaction mode.
	SimpleProtocol bool
	// StatementTimeout is applied per session when positive.
	StatementTimeout time.Duration
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is the PostgreSQL store.Store.
type Store struct {
	pool *pgxpool.Pool
	q    querier
	now  func() time.Time
	inTx bool
}

// Open creates the pool, pings it and bootstraps the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if cfg.SimpleProtocol {
		pcfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	pcfg.ConnConfig.RuntimeParams["application_name"] = "enw-backend"
	if cfg.StatementTimeout > 0 {
		pcfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.StatementTimeout.Milliseconds(), 10)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pcfg.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := New(pool)
	if _, err := s.Maintenance().EnsureIndexes(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing pool. The schema is not bootstrapped.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: pool, now: time.Now}
}

func (s *Store) Seniors() store.Seniors                 { return seniors{s} }
func (s *Store) SupportRequests() store.SupportRequests { return requests{s} }
func (s *Store) Volunteers() store.Volunteers           { return volunteers{s} }
func (s *Store) Partners() store.Partners               { return partners{s} }
func (s *Store) Assignments() store.Assignments         { return assignments{s} }
func (s *Store) Tasks() store.Tasks                     { return tasks{s} }
func (s *Store) Blog() store.Blog                       { return blog{s} }
func (s *Store) Maintenance() store.Maintenance         { return maintenance{s} }

// WithTransaction runs fn in a pgx transaction. Nested calls join the outer one.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(ctx, &Store{pool: s.pool, q: tx, now: s.now, inTx: true})
	})
}

func (s *Store) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

func newID() string { return uuid.NewString() }

type uniqueConstraint struct {
	table  string
	fields []string
}

// uniqueConstraints maps constraint names to the JSON fields they cover.
var uniqueConstraints = map[string]uniqueConstraint{
	"seniors_email_key":                {"seniors", []string{"email"}},
	"volunteers_email_key":             {"volunteers", []string{"email"}},
	"partners_email_key":               {"partners", []string{"email"}},
	"volunteer_assignments_triple_key": {"volunteer_assignments", []string{"volunteerId", "seniorId", "requestId"}},
	"blog_posts_slug_key":              {"blog_posts", []string{"slug"}},
	"blog_categories_name_key":         {"blog_categories", []string{"name"}},
	"blog_categories_slug_key":         {"blog_categories", []string{"slug"}},
}

// translate maps pgx errors onto the apperr taxonomy.
func translate(err error, doc any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		field := "email"
		if uc, ok := uniqueConstraints[pgErr.ConstraintName]; ok {
			field = uc.fields[0]
		}
		return &apperr.DuplicateKeyError{Field: field, Value: jsonField(doc, field)}
	}
	return err
}

func jsonField(doc any, field string) any {
	if doc == nil {
		return nil
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m[field]
}

type rowScanner interface {
	Scan(dest ...any) error
}

func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := []*T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
