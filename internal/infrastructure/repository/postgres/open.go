package postgres

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	defaultMaxOpenConns    = 10
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 30 * time.Minute
	maxTracedQueryLength   = 512
)

type OpenConfig struct {
	URL string
	// DisablePreparedBinaryResult sets disable_prepared_binary_result=yes
	// unless the URL already sets it. Needed behind transaction poolers.
	DisablePreparedBinaryResult bool
	MaxOpenConns                int
	MaxIdleConns                int
	ConnMaxLifetime             time.Duration
}

// Open connects to postgres with query tracing and checks the connection.
func Open(ctx context.Context, cfg OpenConfig) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("postgres url is required")
	}

	db, err := otelsqlx.Open("postgres", cfg.DSN(),
		otelsql.WithDBName(DatabaseName(cfg.URL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(positiveOr(cfg.MaxOpenConns, defaultMaxOpenConns))
	db.SetMaxIdleConns(positiveOr(cfg.MaxIdleConns, defaultMaxIdleConns))
	lifetime := cfg.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = defaultConnMaxLifetime
	}
	db.SetConnMaxLifetime(lifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// DSN returns URL with the driver options applied.
func (c OpenConfig) DSN() string {
	if !c.DisablePreparedBinaryResult {
		return c.URL
	}

	parsed, err := url.Parse(c.URL)
	if err != nil || parsed.Scheme == "" {
		if strings.Contains(c.URL, "disable_prepared_binary_result=") {
			return c.URL
		}
		return strings.TrimSpace(c.URL) + " disable_prepared_binary_result=yes"
	}

	query := parsed.Query()
	if !query.Has("disable_prepared_binary_result") {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

// DatabaseName extracts the database from a URL or key=value DSN.
func DatabaseName(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/ ")
	}

	for _, token := range strings.Fields(dsn) {
		if name, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(name, `"'`)
		}
	}
	return ""
}

// traceQuery collapses whitespace and caps the length of span statements.
func traceQuery(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > maxTracedQueryLength {
		return compact[:maxTracedQueryLength] + "..."
	}
	return compact
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
