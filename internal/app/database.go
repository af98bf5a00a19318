package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/booze-baton/internal/config"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// openDatabase opens an instrumented postgres pool and verifies it with a ping.
func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := withPreparedBinaryResult(cfg.DBURL, cfg.DBDisablePreparedBinary)

	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	}
	if name := databaseName(dsn); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", dsn, opts...)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// withPreparedBinaryResult sets disable_prepared_binary_result=yes unless the URL already carries a value.
func withPreparedBinaryResult(raw string, enabled bool) string {
	if !enabled {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func databaseName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	for _, token := range strings.Fields(trimmed) {
		if value, ok := strings.CutPrefix(token, "dbname="); ok {
			return strings.Trim(strings.TrimSpace(value), `"'`)
		}
	}
	return ""
}

func formatQueryForTrace(query string) string {
	normalized := queryWhitespaceRegex.ReplaceAllString(strings.TrimSpace(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
