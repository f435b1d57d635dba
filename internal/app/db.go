package app

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// connectDB opens an otel-instrumented postgres pool. Traced statements are
// whitespace-collapsed and truncated so span payloads stay bounded.
func connectDB(rawURL string, disablePreparedBinaryResult bool) (*sqlx.DB, error) {
	dsn := normalizeDBURL(rawURL, disablePreparedBinaryResult)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return db, nil
}

// normalizeDBURL appends disable_prepared_binary_result=yes when requested,
// without clobbering an explicit value already present in the URL.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// dbNameFromURL extracts the database name from either URL or keyword/value
// DSN form, returning "" when it cannot tell.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(token, "dbname="))
		name = strings.Trim(name, `"'`)
		if name != "" {
			return name
		}
	}

	return ""
}

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
