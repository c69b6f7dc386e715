package app

import (
	"net/url"
	"strings"
)

const tracedQueryLimit = 512

// normalizeDBURL opts the connection out of prepared binary results unless
// the URL already takes a position on it. Supabase's pooler mishandles the
// binary protocol on JSONB columns.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult || strings.Contains(raw, "disable_prepared_binary_result=") {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return raw
	}

	q := parsed.Query()
	q.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name from either a postgres:// URL or
// a key=value DSN, for span attribution.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if parsed, err := url.Parse(raw); err == nil && parsed.Scheme != "" {
		if name := strings.Trim(parsed.Path, "/ "); name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(raw) {
		key, value, ok := strings.Cut(token, "=")
		if ok && key == "dbname" {
			if name := strings.Trim(value, `"' `); name != "" {
				return name
			}
		}
	}

	return ""
}

// formatDBQueryForTrace collapses whitespace and caps the statement length so
// multi-line SQL stays readable as a span attribute.
func formatDBQueryForTrace(query string) string {
	compact := strings.Join(strings.Fields(query), " ")
	if len(compact) > tracedQueryLimit {
		return compact[:tracedQueryLimit] + "..."
	}
	return compact
}
