package app

import (
	"net/url"
	"strings"
)

// preparedBinaryResultParam is the lib/pq knob that matters when the auction
// database sits behind a transaction-pooling PgBouncer, where server-side
// prepared statements do not survive across pooled connections.
const preparedBinaryResultParam = "disable_prepared_binary_result"

// normalizeDBURL appends disable_prepared_binary_result=yes when the config
// asks for it, unless the operator already pinned a value in the DSN.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}

	query := parsed.Query()
	if query.Get(preparedBinaryResultParam) != "" {
		return raw
	}
	query.Set(preparedBinaryResultParam, "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL extracts the database name for trace attributes and startup
// logs, accepting both URL DSNs and key=value DSNs.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed != nil && parsed.Scheme != "" {
		if name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/")); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(strings.TrimSpace(value), `"'`); name != "" {
			return name
		}
	}

	return ""
}
