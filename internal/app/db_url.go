package app

import (
	"net/url"
	"strings"
)

// normalizeDBURL appends disable_prepared_binary_result=yes when the flag is
// set and the DSN does not already decide it. Some poolers (pgbouncer in
// transaction mode) reject binary results from prepared statements.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u == nil {
		return raw
	}

	q := u.Query()
	if q.Get("disable_prepared_binary_result") != "" {
		return raw
	}
	q.Set("disable_prepared_binary_result", "yes")
	u.RawQuery = q.Encode()

	return u.String()
}

// dbNameFromURL extracts the database name from either a URL-style DSN or a
// key=value DSN, for tagging DB spans. Empty when the DSN names no database.
func dbNameFromURL(raw string) string {
	raw = strings.TrimSpace(raw)

	if u, err := url.Parse(raw); err == nil && u != nil && u.Scheme != "" {
		if name := strings.Trim(u.Path, "/ "); name != "" {
			return name
		}
	}

	for _, kv := range strings.Fields(raw) {
		name, ok := strings.CutPrefix(kv, "dbname=")
		if !ok {
			continue
		}
		if name = strings.Trim(name, `"' `); name != "" {
			return name
		}
	}

	return ""
}
