package postgres

import (
	"database/sql"
	"strings"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// isDuplicateConstraint matches the lib/pq rendering of a unique violation.
// The driver exposes no typed error for it across pooled connections.
func isDuplicateConstraint(err error) bool {
	if err == nil {
		return false
	}

	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value violates unique constraint")
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}

func fromNullString(value sql.NullString) string {
	if !value.Valid {
		return ""
	}

	return value.String
}
