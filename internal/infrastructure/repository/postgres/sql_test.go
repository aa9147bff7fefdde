package postgres

import (
	"database/sql"
	"testing"
)

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

func TestIsDuplicateConstraint(t *testing.T) {
	t.Run("matches unique violation", func(t *testing.T) {
		err := fakeErr(`pq: duplicate key value violates unique constraint "joined_runs_profile_run_live_idx"`)
		if !isDuplicateConstraint(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		err := fakeErr("pq: relation joined_runs does not exist")
		if isDuplicateConstraint(err) {
			t.Fatalf("expected false for unrelated error")
		}
	})

	t.Run("ignores nil", func(t *testing.T) {
		if isDuplicateConstraint(nil) {
			t.Fatalf("expected false for nil")
		}
	})
}

func TestNullStringRoundTrip(t *testing.T) {
	if got := nullString(""); got.Valid {
		t.Fatalf("empty string must map to NULL")
	}
	if got := fromNullString(sql.NullString{String: "sq-1", Valid: true}); got != "sq-1" {
		t.Fatalf("expected sq-1, got %s", got)
	}
	if got := fromNullString(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string for NULL, got %s", got)
	}
}
