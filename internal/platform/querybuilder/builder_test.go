package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder_FullQuery(t *testing.T) {
	after := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	sql, args, err := Select("public_id", "court_id", "starts_at").
		From("runs").
		Where(
			Eq("status", "Active"),
			Eq("court_id", "court-1"),
			Gte("starts_at", after),
			IsNull("deleted_at"),
		).
		OrderBy("starts_at ASC").
		Limit(25).
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	want := "SELECT public_id, court_id, starts_at FROM runs" +
		" WHERE status = $1 AND court_id = $2 AND starts_at >= $3 AND deleted_at IS NULL" +
		" ORDER BY starts_at ASC LIMIT 25"
	if sql != want {
		t.Fatalf("sql mismatch:\n got: %s\nwant: %s", sql, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
}

func TestSelectBuilder_InEmptyMatchesNothing(t *testing.T) {
	sql, args, err := Select("run_id").
		From("joined_runs").
		Where(In("run_id", nil)).
		ToSQL()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if sql != "SELECT run_id FROM joined_runs WHERE 1=0" {
		t.Fatalf("unexpected sql: %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("expected no args, got %d", len(args))
	}
}

func TestSelectBuilder_RequiresTableAndColumns(t *testing.T) {
	if _, _, err := Select().From("runs").ToSQL(); err == nil {
		t.Fatal("expected error for missing columns")
	}
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}
