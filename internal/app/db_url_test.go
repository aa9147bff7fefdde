package app

import "testing"

func TestNormalizeDBURL(t *testing.T) {
	got := normalizeDBURL("postgres://u:p@localhost:5432/hooprun?sslmode=disable", true)
	want := "postgres://u:p@localhost:5432/hooprun?disable_prepared_binary_result=yes&sslmode=disable"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNormalizeDBURL_Disabled(t *testing.T) {
	raw := "postgres://u:p@localhost:5432/hooprun"
	if got := normalizeDBURL(raw, false); got != raw {
		t.Fatalf("expected untouched url, got %q", got)
	}
}

func TestNormalizeDBURL_ExistingParamKept(t *testing.T) {
	raw := "postgres://u:p@localhost:5432/hooprun?disable_prepared_binary_result=no"
	if got := normalizeDBURL(raw, true); got != raw {
		t.Fatalf("expected existing param kept, got %q", got)
	}
}

func TestDBNameFromURL(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@localhost:5432/hooprun?sslmode=disable": "hooprun",
		"host=localhost dbname=hooprun sslmode=disable":         "hooprun",
		"host=localhost dbname='hooprun'":                       "hooprun",
		"postgres://u:p@localhost:5432/":                        "",
	}
	for in, want := range cases {
		if got := dbNameFromURL(in); got != want {
			t.Fatalf("dbNameFromURL(%q): got %q, want %q", in, got, want)
		}
	}
}
