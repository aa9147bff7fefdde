package roster

import "testing"

func TestParseInviteStatus_WireStrings(t *testing.T) {
	cases := map[string]InviteStatus{
		"Undecided":          InviteUndecided,
		"":                   InviteUndecided,
		"Accepted":           InviteAccepted,
		"Accepted / Pending": InviteAcceptedPending,
		"Declined":           InviteDeclined,
		"Refund":             InviteRefund,
	}

	for raw, want := range cases {
		got, err := ParseInviteStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: got %v want %v", raw, got, want)
		}
	}

	if _, err := ParseInviteStatus("accepted"); err == nil {
		t.Fatal("expected case-sensitive parse to reject lowercase status")
	}
	if _, err := ParseInviteStatus("Maybe"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}

func TestInviteStatus_StringRoundTrip(t *testing.T) {
	statuses := []InviteStatus{
		InviteUndecided,
		InviteAccepted,
		InviteAcceptedPending,
		InviteDeclined,
		InviteRefund,
	}

	for _, status := range statuses {
		parsed, err := ParseInviteStatus(status.String())
		if err != nil {
			t.Fatalf("round trip %v: %v", status, err)
		}
		if parsed != status {
			t.Fatalf("round trip %v: got %v", status, parsed)
		}
	}
}

func TestCountInvites_PartitionsRoster(t *testing.T) {
	invites := []JoinedRun{
		{ID: "jr-1", Status: InviteAccepted},
		{ID: "jr-2", Status: InviteAcceptedPending},
		{ID: "jr-3", Status: InviteDeclined},
		{ID: "jr-4", Status: InviteUndecided},
		{ID: "jr-5", Status: InviteUndecided},
		{ID: "jr-6", Status: InviteRefund},
	}

	counts := CountInvites(invites)
	if counts.Accepted != 2 {
		t.Fatalf("accepted: got %d want 2", counts.Accepted)
	}
	if counts.Declined != 1 {
		t.Fatalf("declined: got %d want 1", counts.Declined)
	}
	if counts.Undecided != 2 {
		t.Fatalf("undecided: got %d want 2", counts.Undecided)
	}

	refunds := 0
	for _, invite := range invites {
		if invite.Status == InviteRefund {
			refunds++
		}
	}
	if counts.Accepted+counts.Declined+counts.Undecided+refunds != len(invites) {
		t.Fatal("buckets plus refunds must cover the full invite set")
	}
}
