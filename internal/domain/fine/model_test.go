package fine

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	for _, raw := range []string{"2026-03-07", "07/03/2026", "7/3/2026", "2026-03-07T19:45:00Z", " 2026-03-07 "} {
		got, err := ParseDate(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !want.Equal(got) {
			t.Fatalf("%q parsed as %s", raw, got)
		}
	}

	if _, err := ParseDate("next tuesday"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := ParseDate(""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for empty input, got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{"£2.50": "2.5", "$1,000": "1000", "4": "4", " 0.333 ": "0.33"}
	for raw, want := range cases {
		got, err := ParseAmount(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !decimal.RequireFromString(want).Equal(got) {
			t.Fatalf("%q parsed as %s, want %s", raw, got, want)
		}
	}

	for _, raw := range []string{"two quid", "£"} {
		if _, err := ParseAmount(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestFilterMatches(t *testing.T) {
	paid := true
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	item := Fine{PlayerName: "Dave", Reason: "Rage Quit", Date: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), Paid: true}

	cases := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{name: "empty", filter: Filter{}, want: true},
		{name: "all fields", filter: Filter{PlayerName: "Dave", ReasonContains: "rage", Paid: &paid, From: &from}, want: true},
		{name: "other player", filter: Filter{PlayerName: "Sam"}, want: false},
		{name: "other reason", filter: Filter{ReasonContains: "late"}, want: false},
		{name: "before range end", filter: Filter{To: &to}, want: false},
	}
	for _, tc := range cases {
		if got := tc.filter.Matches(item); got != tc.want {
			t.Fatalf("%s: Matches=%t want=%t", tc.name, got, tc.want)
		}
	}
}

func TestFineValidate(t *testing.T) {
	day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	valid := Fine{PlayerName: "Dave", Reason: "Red card", Amount: decimal.NewFromInt(1), Date: day}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid fine, got %v", err)
	}

	negative := valid
	negative.Amount = decimal.NewFromInt(-1)
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected error for negative amount")
	}

	paidWithoutDate := valid
	paidWithoutDate.Paid = true
	if err := paidWithoutDate.Validate(); err == nil {
		t.Fatalf("expected error for paid fine without paid date")
	}
}
