package finereason

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDefaults(t *testing.T) {
	reasons := Defaults()
	if len(reasons) != 26 {
		t.Fatalf("expected 26 default reasons, got %d", len(reasons))
	}

	seen := make(map[string]struct{}, len(reasons))
	for i, r := range reasons {
		if err := r.Validate(); err != nil {
			t.Fatalf("default reason %d invalid: %v", i, err)
		}
		if r.Position != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, r.Position)
		}
		if _, dup := seen[r.Text]; dup {
			t.Fatalf("duplicate default reason %q", r.Text)
		}
		seen[r.Text] = struct{}{}
	}

	if !reasons[9].Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected booze baton absence to cost 100, got %s", reasons[9].Amount)
	}
}
