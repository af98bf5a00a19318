package fine

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Fine is one monetary penalty recorded against a player.
type Fine struct {
	ID         string
	PlayerName string
	Reason     string
	Amount     decimal.Decimal
	Date       time.Time
	Paid       bool
	PaidDate   *time.Time
	CreatedAt  time.Time
}

func (f Fine) Validate() error {
	if strings.TrimSpace(f.PlayerName) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(f.Reason) == "" {
		return fmt.Errorf("reason is required")
	}
	if f.Amount.IsNegative() {
		return fmt.Errorf("amount must be >= 0")
	}
	if f.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if f.Paid != (f.PaidDate != nil) {
		return fmt.Errorf("paid date must be set exactly when the fine is paid")
	}
	return nil
}

// Filter narrows fine listings. Zero values match everything.
type Filter struct {
	PlayerName     string
	ReasonContains string
	Paid           *bool
	From           *time.Time
	To             *time.Time
	Limit          int
}

func (f Filter) Matches(item Fine) bool {
	if f.PlayerName != "" && item.PlayerName != f.PlayerName {
		return false
	}
	if f.ReasonContains != "" && !strings.Contains(strings.ToLower(item.Reason), strings.ToLower(f.ReasonContains)) {
		return false
	}
	if f.Paid != nil && item.Paid != *f.Paid {
		return false
	}
	if f.From != nil && item.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && item.Date.After(*f.To) {
		return false
	}
	return true
}

// ParseDate accepts ISO dates (with or without a time part) and day-first DD/MM/YYYY dates.
// The result is midnight UTC of the calendar day.
func ParseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	layouts := []string{DateLayout, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "02/01/2006", "2/1/2006", "02-01-2006"}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Day(parsed), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseAmount parses a money string, tolerating currency symbols and thousands separators.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("£", "", "$", "", ",", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return amount.Round(2), nil
}
