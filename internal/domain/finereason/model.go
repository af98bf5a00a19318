package finereason

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrAlreadyExists = errors.New("fine reason already exists")

// Reason is one entry of the league's fine catalog.
type Reason struct {
	ID       string
	Text     string
	Amount   decimal.Decimal
	Position int
}

func (r Reason) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("reason text is required")
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("reason amount must be >= 0")
	}
	return nil
}

var defaultCatalog = []struct {
	text   string
	amount string
}{
	{"10 minutes late", "2.00"},
	{"Not declaring availability by 6.30pm (via poll)", "2.50"},
	{"No show after declaring available", "5.00"},
	{"Rage Quit", "4.00"},
	{"Being a worst", "1.00"},
	{"Not passing on a 2-1 and not scoring", "2.00"},
	{"Avoidable mistake leading to a goal", "2.00"},
	{"Red card", "1.00"},
	{"Unnecessary red card", "2.00"},
	{"Not attending booze baton", "100.00"},
	{"Fucking a lead (worst fine for each player responsible)", "1.00"},
	{"Losing 3 in a row (£2 per player)", "2.00"},
	{"Losing after 3 in a row", "1.00"},
	{"Obscene Spacker (Cost Benidorm Utd Win or Draw)", "2.00"},
	{"Average Rating Following Defeat (Attacker 6.9 and below, Midfield 6.4 and below, Defender inc CDM 5.9 and below)", "2.00"},
	{"First Half Red Card", "3.00"},
	{"Spirit of Booze baton", "4.00"},
	{"Repeatedly bringing up old fines", "2.00"},
	{"Unavailable (Sunday to Thursday)", "5.00"},
	{"3 Goal Loss", "1.00"},
	{"Each Goal after 3 goals (£1 per goal)", "1.00"},
	{"Away from Controller", "3.00"},
	{"Rating Fine (6.0 - 6.4)", "1.00"},
	{"Rating Fine (5.9 and below)", "2.00"},
	{"Team Agreed quit Game", "1.00"},
	{"25% Late Fine Increase", "2.00"},
}

// Defaults returns the catalog the league starts with, in display order. IDs are left empty.
func Defaults() []Reason {
	out := make([]Reason, 0, len(defaultCatalog))
	for i, item := range defaultCatalog {
		out = append(out, Reason{
			Text:     item.text,
			Amount:   decimal.RequireFromString(item.amount),
			Position: i + 1,
		})
	}
	return out
}
