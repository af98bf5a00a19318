package id

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for ledger rows.
type Generator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return value.String(), nil
}

// SequenceGenerator hands out predictable ids, for tests and seed data.
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

func (g *SequenceGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s%d", g.Prefix, g.next), nil
}
