package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
)

// AdminAuthorizer gates destructive ledger operations.
type AdminAuthorizer interface {
	Authorize(ctx context.Context, pin string) error
}

// StaticPINAuthorizer accepts exactly one configured PIN.
type StaticPINAuthorizer struct {
	pin []byte
}

func NewStaticPINAuthorizer(pin string) *StaticPINAuthorizer {
	return &StaticPINAuthorizer{pin: []byte(strings.TrimSpace(pin))}
}

func (a *StaticPINAuthorizer) Authorize(_ context.Context, pin string) error {
	if len(a.pin) == 0 {
		return fmt.Errorf("%w: admin pin is not configured", ErrForbidden)
	}
	if subtle.ConstantTimeCompare([]byte(pin), a.pin) != 1 {
		return fmt.Errorf("%w: invalid admin pin", ErrForbidden)
	}
	return nil
}
