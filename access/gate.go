package access

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"studio-backend/models"

	"golang.org/x/crypto/bcrypt"
)

const MinPinLength = 4

var ErrPinTooShort = fmt.Errorf("pin must have at least %d digits", MinPinLength)

// SecretStore holds the admin secret; store.Store implements it.
type SecretStore interface {
	LoadPin(ctx context.Context) (string, error)
	SavePin(ctx context.Context, pin string) error
}

// Gate decides whether an entered code opens the admin view.
type Gate interface {
	Verify(ctx context.Context, code string) (bool, error)
	ChangePin(ctx context.Context, pin string) error
}

// PlainPinGate compares the code with the stored secret character for
// character. The secret is kept in cleartext.
type PlainPinGate struct {
	secrets SecretStore
}

func NewPlainPinGate(secrets SecretStore) *PlainPinGate {
	return &PlainPinGate{secrets: secrets}
}

func (g *PlainPinGate) Verify(ctx context.Context, code string) (bool, error) {
	pin, err := g.secrets.LoadPin(ctx)
	if err != nil {
		return false, err
	}
	if pin == "" {
		pin = models.DefaultPin
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(pin)) == 1, nil
}

func (g *PlainPinGate) ChangePin(ctx context.Context, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}
	return g.secrets.SavePin(ctx, pin)
}

// HashedPinGate stores a bcrypt hash instead of the PIN. A secret that is
// not a bcrypt hash yet (the default, or one written by PlainPinGate) is
// compared in plaintext so an existing install keeps working until the PIN
// is changed.
type HashedPinGate struct {
	secrets SecretStore
	cost    int
}

func NewHashedPinGate(secrets SecretStore, cost int) *HashedPinGate {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &HashedPinGate{secrets: secrets, cost: cost}
}

func (g *HashedPinGate) Verify(ctx context.Context, code string) (bool, error) {
	stored, err := g.secrets.LoadPin(ctx)
	if err != nil {
		return false, err
	}
	if !isBcryptHash(stored) {
		return NewPlainPinGate(g.secrets).Verify(ctx, code)
	}
	err = bcrypt.CompareHashAndPassword([]byte(stored), []byte(code))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return err == nil, err
}

func (g *HashedPinGate) ChangePin(ctx context.Context, pin string) error {
	if err := validatePin(pin); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), g.cost)
	if err != nil {
		return fmt.Errorf("hash pin: %w", err)
	}
	return g.secrets.SavePin(ctx, string(hashed))
}

func validatePin(pin string) error {
	if len(pin) < MinPinLength {
		return ErrPinTooShort
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
