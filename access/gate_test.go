package access

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memorySecrets struct {
	pin string
	err error
}

func (m *memorySecrets) LoadPin(ctx context.Context) (string, error) { return m.pin, m.err }

func (m *memorySecrets) SavePin(ctx context.Context, pin string) error {
	m.pin = pin
	return m.err
}

func TestPlainPinGate(t *testing.T) {
	ctx := context.Background()
	secrets := &memorySecrets{pin: "4821"}
	gate := NewPlainPinGate(secrets)

	tests := []struct {
		code string
		want bool
	}{
		{"4821", true},
		{"4820", false},
		{"482", false},
		{"48210", false},
		{"", false},
		{" 4821", false},
	}
	for _, tt := range tests {
		ok, err := gate.Verify(ctx, tt.code)
		require.NoError(t, err)
		assert.Equal(t, tt.want, ok, "code %q", tt.code)
	}
}

func TestPlainPinGate_DefaultPin(t *testing.T) {
	gate := NewPlainPinGate(&memorySecrets{})
	ok, err := gate.Verify(context.Background(), "1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPlainPinGate_ChangePin(t *testing.T) {
	ctx := context.Background()
	secrets := &memorySecrets{pin: "1234"}
	gate := NewPlainPinGate(secrets)

	assert.ErrorIs(t, gate.ChangePin(ctx, "123"), ErrPinTooShort)
	assert.Equal(t, "1234", secrets.pin)

	require.NoError(t, gate.ChangePin(ctx, "98765"))
	assert.Equal(t, "98765", secrets.pin, "stored in cleartext")

	ok, _ := gate.Verify(ctx, "1234")
	assert.False(t, ok)
	ok, _ = gate.Verify(ctx, "98765")
	assert.True(t, ok)
}

func TestGate_StoreErrors(t *testing.T) {
	boom := errors.New("offline")
	for _, gate := range []Gate{NewPlainPinGate(&memorySecrets{err: boom}), NewHashedPinGate(&memorySecrets{err: boom}, bcrypt.MinCost)} {
		ok, err := gate.Verify(context.Background(), "1234")
		assert.False(t, ok)
		assert.ErrorIs(t, err, boom)
	}
}

func TestHashedPinGate(t *testing.T) {
	ctx := context.Background()
	secrets := &memorySecrets{}
	gate := NewHashedPinGate(secrets, bcrypt.MinCost)

	ok, err := gate.Verify(ctx, "1234")
	require.NoError(t, err)
	assert.True(t, ok, "falls back to the default pin before a hash is stored")

	require.NoError(t, gate.ChangePin(ctx, "5555"))
	assert.True(t, strings.HasPrefix(secrets.pin, "$2"))
	assert.NotContains(t, secrets.pin, "5555")

	ok, err = gate.Verify(ctx, "5555")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = gate.Verify(ctx, "1234")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, gate.ChangePin(ctx, "12"), ErrPinTooShort)
}
