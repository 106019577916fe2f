package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	v := NewVerifier("s3cret")
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	in := User{ID: "u-1", Email: "ada@example.com", FullName: "Ada L", CreatedAt: created}

	tok, err := v.Sign(in, time.Hour)
	require.NoError(t, err)

	got, err := v.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestVerifyRejects(t *testing.T) {
	v := NewVerifier("s3cret")

	expired, err := v.Sign(User{ID: "u-1"}, -time.Minute)
	require.NoError(t, err)
	otherKey, err := NewVerifier("other").Sign(User{ID: "u-1"}, time.Hour)
	require.NoError(t, err)
	noSubject, err := v.Sign(User{}, time.Hour)
	require.NoError(t, err)

	tests := map[string]string{
		"expired":    expired,
		"wrong key":  otherKey,
		"no subject": noSubject,
		"garbage":    "not-a-jwt",
		"empty":      "",
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{FullName: "Ada Lovelace", Email: "ada@example.com"}, "Ada Lovelace"},
		{User{FullName: "  ", Email: "ada@example.com"}, "ada"},
		{User{}, "User"},
		{User{Email: "@example.com"}, "User"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.user.DisplayName())
	}
}
