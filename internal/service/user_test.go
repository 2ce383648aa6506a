package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email   string
		wantErr bool
	}{
		{"planner@klinik.example", false},
		{"a@b.co", false},
		{"", true},
		{"no-at-sign", true},
		{"@leading.at", true},
		{"trailing@", true},
		{"no@dot", true},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := validateEmail(tt.email)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, validatePassword("short"))
	assert.NoError(t, validatePassword("longenough"))

	long := make([]byte, MaxPasswordLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, validatePassword(string(long)))
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := generateSessionToken()
	require.NoError(t, err)
	b, err := generateSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, SessionTokenBytes*2) // hex-encoded
	assert.NotEqual(t, a, b)
}

func TestDummyHashIsValidBcrypt(t *testing.T) {
	// The dummy hash must be parseable so the timing-equalizing comparison in
	// Login exercises the full bcrypt cost.
	err := bcrypt.CompareHashAndPassword(dummyHash, []byte("any password"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)
}
