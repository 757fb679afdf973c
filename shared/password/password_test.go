package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/shared/password"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "letters and digits", password: "frontdesk1"},
		{name: "unicode letters", password: "réception9"},
		{name: "exactly the bcrypt limit", password: strings.Repeat("a", 71) + "1"},
		{name: "too short", password: "desk1", wantErr: true},
		{name: "over the bcrypt limit", password: strings.Repeat("a", 72) + "1", wantErr: true},
		{name: "no digit", password: "frontdesk", wantErr: true},
		{name: "no letter", password: "12345678", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Check(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, password.ErrPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndVerify(t *testing.T) {
	hash, err := password.Hash("frontdesk1")
	require.NoError(t, err)
	assert.NotEqual(t, "frontdesk1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, password.Verify("frontdesk1", hash))
	assert.ErrorIs(t, password.Verify("frontdesk2", hash), password.ErrInvalidPassword)
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("frontdesk1")
	require.NoError(t, err)

	second, err := password.Hash("frontdesk1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHash_Empty(t *testing.T) {
	_, err := password.Hash("")
	assert.ErrorIs(t, err, password.ErrInvalidPassword)
}

func TestVerify_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		password string
		hash     string
		wantIs   error
	}{
		{name: "empty password", password: "", hash: "$2a$10$abc", wantIs: password.ErrInvalidPassword},
		{name: "empty hash", password: "frontdesk1", hash: "", wantIs: password.ErrInvalidPassword},
		{name: "malformed hash", password: "frontdesk1", hash: "not-a-bcrypt-hash"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)
			require.Error(t, err)

			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			} else {
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			}
		})
	}
}
