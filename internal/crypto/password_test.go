package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	encoded, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	// Соль случайная — повторный хеш того же пароля должен отличаться
	encoded2, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, encoded, encoded2)
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("my-secret-password")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		encoded  string
		wantErr  bool
	}{
		{name: "correct password", password: "my-secret-password", encoded: encoded, wantErr: false},
		{name: "wrong password", password: "not-the-password", encoded: encoded, wantErr: true},
		{name: "empty password", password: "", encoded: encoded, wantErr: true},
		{name: "malformed hash", password: "my-secret-password", encoded: "$bogus$", wantErr: true},
		{name: "wrong algorithm", password: "x", encoded: "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword(tt.password, tt.encoded)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashToken(t *testing.T) {
	hash1, err := HashToken("refresh-token-abc")
	require.NoError(t, err)

	// SHA256 детерминирован
	hash2, err := HashToken("refresh-token-abc")
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)
	assert.Len(t, hash1, 64) // hex-encoded 32 bytes

	hash3, err := HashToken("refresh-token-xyz")
	require.NoError(t, err)
	assert.NotEqual(t, hash1, hash3)

	_, err = HashToken("")
	assert.Error(t, err)
}
