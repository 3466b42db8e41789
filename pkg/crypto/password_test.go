package crypto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password123!")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)

	assert.True(t, CheckPassword("Password123!", hash))
	assert.False(t, CheckPassword("WrongPass", hash))
	assert.False(t, CheckPassword("Password123!", "not-a-hash"))
}

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(16)
	assert.NoError(t, err)
	assert.Len(t, token, 32) // hex encoded

	sid, err := GenerateSessionID()
	assert.NoError(t, err)
	assert.Len(t, sid, 64)

	other, err := GenerateSessionID()
	assert.NoError(t, err)
	assert.NotEqual(t, sid, other)
}

func TestHashPasswordAndGenerateRandomToken_ErrorBranches(t *testing.T) {
	origBcrypt := bcryptGenerateFromPassword
	origRandRead := randomRead
	t.Cleanup(func() {
		bcryptGenerateFromPassword = origBcrypt
		randomRead = origRandRead
	})

	bcryptGenerateFromPassword = func([]byte, int) ([]byte, error) {
		return nil, errors.New("bcrypt failed")
	}
	_, err := HashPassword("Password123!")
	assert.Error(t, err)

	bcryptGenerateFromPassword = origBcrypt
	randomRead = func([]byte) (int, error) {
		return 0, errors.New("rand failed")
	}
	_, err = GenerateSessionID()
	assert.Error(t, err)
}
