package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samarthnaik-lab/expert-claims-backend-sub001/domain"
)

func TestPasswordService_HashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, looksHashed(hash))

	ok, mode := svc.Verify(hash, "correct horse battery staple")
	assert.True(t, ok)
	assert.Equal(t, domain.CompareBcrypt, mode)

	ok, mode = svc.Verify(hash, "wrong password")
	assert.False(t, ok)
	assert.Equal(t, domain.CompareBcrypt, mode)
}

func TestPasswordService_LegacyHashToHash(t *testing.T) {
	svc := NewPasswordService()
	stored := "$2a$10$abcdefghijklmnopqrstuv"

	ok, mode := svc.Verify(stored, stored)
	assert.True(t, ok)
	assert.Equal(t, domain.CompareLegacyHash, mode)

	ok, mode = svc.Verify(stored, "$2a$10$differenthashvalue0000")
	assert.False(t, ok)
	assert.Equal(t, domain.CompareLegacyHash, mode)

	hashToHash, plaintext := svc.LegacyCompareCounts()
	assert.Equal(t, int64(2), hashToHash)
	assert.Equal(t, int64(0), plaintext)
}

func TestPasswordService_PlaintextFallback(t *testing.T) {
	svc := NewPasswordService()

	ok, mode := svc.Verify("letmein", "letmein")
	assert.True(t, ok)
	assert.Equal(t, domain.ComparePlaintext, mode)

	ok, mode = svc.Verify("letmein", "wrong")
	assert.False(t, ok)
	assert.Equal(t, domain.ComparePlaintext, mode)

	_, plaintext := svc.LegacyCompareCounts()
	assert.Equal(t, int64(2), plaintext)
}

func TestPasswordService_ModeSelectedByShape(t *testing.T) {
	svc := NewPasswordService()
	hash, err := svc.Hash("secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		stored   string
		supplied string
		wantMode domain.PasswordCompareMode
	}{
		{"hash vs raw", hash, "secret", domain.CompareBcrypt},
		{"hash vs hash", hash, hash, domain.CompareLegacyHash},
		{"raw vs raw", "secret", "secret", domain.ComparePlaintext},
		{"raw vs hash", "secret", hash, domain.ComparePlaintext},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mode := svc.Verify(tt.stored, tt.supplied)
			assert.Equal(t, tt.wantMode, mode)
		})
	}
}

func TestLooksHashed(t *testing.T) {
	assert.True(t, looksHashed("$2a$10$x"))
	assert.True(t, looksHashed("$2b$12$x"))
	assert.True(t, looksHashed("$2y$10$x"))
	assert.False(t, looksHashed("plaintext"))
	assert.False(t, looksHashed("$1$md5crypt"))
	assert.False(t, looksHashed(""))
}
