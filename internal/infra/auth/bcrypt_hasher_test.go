package auth

import (
	"strings"
	"testing"

	"gatekeeper/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasherWithCost(cost int) *bcryptHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: cost}}

	return NewBcryptHasher(cfg).(*bcryptHasher)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newHasherWithCost(4)

	hash, err := hasher.Hash("Str0ngPass!")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ngPass!", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.True(t, hasher.Check("Str0ngPass!", hash))
	assert.False(t, hasher.Check("WrongPass1!", hash))
	assert.False(t, hasher.Check("Str0ngPass!", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := newHasherWithCost(4)

	first, err := hasher.Hash("Str0ngPass!")
	require.NoError(t, err)
	second, err := hasher.Hash("Str0ngPass!")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Str0ngPass!", first))
	assert.True(t, hasher.Check("Str0ngPass!", second))
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{name: "nil config", cfg: nil},
		{name: "nil auth section", cfg: &config.Config{}},
		{name: "cost too low", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 2}}},
		{name: "cost too high", cfg: &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
		})
	}
}
