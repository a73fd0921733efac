package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256Hash(t *testing.T) {
	h := NewHasher("sha256")

	hash, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.Equal(t, "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", hash)
	assert.True(t, Verify(hash, "admin123"))
	assert.False(t, Verify(hash, "admin124"))
}

func TestBcryptHash(t *testing.T) {
	h := NewHasher("bcrypt")
	h.cost = 4
	assert.Equal(t, SchemeBcrypt, h.Scheme())

	hash, err := h.Hash("admin123")
	require.NoError(t, err)

	assert.True(t, isBcrypt(hash))
	assert.True(t, Verify(hash, "admin123"))
	assert.False(t, Verify(hash, "wrong"))
}

func TestVerifyUppercaseHex(t *testing.T) {
	assert.True(t, Verify("240BE518FABD2724DDB6F04EEB1DA5967448D7E831C08C8FA822809F74C720A9", "admin123"))
}

func TestUnknownSchemeFallsBack(t *testing.T) {
	assert.Equal(t, SchemeSHA256, NewHasher("md5").Scheme())
}
