package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-018/indiveg-hub/pkg/config"
)

func testHasher() *Hasher {
	// Small parameters keep the test fast.
	return NewHasher(config.Password{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("demo123")
	require.NoError(t, err)

	ok, err := h.Verify("demo123", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("demo123")
	require.NoError(t, err)
	second, err := h.Hash("demo123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("demo123", "not-a-hash")
	assert.ErrorIs(t, err, ErrHashFormat)
}
