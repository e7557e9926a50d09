package hash_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maksline/marketfront/internal/hash"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hashed, err := hash.HashPassword("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hashed)

	require.True(t, hash.CheckPassword(hashed, "secret1"))
	require.False(t, hash.CheckPassword(hashed, "wrong"))
	require.False(t, hash.CheckPassword("not-a-hash", "secret1"))
}
