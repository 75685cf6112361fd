package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestRoundTrip(t *testing.T) {
	svc, err := New(testKey)
	require.NoError(t, err)
	require.True(t, svc.Configured())

	sealed, err := svc.EncryptString("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "JBSWY3DPEHPK3PXP")

	plain, err := svc.DecryptString(sealed)
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", plain)
}

func TestUnconfiguredRefuses(t *testing.T) {
	svc, err := New("")
	require.NoError(t, err)
	assert.False(t, svc.Configured())

	_, err = svc.EncryptString("x")
	assert.ErrorIs(t, err, ErrNoKey)
	_, err = svc.DecryptString([]byte("x"))
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestRejectsWrongKeyLength(t *testing.T) {
	_, err := New(strings.Repeat("a", 10))
	require.Error(t, err)
}

func TestDecryptShortCiphertext(t *testing.T) {
	svc, err := New(testKey)
	require.NoError(t, err)
	_, err = svc.Decrypt([]byte{1, 2})
	assert.ErrorIs(t, err, ErrCiphertextShort)
}
