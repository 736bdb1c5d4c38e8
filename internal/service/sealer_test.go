package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer("server-secret")
	require.NoError(t, err)

	sealed, err := s.Seal("AIzaSy-test-key")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "AIzaSy")

	again, err := s.Seal("AIzaSy-test-key")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "AIzaSy-test-key", plain)
}

func TestSealer_RejectsForeignOrCorruptValues(t *testing.T) {
	a, err := NewSealer("secret-a")
	require.NoError(t, err)
	b, err := NewSealer("secret-b")
	require.NoError(t, err)

	sealed, err := a.Seal("value")
	require.NoError(t, err)

	_, err = b.Open(sealed)
	assert.Error(t, err)

	_, err = a.Open("not base64!")
	assert.Error(t, err)

	_, err = a.Open("AAAA")
	assert.Error(t, err)
}

func TestNewSealer_EmptySecret(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "••••••••wxyz", MaskSecret("abcdefghijklmnopqrstuvwxyz"))
	assert.Equal(t, "•••", MaskSecret("abc"))
	assert.Equal(t, "", MaskSecret(""))
}
