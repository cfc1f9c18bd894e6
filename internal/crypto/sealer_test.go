package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAESSealer_RoundTrip(t *testing.T) {
	s, err := NewCredentialSealer("correct horse battery staple")
	require.NoError(t, err)

	sealed, err := s.Seal("token-0123456789")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedPrefix))
	assert.NotContains(t, sealed, "token-0123456789")

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-0123456789", opened)
}

func TestAESSealer_FreshNonce(t *testing.T) {
	s, err := NewCredentialSealer("pass")
	require.NoError(t, err)

	a, err := s.Seal("same")
	require.NoError(t, err)
	b, err := s.Seal("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAESSealer_KeyIsStableAcrossInstances(t *testing.T) {
	first, err := NewCredentialSealer("pass")
	require.NoError(t, err)
	second, err := NewCredentialSealer("pass")
	require.NoError(t, err)

	sealed, err := first.Seal("credential-value")
	require.NoError(t, err)

	opened, err := second.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "credential-value", opened)
}

func TestAESSealer_WrongKey(t *testing.T) {
	right, err := NewCredentialSealer("right")
	require.NoError(t, err)
	wrong, err := NewCredentialSealer("wrong")
	require.NoError(t, err)

	sealed, err := right.Seal("credential-value")
	require.NoError(t, err)

	_, err = wrong.Open(sealed)
	assert.ErrorIs(t, err, ErrMalformedSealed)
}

func TestAESSealer_OpenPassesThroughUnsealed(t *testing.T) {
	s, err := NewCredentialSealer("pass")
	require.NoError(t, err)

	opened, err := s.Open("legacy-plain-token")
	require.NoError(t, err)
	assert.Equal(t, "legacy-plain-token", opened)
}

func TestAESSealer_OpenMalformed(t *testing.T) {
	s, err := NewCredentialSealer("pass")
	require.NoError(t, err)

	tests := []string{
		sealedPrefix + "%%%not-base64",
		sealedPrefix + "AAEC",
	}
	for _, in := range tests {
		_, err := s.Open(in)
		assert.ErrorIs(t, err, ErrMalformedSealed, in)
	}
}

func TestPlainSealer(t *testing.T) {
	s, err := NewCredentialSealer("")
	require.NoError(t, err)

	sealed, err := s.Seal("token-0123456789")
	require.NoError(t, err)
	assert.Equal(t, "token-0123456789", sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "token-0123456789", opened)

	_, err = s.Open(sealedPrefix + "abc")
	assert.ErrorIs(t, err, ErrMalformedSealed)
}
