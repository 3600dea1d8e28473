package credential_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bramble/internal/credential"
)

var testSecret = []byte(strings.Repeat("s", 32))

func TestNewSignerRejectsShortSecret(t *testing.T) {
	_, err := credential.NewSigner([]byte("too short"))
	require.Error(t, err)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := credential.NewSigner(testSecret)
	require.NoError(t, err)

	for _, value := range []string{"alice", "bob_42", "a", "user-with-hyphens"} {
		token, err := signer.Sign(value)
		require.NoError(t, err)

		got, err := signer.Verify(token)
		require.NoError(t, err)
		require.Equal(t, value, got)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	signer, err := credential.NewSigner(testSecret)
	require.NoError(t, err)

	token, err := signer.Sign("alice")
	require.NoError(t, err)

	// Flipping any single byte must invalidate the token.
	for i := 0; i < len(token); i++ {
		tampered := []byte(token)
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}

		_, err := signer.Verify(string(tampered))
		require.ErrorIs(t, err, credential.ErrInvalidToken, "byte %d", i)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signer, err := credential.NewSigner(testSecret)
	require.NoError(t, err)
	other, err := credential.NewSigner([]byte(strings.Repeat("x", 32)))
	require.NoError(t, err)

	token, err := other.Sign("alice")
	require.NoError(t, err)

	_, err = signer.Verify(token)
	require.ErrorIs(t, err, credential.ErrInvalidToken)
}
