package credential

import (
	"errors"

	"github.com/gorilla/securecookie"
)

// tokenName keys the MAC so tokens cannot be replayed as some other
// securecookie value.
const tokenName = "username"

// ErrInvalidToken is returned by Verify for anything not produced by Sign
// with the same secret, including tampered tokens.
var ErrInvalidToken = errors.New("credential: invalid token")

// Signer signs and verifies the opaque session token carried in the username
// cookie. Tokens are HMAC-signed with a server-side secret; there is no
// server-side session state behind them.
type Signer struct {
	codec *securecookie.SecureCookie
}

// NewSigner creates a Signer. The secret must be at least 32 bytes.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) < 32 {
		return nil, errors.New("credential: signing secret must be at least 32 bytes")
	}
	return &Signer{codec: securecookie.New(secret, nil)}, nil
}

// Sign wraps value in a signed token.
func (s *Signer) Sign(value string) (string, error) {
	return s.codec.Encode(tokenName, value)
}

// Verify returns the value embedded in token.
func (s *Signer) Verify(token string) (string, error) {
	var value string
	if err := s.codec.Decode(tokenName, token, &value); err != nil {
		return "", ErrInvalidToken
	}
	return value, nil
}
