package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength  = 16
	timeCost    = 1
	memoryKB    = 64 * 1024
	parallelism = 4
	keyLength   = 32
)

// Hasher derives and checks salted password digests. The digest is argon2id
// over username+password, stored together with its salt as
// "base64(digest),base64(salt)".
type Hasher struct{}

// NewHasher creates a Hasher with the default argon2id parameters.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives a digest for the given credentials with a fresh random salt.
func (h *Hasher) Hash(username, password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return h.HashWithSalt(username, password, salt), nil
}

// HashWithSalt derives the composite digest string for a known salt.
func (h *Hasher) HashWithSalt(username, password string, salt []byte) string {
	digest := argon2.IDKey([]byte(username+password), salt, timeCost, memoryKB, parallelism, keyLength)
	return base64.StdEncoding.EncodeToString(digest) + "," + base64.StdEncoding.EncodeToString(salt)
}

// Verify recomputes the digest with the salt stored in encoded and compares
// in constant time.
func (h *Hasher) Verify(username, password, encoded string) bool {
	digestPart, saltPart, ok := strings.Cut(encoded, ",")
	if !ok {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(saltPart)
	if err != nil || len(salt) == 0 {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(digestPart)
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(username+password), salt, timeCost, memoryKB, parallelism, keyLength)
	return subtle.ConstantTimeCompare(got, want) == 1
}
