// Package cryptox holds the cryptographic primitives of the vault: folder
// secret generation and parsing, the AES-256-GCM blob format, and the
// argon2 helpers used for account authentication.
package cryptox

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Secret is a 256-bit folder key. It is shown to the user once, as 64 hex
// characters, and never stored by the service.
type Secret [common.SecretSize]byte

// ErrSecretFormat is returned by ParseSecret for input that is not exactly
// 64 hex characters.
var ErrSecretFormat = errors.New("secret must be 64 hex characters")

// GenerateSecret draws a new secret from crypto/rand. An entropy failure is
// returned to the caller, which must abort folder creation.
func GenerateSecret() (Secret, error) {
	var s Secret
	b, err := common.ReadRandom(common.SecretSize)
	if err != nil {
		return s, fmt.Errorf("entropy source failure: %w", err)
	}
	copy(s[:], b)
	common.WipeByteArray(b)
	return s, nil
}

// ParseSecret decodes the user-facing hex form. Surrounding whitespace is
// ignored; upper-case hex is accepted.
func ParseSecret(text string) (Secret, error) {
	var s Secret
	text = strings.TrimSpace(text)
	if len(text) != hex.EncodedLen(common.SecretSize) {
		return s, ErrSecretFormat
	}
	if _, err := hex.Decode(s[:], []byte(text)); err != nil {
		return s, ErrSecretFormat
	}
	return s, nil
}

// Hex returns the lowercase hex form of the secret for one-time display.
func (s Secret) Hex() string {
	return hex.EncodeToString(s[:])
}

// String keeps secrets out of formatted output and logs.
func (s Secret) String() string {
	return "Secret(redacted)"
}

// Equal compares two secrets in constant time.
func (s Secret) Equal(o Secret) bool {
	return subtle.ConstantTimeCompare(s[:], o[:]) == 1
}

// Wipe zeroes the secret in place.
func (s *Secret) Wipe() {
	common.WipeByteArray(s[:])
}
