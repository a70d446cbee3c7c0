package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// BlobVersion is the leading byte of every sealed blob.
const BlobVersion byte = 0x01

// NonceSize is the AES-GCM nonce length embedded after the version byte.
const NonceSize = 12

// ErrOpen is returned by OpenBlob for any failure. It intentionally carries
// no detail about which check failed.
var ErrOpen = errors.New("cryptox: cannot open blob")

// MakeVerifier returns the SHA-256 of a derived master key. Only the verifier
// is ever sent to the server.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

// DeriveMasterKey stretches an account password with argon2id. It is used
// for account authentication only; folder secrets are random.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	return x
}

// SealBlob encrypts plaintext with AES-256-GCM and returns a self-contained
// blob:
//
//	version (1 byte) || nonce (12 bytes) || ciphertext || tag (16 bytes)
//
// The version byte is bound as associated data, so it cannot be altered
// without failing authentication. A fresh random nonce is drawn per call.
func SealBlob(plaintext []byte, key Secret) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("nonce: %w", err)
	}

	header := []byte{BlobVersion}
	out := make([]byte, 0, 1+NonceSize+len(plaintext)+aesgcm.Overhead())
	out = append(out, header...)
	out = append(out, nonce...)
	out = aesgcm.Seal(out, nonce, plaintext, header)

	return out, nil
}

// OpenBlob reverses SealBlob. Truncated input, an unknown version, a wrong
// key or any modified byte all yield ErrOpen.
func OpenBlob(blob []byte, key Secret) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, ErrOpen
	}

	if len(blob) < 1+NonceSize+aesgcm.Overhead() {
		return nil, ErrOpen
	}
	if blob[0] != BlobVersion {
		return nil, ErrOpen
	}

	nonce := blob[1 : 1+NonceSize]
	plaintext, err := aesgcm.Open(nil, nonce, blob[1+NonceSize:], blob[:1])
	if err != nil {
		return nil, ErrOpen
	}
	return plaintext, nil
}

func newGCM(key Secret) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
