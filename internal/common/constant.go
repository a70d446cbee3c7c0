// Package common contains shared constants and sentinel errors used across
// GophVault components.
package common

import "time"

// AccessTokenHeaderName is the gRPC/HTTP metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

const (
	// SecretSize is the length in bytes of a folder secret (256 bits).
	SecretSize = 32

	// MaxFailedAttempts is the number of consecutive wrong keys that blocks a folder.
	MaxFailedAttempts = 3

	// LockoutDuration is how long a folder stays blocked after MaxFailedAttempts.
	LockoutDuration = 24 * time.Hour

	// MaxAttachmentSize caps a single attachment payload (10 MiB).
	MaxAttachmentSize = 10 * 1024 * 1024

	// MaxSealedSize caps the serialized content handed to the cipher (64 MiB).
	MaxSealedSize = 64 * 1024 * 1024
)
