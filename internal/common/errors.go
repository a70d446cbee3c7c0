// Package common defines shared constants and sentinel errors used across
// client and server layers of GophVault. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
	"time"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrNotSignedIn    = errors.New("not signed in")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Vault engine errors. Wrong secret and corrupted ciphertext are
	// deliberately reported with the same value.
	ErrInvalidKey         = errors.New("invalid encryption key")
	ErrLocked             = errors.New("folder is locked")
	ErrLockedOut          = errors.New("too many failed attempts")
	ErrEncoding           = errors.New("encoding error")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Content and backup validation.
	ErrAttachmentTooLarge = errors.New("attachment too large")
	ErrMalformedBundle    = errors.New("malformed backup bundle")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUploadUnavailable  = errors.New("backup upload is not configured")
)

// InvalidKeyError reports a rejected key together with the number of
// attempts left before the folder is blocked.
type InvalidKeyError struct {
	AttemptsRemaining int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("%s: %d attempts remaining", ErrInvalidKey, e.AttemptsRemaining)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// LockedError is returned when an attempt hits an active block. The attempt
// was not evaluated.
type LockedError struct {
	Remaining time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("%s for %s", ErrLocked, e.Remaining.Round(time.Second))
}

func (e *LockedError) Unwrap() error { return ErrLocked }

// LockedOutError is returned by the attempt that triggered a block.
type LockedOutError struct {
	Until time.Time
}

func (e *LockedOutError) Error() string {
	return fmt.Sprintf("%s: blocked until %s", ErrLockedOut, e.Until.UTC().Format(time.RFC3339))
}

func (e *LockedOutError) Unwrap() error { return ErrLockedOut }

// Kind is the closed set of engine error categories.
type Kind int

const (
	KindNone Kind = iota
	KindInvalidKey
	KindLocked
	KindLockedOut
	KindEncoding
	KindStorageUnavailable
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidKey:
		return "invalid_key"
	case KindLocked:
		return "locked"
	case KindLockedOut:
		return "locked_out"
	case KindEncoding:
		return "encoding"
	case KindStorageUnavailable:
		return "storage_unavailable"
	default:
		return "other"
	}
}

// KindOf classifies err so callers can switch exhaustively instead of
// matching on messages.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrLockedOut):
		return KindLockedOut
	case errors.Is(err, ErrLocked):
		return KindLocked
	case errors.Is(err, ErrInvalidKey):
		return KindInvalidKey
	case errors.Is(err, ErrEncoding):
		return KindEncoding
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	default:
		return KindOther
	}
}
