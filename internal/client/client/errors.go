package client

import "errors"

var (
	// ErrUnavailable means the server could not be reached. It always comes
	// wrapped together with common.ErrStorageUnavailable.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized is a rejected login or a session the server no longer
	// accepts.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrLocalDataNotAvailable means offline sign-in was attempted before any
	// online sign-in stored a verifier.
	ErrLocalDataNotAvailable = errors.New("no offline credentials stored")
)
