package models

import "time"

// RefreshToken is an issued refresh token. Token holds the caller's plain
// value; the repository only ever persists its digest.
type RefreshToken struct {
	UserID  string
	Token   string
	Expires time.Time
}
