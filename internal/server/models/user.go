// Package models defines server-side records persisted in PostgreSQL.
package models

import "time"

// User is an account. The server keeps the argon2 salt and the SHA-256
// verifier of the derived key; the password itself never leaves the client.
type User struct {
	ID        string
	UserName  string
	Salt      []byte
	Verifier  []byte
	CreatedAt time.Time
}
