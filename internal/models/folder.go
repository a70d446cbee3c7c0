// Package models defines the vault domain types shared by the engine,
// the client and the server: folders, their decrypted content and the
// lockout bookkeeping.
package models

import "time"

// Folder is a named container whose payload is only ever stored sealed.
type Folder struct {
	// ID is assigned by the storage collaborator.
	ID string `json:"id"`

	// OwnerID is the user the folder belongs to. Ownership is enforced by storage.
	OwnerID string `json:"ownerId,omitempty"`

	// Name is the display name.
	Name string `json:"name"`

	// CreatedAt is the creation time in UTC.
	CreatedAt time.Time `json:"createdAt"`

	// Ciphertext is the sealed Content. Nil for a folder that was never sealed.
	Ciphertext []byte `json:"ciphertext,omitempty"`
}

// Sealed reports whether the folder carries a ciphertext.
func (f *Folder) Sealed() bool {
	return f != nil && len(f.Ciphertext) > 0
}

// LockoutRecord is the per-folder failed-attempt state.
//
// A zero BlockedUntil means the folder is open with FailedAttempts
// consecutive failures behind it.
type LockoutRecord struct {
	FailedAttempts int       `json:"failedAttempts"`
	BlockedUntil   time.Time `json:"blockedUntil,omitempty"`
}

// BlockedAt reports whether the record blocks attempts at now.
func (r LockoutRecord) BlockedAt(now time.Time) bool {
	return !r.BlockedUntil.IsZero() && now.Before(r.BlockedUntil)
}
