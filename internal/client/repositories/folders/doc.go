// Package folders is the client-side copy of sealed folders.
//
// It serves two roles: the primary store when the client runs offline, and
// a read cache of the server's folders while online. Rows only ever hold
// ciphertext.
//
// Database failures are wrapped in common.ErrStorageUnavailable; a missing
// row is common.ErrorNotFound.
package folders
