// Package cli provides the interactive GophVault command-line client.
//
// It wires configuration, the local database, the server connection and the
// vault engine into a REPL. Folders are created with a one-time secret that
// the user must keep; every command touching folder content asks for it.
//
// Commands:
//   - register, login, logout
//   - create, list, status, unlock
//   - notes, addfile, rmfile, getfile, delete
//   - backup, upload
//
// The client works online (server is the source of truth, reads fall back to
// a local cache) or offline (-o, folders live only in the local database).
// A background watcher pings the server and flips the prompt's mode.
package cli
