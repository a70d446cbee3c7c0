// Package client talks to the GophVault server and bootstraps the local
// database.
//
// # Overview
//
//  1. Client is the transport-agnostic contract the CLI uses: account calls
//     (Register, GetSalt, Login, Logout, Ping), the folder store operations
//     and backup upload URLs.
//  2. GRPCClient implements it over gRPC. An interceptor injects the access
//     token and transparently refreshes it once when the server reports it
//     expired. gRPC status codes are mapped back to sentinel errors.
//  3. OpenDatabase and RunMigrations prepare the SQLite file that holds
//     offline credentials, the folder cache and lockout records.
//
// # Error Handling
//
// Transport outages are reported as ErrUnavailable wrapped together with
// common.ErrStorageUnavailable, so both the CLI and the vault engine can
// match them with errors.Is. Authentication failures map to ErrUnauthorized.
package client
