// Package metadata stores small key/value records in the client database:
// the signed-in user name, the account salt and the offline login verifier.
//
// Get returns (nil, nil) for a missing key.
package metadata
