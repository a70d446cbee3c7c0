package metadata

import "context"

// Keys of the offline sign-in record.
const (
	KeyUsername = "username"
	KeySalt     = "salt"
	KeyVerifier = "verifier"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the stored values for keys. Missing keys are absent
	// from the map.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, values map[string][]byte) error
	Clear(ctx context.Context) error
}
