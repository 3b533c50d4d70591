package ports

import (
	"context"
)

// Secret is a retrieved secret value with minimal metadata
type Secret struct {
	Value   string // the secret material, e.g. an HMAC key
	Version string // backend version identifier, "" when the backend has none
}

// SecretSource is the read-side port for secret backends. The server
// resolves the checkout profile's HMAC key through it at startup and on
// demand; secret values are never logged or persisted by this service.
type SecretSource interface {
	// GetSecret retrieves a secret by its backend-specific path.
	// Returns an error when the secret does not exist, the caller lacks
	// permission, or the backend is unreachable.
	GetSecret(ctx context.Context, path string) (*Secret, error)
}
