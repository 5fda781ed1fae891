package interfaces

import (
	"context"
	"time"
)

// TokenStore remembers revoked session ids (jti) until their tokens would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
