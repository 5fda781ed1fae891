package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "revoked:"

type TokenRepository struct {
	redis *redis.Client
}

func NewTokenRepository(redis *redis.Client) *TokenRepository {
	return &TokenRepository{
		redis: redis,
	}
}

func (tr *TokenRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return tr.redis.Set(ctx, revokedTokenPrefix+jti, 1, ttl).Err()
}

func (tr *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	count, err := tr.redis.Exists(ctx, revokedTokenPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
