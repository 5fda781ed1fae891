package repositories

import (
	"context"
	"sync"
	"time"
)

// MemoryTokenRepository is the revocation store used when Redis is disabled.
// Revocations do not survive a restart and are not shared between instances.
type MemoryTokenRepository struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenRepository() *MemoryTokenRepository {
	return &MemoryTokenRepository{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (mr *MemoryTokenRepository) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.revoked[jti] = mr.now().Add(ttl)
	mr.evictExpired()
	return nil
}

func (mr *MemoryTokenRepository) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	expiresAt, ok := mr.revoked[jti]
	return ok && mr.now().Before(expiresAt), nil
}

// caller holds mu
func (mr *MemoryTokenRepository) evictExpired() {
	now := mr.now()
	for jti, expiresAt := range mr.revoked {
		if !now.Before(expiresAt) {
			delete(mr.revoked, jti)
		}
	}
}
