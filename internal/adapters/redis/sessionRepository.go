package redis

import (
	"context"
	"time"

	"blogpost/internal/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "session:revoked:"

// SessionRepositoryRedis keeps revoked token ids until the tokens would have expired anyway.
type SessionRepositoryRedis struct {
	Client *redis.Client
}

func NewSessionRepositoryRedis(client *redis.Client) *SessionRepositoryRedis {
	return &SessionRepositoryRedis{
		Client: client,
	}
}

func (r *SessionRepositoryRedis) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	if err := r.Client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return err
	}
	config.Logger.Debug("session revoked", zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	return nil
}

func (r *SessionRepositoryRedis) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.Client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
