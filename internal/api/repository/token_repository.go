package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tokenTracer = otel.Tracer("repository.token")

// TokenRepository records issued session tokens so they can be expired
// server-side. Entries live exactly as long as the token itself.
type TokenRepository interface {
	Save(ctx context.Context, jti, username string, ttl time.Duration) error
}

type redisTokenRepository struct {
	rdb *redis.Client
}

// NewTokenRepository creates a new Redis-based TokenRepository.
func NewTokenRepository(rdb *redis.Client) TokenRepository {
	return &redisTokenRepository{rdb: rdb}
}

// Save stores the jti-to-username binding with the given TTL.
func (r *redisTokenRepository) Save(ctx context.Context, jti, username string, ttl time.Duration) error {
	ctx, span := tokenTracer.Start(ctx, "TokenRepository.Save")
	defer span.End()

	tokenKey := fmt.Sprintf("token:%s", jti)
	if err := r.rdb.Set(ctx, tokenKey, username, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}
