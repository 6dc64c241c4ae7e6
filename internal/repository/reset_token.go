package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Zed-Kryp/BlogSphere/internal/model"
	"github.com/Zed-Kryp/BlogSphere/internal/redis"
)

const resetTokenPrefix = "pwreset:"

// resetTokenRepository keeps password-reset tokens in Redis with a TTL, so
// expiry is enforced by the store instead of a timestamp comparison.
type resetTokenRepository struct {
	client *redis.Client
}

func NewResetTokenRepository(client *redis.Client) ResetTokenRepository {
	return &resetTokenRepository{client: client}
}

func (r *resetTokenRepository) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.client.Set(ctx, resetTokenPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume atomically fetches and deletes the token, making it single-use.
func (r *resetTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, resetTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", model.ErrResetTokenInvalid
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}
