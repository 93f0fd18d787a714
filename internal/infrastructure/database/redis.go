package database

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis builds the client backing the OTP resend throttle.
func NewRedis(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

// Ping verifies connectivity at startup.
func Ping(ctx context.Context, c *redis.Client) error {
	return c.Ping(ctx).Err()
}
