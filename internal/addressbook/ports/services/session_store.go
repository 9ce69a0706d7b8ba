package services

import (
	"context"
	"time"
)

// SessionStore хранит отозванные идентификаторы токенов.
type SessionStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
