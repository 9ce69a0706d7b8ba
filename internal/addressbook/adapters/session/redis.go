// Package session хранит отозванные токены доступа в Redis.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	msgTokenRevoked = "token revoked"

	errCtxRevoke    = "storing revoked token"
	errCtxIsRevoked = "checking revoked token"
)

// ErrEmptyTokenID возвращается для токена без jti.
var ErrEmptyTokenID = errors.New("token id is empty")

const revokedMarker = "1"

// RedisStore реализует SessionStore: ключ живет столько же, сколько токен.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore создает хранилище поверх клиента go-redis.
func NewRedisStore(client redis.Cmdable, prefix string) svc.SessionStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Revoke помечает токен отозванным на ttl.
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.key(tokenID), revokedMarker, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", errCtxRevoke, err)
	}

	logger.Log(ctx).Debug(ctx, msgTokenRevoked, zap.String("tokenID", tokenID), zap.Duration("ttl", ttl))
	return nil
}

// IsRevoked сообщает, был ли токен отозван.
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, ErrEmptyTokenID
	}

	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtxIsRevoked, err)
	}
	return n > 0, nil
}

func (s *RedisStore) key(tokenID string) string {
	return s.prefix + tokenID
}
