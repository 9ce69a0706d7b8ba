package repositories

import (
	"context"

	"addressbook/internal/addressbook/domain/entities"
)

// UserRepository определяет хранилище учетных записей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	Count(ctx context.Context) (int64, error)
}
