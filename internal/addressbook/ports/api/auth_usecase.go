package api

import (
	"context"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
)

// AuthUseCase определяет порт для входа в адресную книгу и управления учетными записями.
type AuthUseCase interface {
	Authenticate(ctx context.Context, username, password string) (bool, error)

	Login(ctx context.Context, username, password string) (*services.AccessToken, error)

	Logout(ctx context.Context, token string) error

	ValidateSession(ctx context.Context, token string) (*services.Session, error)

	CreateUser(ctx context.Context, username, email, password string) (*entities.User, error)

	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}
