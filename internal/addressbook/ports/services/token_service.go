package services

import (
	"context"

	"addressbook/internal/addressbook/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID int64, username string) (*services.AccessToken, error)

	ValidateAccessToken(ctx context.Context, token string) (*services.JWTClaims, error)
}
