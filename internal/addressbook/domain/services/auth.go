// Package services содержит доменные типы и ошибки сервисов аутентификации.
package services

import (
	"errors"
	"time"
)

// Ошибки аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrTokenGenerationFailed = errors.New("failed to generate access token")
	ErrSessionRevoked        = errors.New("session has been revoked")
)

// AccessToken - выданный после входа токен доступа.
type AccessToken struct {
	Token     string
	TokenID   string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

// Session - проверенная сессия из токена доступа.
type Session struct {
	TokenID   string
	UserID    int64
	Username  string
	ExpiresAt time.Time
}
