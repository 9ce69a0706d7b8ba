package entities

import (
	"errors"
	"time"
)

// Ошибки домена учетных записей.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")
	ErrEmptyUsername     = errors.New("username cannot be empty")
	ErrInvalidEmail      = errors.New("invalid email format")
)

// User - учетная запись, открывающая доступ к адресной книге.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}
