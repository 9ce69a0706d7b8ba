// Package dto содержит объекты запросов и ответов HTTP API.
package dto

import (
	"time"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
)

// LoginRequest - тело запроса на вход.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse - выданный токен доступа.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionResponse описывает текущую сессию.
type SessionResponse struct {
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ContactRequest - тело запросов на создание и изменение контакта.
type ContactRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ContactResponse - контакт в ответе.
type ContactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactListResponse - список контактов.
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Count    int               `json:"count"`
}

// ImportFailure - отклоненная строка импорта.
type ImportFailure struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResponse - итог импорта.
type ImportResponse struct {
	Imported int             `json:"imported"`
	Skipped  int             `json:"skipped"`
	Failures []ImportFailure `json:"errors"`
}

// BackupResponse - созданная резервная копия.
type BackupResponse struct {
	File      string `json:"file"`
	ObjectKey string `json:"object_key,omitempty"`
}

// ToInput переводит запрос во входные данные контакта.
func (r ContactRequest) ToInput() entities.ContactInput {
	return entities.ContactInput{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
		Notes:   r.Notes,
	}
}

// FromContact строит ответ по контакту.
func FromContact(c *entities.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromContacts строит ответ со списком; nil превращается в пустой список.
func FromContacts(contacts []*entities.Contact) ContactListResponse {
	out := make([]ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, FromContact(c))
	}
	return ContactListResponse{Contacts: out, Count: len(out)}
}

// FromImportResult строит ответ на импорт.
func FromImportResult(result *services.ImportResult) ImportResponse {
	failures := make([]ImportFailure, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, ImportFailure{Line: f.Line, Reason: f.Reason})
	}
	return ImportResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Failures: failures,
	}
}
