// Package entities содержит сущности домена адресной книги.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки домена контактов.
var (
	ErrContactNotFound = errors.New("contact not found")
	ErrDuplicateEmail  = errors.New("contact with this email already exists")
	ErrInvalidID       = errors.New("contact id must be positive")
)

// Contact представляет запись адресной книги.
type Contact struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewContact создает несохраненный контакт; обе метки времени равны now.
func NewContact(name, phone, email, address, notes string, now time.Time) *Contact {
	return &Contact{
		Name:      name,
		Phone:     phone,
		Email:     email,
		Address:   address,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetName меняет имя и обновляет UpdatedAt.
func (c *Contact) SetName(name string, now time.Time) {
	c.Name = name
	c.touch(now)
}

// SetPhone меняет телефон и обновляет UpdatedAt.
func (c *Contact) SetPhone(phone string, now time.Time) {
	c.Phone = phone
	c.touch(now)
}

// SetEmail меняет email и обновляет UpdatedAt.
func (c *Contact) SetEmail(email string, now time.Time) {
	c.Email = email
	c.touch(now)
}

// SetAddress меняет адрес и обновляет UpdatedAt.
func (c *Contact) SetAddress(address string, now time.Time) {
	c.Address = address
	c.touch(now)
}

// SetNotes меняет заметки и обновляет UpdatedAt.
func (c *Contact) SetNotes(notes string, now time.Time) {
	c.Notes = notes
	c.touch(now)
}

// UpdatedAt никогда не опускается ниже CreatedAt.
func (c *Contact) touch(now time.Time) {
	if now.Before(c.CreatedAt) {
		now = c.CreatedAt
	}
	c.UpdatedAt = now
}

// ContactInput - изменяемые поля контакта, приходящие от клиента.
type ContactInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// Trimmed возвращает копию с обрезанными по краям значениями.
func (in ContactInput) Trimmed() ContactInput {
	return ContactInput{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.TrimSpace(in.Email),
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
}
