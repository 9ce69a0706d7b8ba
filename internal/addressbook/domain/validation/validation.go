// Package validation проверяет поля контакта до записи в хранилище.
// Все функции чистые и работают с обрезанными по краям строками.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Имена полей в ошибках.
const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldAddress = "address"
)

// Минимальные длины после обрезки пробелов.
const (
	MinNameLength    = 2
	MinAddressLength = 5
)

// Ошибки по полям.
var (
	ErrInvalidName    = errors.New("invalid name")
	ErrInvalidPhone   = errors.New("invalid phone")
	ErrInvalidEmail   = errors.New("invalid email")
	ErrInvalidAddress = errors.New("invalid address")
)

const (
	reasonNameRequired  = "name is required"
	reasonNameTooShort  = "name must be at least 2 characters long"
	reasonPhoneInvalid  = "please enter a valid phone number (10-15 digits, optional leading +)"
	reasonEmailInvalid  = "please enter a valid email address"
	reasonAddressLength = "address must be at least 5 characters long"
)

var (
	phonePattern = regexp.MustCompile(`^[+]?[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
)

// FieldError сообщает, какое поле не прошло проверку и почему.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// IsValidName: не меньше двух символов после обрезки.
func IsValidName(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinNameLength
}

// IsValidPhone: необязательный '+' и 10-15 цифр ASCII.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(strings.TrimSpace(s))
}

// IsValidEmail: local-part@domain.tld, TLD из латинских букв длиной от двух.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// IsValidAddress: не меньше пяти символов после обрезки.
func IsValidAddress(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) >= MinAddressLength
}

// ValidateContact проверяет поля в порядке name, phone, email, address
// и возвращает первую ошибку как *FieldError.
func ValidateContact(name, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: FieldName, Reason: reasonNameRequired, Err: ErrInvalidName}
	}
	if !IsValidName(name) {
		return &FieldError{Field: FieldName, Reason: reasonNameTooShort, Err: ErrInvalidName}
	}
	if !IsValidPhone(phone) {
		return &FieldError{Field: FieldPhone, Reason: reasonPhoneInvalid, Err: ErrInvalidPhone}
	}
	if !IsValidEmail(email) {
		return &FieldError{Field: FieldEmail, Reason: reasonEmailInvalid, Err: ErrInvalidEmail}
	}
	if !IsValidAddress(address) {
		return &FieldError{Field: FieldAddress, Reason: reasonAddressLength, Err: ErrInvalidAddress}
	}
	return nil
}
