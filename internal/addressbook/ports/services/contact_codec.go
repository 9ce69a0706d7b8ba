package services

import (
	"context"
	"io"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
)

// ContactEncoder сериализует контакты для экспорта.
type ContactEncoder interface {
	Encode(ctx context.Context, w io.Writer, contacts []*entities.Contact) error
}

// ContactDecoder разбирает файл импорта в сырые записи.
type ContactDecoder interface {
	Decode(ctx context.Context, r io.Reader) ([]services.ImportRecord, error)
}
