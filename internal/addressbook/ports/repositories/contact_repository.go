package repositories

import (
	"context"

	"addressbook/internal/addressbook/domain/entities"
)

// ContactRepository определяет хранилище контактов.
type ContactRepository interface {
	Insert(ctx context.Context, contact *entities.Contact) (*entities.Contact, error)

	Update(ctx context.Context, contact *entities.Contact) (bool, error)

	Delete(ctx context.Context, id int64) (bool, error)

	GetByID(ctx context.Context, id int64) (*entities.Contact, error)

	GetAll(ctx context.Context) ([]*entities.Contact, error)

	Search(ctx context.Context, term string) ([]*entities.Contact, error)

	Count(ctx context.Context) (int64, error)
}
