package api

import (
	"context"

	"addressbook/internal/addressbook/domain/entities"
)

// ContactUseCase определяет основной порт для операций с контактами.
type ContactUseCase interface {
	Create(ctx context.Context, input entities.ContactInput) (*entities.Contact, error)

	Update(ctx context.Context, id int64, input entities.ContactInput) (*entities.Contact, error)

	Delete(ctx context.Context, id int64) error

	Get(ctx context.Context, id int64) (*entities.Contact, error)

	List(ctx context.Context) []*entities.Contact

	Search(ctx context.Context, term string) []*entities.Contact

	SeedSamples(ctx context.Context) (int, error)
}
