package postgres

import (
	"addressbook/internal/addressbook/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	contactRepo repositories.ContactRepository
	userRepo    repositories.UserRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		contactRepo: NewContactRepository(pool),
		userRepo:    NewUserRepository(pool),
	}
}

// ContactRepository возвращает репозиторий контактов.
func (f *RepositoryFactory) ContactRepository() repositories.ContactRepository {
	return f.contactRepo
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}
