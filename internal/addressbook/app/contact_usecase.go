// Package app содержит сценарии адресной книги поверх портов хранилища и сервисов.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/validation"
	"addressbook/internal/addressbook/ports/api"
	"addressbook/internal/addressbook/ports/repositories"
	"addressbook/pkg/logger"
)

const (
	methodCreate      = "Create"
	methodUpdate      = "Update"
	methodDelete      = "Delete"
	methodGet         = "Get"
	methodList        = "List"
	methodSearch      = "Search"
	methodSeedSamples = "SeedSamples"

	msgCreatingContact  = "creating contact"
	msgContactCreated   = "contact created"
	msgUpdatingContact  = "updating contact"
	msgContactUpdated   = "contact updated"
	msgContactDeleted   = "contact deleted"
	msgContactNotFound  = "contact not found"
	msgValidationFailed = "contact validation failed"
	msgDuplicateEmail   = "contact email already taken"
	msgSamplesSkipped   = "contacts table is not empty, samples skipped"
	msgSamplesInserted  = "sample contacts inserted"

	msgErrInsertContact = "failed to insert contact"
	msgErrUpdateContact = "failed to update contact"
	msgErrDeleteContact = "failed to delete contact"
	msgErrGetContact    = "failed to get contact"
	msgErrListContacts  = "failed to list contacts, returning empty result"
	msgErrSearch        = "failed to search contacts, returning empty result"
	msgErrCountContacts = "failed to count contacts"

	errCtxValidatingContact = "validating contact"
	errCtxInsertingContact  = "inserting contact"
	errCtxUpdatingContact   = "updating contact"
	errCtxDeletingContact   = "deleting contact"
	errCtxGettingContact    = "getting contact"
	errCtxCountingContacts  = "counting contacts"
	errCtxSeedingSamples    = "seeding sample contacts"
)

var sampleContacts = []entities.ContactInput{
	{Name: "John Smith", Phone: "1234567890", Email: "john.smith@email.com", Address: "123 Main St", Notes: "Software Engineer"},
	{Name: "Sarah Johnson", Phone: "2345678901", Email: "sarah.johnson@email.com", Address: "456 Oak Ave", Notes: "Marketing Manager"},
	{Name: "Michael Brown", Phone: "3456789012", Email: "michael.brown@email.com", Address: "789 Pine Rd", Notes: "Data Analyst"},
	{Name: "Emily Davis", Phone: "4567890123", Email: "emily.davis@email.com", Address: "321 Elm St", Notes: "UX Designer"},
}

// ContactUseCaseImpl реализует интерфейс ContactUseCase.
type ContactUseCaseImpl struct {
	contactRepo repositories.ContactRepository
	now         func() time.Time
}

// NewContactUseCase создает сценарии работы с контактами.
func NewContactUseCase(contactRepo repositories.ContactRepository) api.ContactUseCase {
	return &ContactUseCaseImpl{
		contactRepo: contactRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Create проверяет поля и сохраняет новый контакт.
func (c *ContactUseCaseImpl) Create(ctx context.Context, input entities.ContactInput) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreate))
	log.Debug(ctx, msgCreatingContact)

	in := input.Trimmed()
	if err := validation.ValidateContact(in.Name, in.Phone, in.Email, in.Address); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContact, err)
	}

	contact := entities.NewContact(in.Name, in.Phone, in.Email, in.Address, in.Notes, c.now())
	created, err := c.contactRepo.Insert(ctx, contact)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateEmail) {
			log.Debug(ctx, msgDuplicateEmail, zap.String("email", in.Email))
		} else {
			log.Error(ctx, msgErrInsertContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxInsertingContact, err)
	}

	log.Info(ctx, msgContactCreated, zap.Int64("contactID", created.ID))
	return created, nil
}

// Update перезаписывает изменяемые поля контакта одним запросом.
func (c *ContactUseCaseImpl) Update(ctx context.Context, id int64, input entities.ContactInput) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdate), zap.Int64("contactID", id))
	log.Debug(ctx, msgUpdatingContact)

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContact, entities.ErrInvalidID)
	}

	in := input.Trimmed()
	if err := validation.ValidateContact(in.Name, in.Phone, in.Email, in.Address); err != nil {
		log.Debug(ctx, msgValidationFailed, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingContact, err)
	}

	contact := &entities.Contact{
		ID:        id,
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		UpdatedAt: c.now(),
	}

	updated, err := c.contactRepo.Update(ctx, contact)
	if err != nil {
		if errors.Is(err, entities.ErrDuplicateEmail) {
			log.Debug(ctx, msgDuplicateEmail, zap.String("email", in.Email))
		} else {
			log.Error(ctx, msgErrUpdateContact, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContact, err)
	}
	if !updated {
		log.Debug(ctx, msgContactNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingContact, entities.ErrContactNotFound)
	}

	log.Info(ctx, msgContactUpdated)
	return contact, nil
}

// Delete удаляет контакт по идентификатору.
func (c *ContactUseCaseImpl) Delete(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", methodDelete), zap.Int64("contactID", id))

	if id <= 0 {
		return fmt.Errorf("%s: %w", errCtxDeletingContact, entities.ErrInvalidID)
	}

	deleted, err := c.contactRepo.Delete(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrDeleteContact, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxDeletingContact, err)
	}
	if !deleted {
		log.Debug(ctx, msgContactNotFound)
		return fmt.Errorf("%s: %w", errCtxDeletingContact, entities.ErrContactNotFound)
	}

	log.Info(ctx, msgContactDeleted)
	return nil
}

// Get возвращает контакт по идентификатору.
func (c *ContactUseCaseImpl) Get(ctx context.Context, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGet), zap.Int64("contactID", id))

	if id <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxGettingContact, entities.ErrInvalidID)
	}

	contact, err := c.contactRepo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrGetContact, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGettingContact, err)
	}
	if contact == nil {
		log.Debug(ctx, msgContactNotFound)
		return nil, fmt.Errorf("%s: %w", errCtxGettingContact, entities.ErrContactNotFound)
	}

	return contact, nil
}

// List возвращает все контакты по имени; ошибка чтения дает пустой список.
func (c *ContactUseCaseImpl) List(ctx context.Context) []*entities.Contact {
	contacts, err := c.contactRepo.GetAll(ctx)
	if err != nil {
		logger.Log(ctx).With(zap.String("method", methodList)).Error(ctx, msgErrListContacts, zap.Error(err))
		return []*entities.Contact{}
	}
	return contacts
}

// Search ищет подстроку без учета регистра; пустой запрос равен List.
func (c *ContactUseCaseImpl) Search(ctx context.Context, term string) []*entities.Contact {
	term = strings.TrimSpace(term)
	if term == "" {
		return c.List(ctx)
	}

	contacts, err := c.contactRepo.Search(ctx, term)
	if err != nil {
		logger.Log(ctx).With(zap.String("method", methodSearch), zap.String("term", term)).
			Error(ctx, msgErrSearch, zap.Error(err))
		return []*entities.Contact{}
	}
	return contacts
}

// SeedSamples добавляет демонстрационные контакты в пустую таблицу.
func (c *ContactUseCaseImpl) SeedSamples(ctx context.Context) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSeedSamples))

	total, err := c.contactRepo.Count(ctx)
	if err != nil {
		log.Error(ctx, msgErrCountContacts, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxCountingContacts, err)
	}
	if total > 0 {
		log.Debug(ctx, msgSamplesSkipped, zap.Int64("contacts", total))
		return 0, nil
	}

	inserted := 0
	for _, s := range sampleContacts {
		contact := entities.NewContact(s.Name, s.Phone, s.Email, s.Address, s.Notes, c.now())
		if _, err := c.contactRepo.Insert(ctx, contact); err != nil {
			log.Error(ctx, msgErrInsertContact, zap.Error(err), zap.String("email", s.Email))
			return inserted, fmt.Errorf("%s: %w", errCtxSeedingSamples, err)
		}
		inserted++
	}

	log.Info(ctx, msgSamplesInserted, zap.Int("count", inserted))
	return inserted, nil
}
