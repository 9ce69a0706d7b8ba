package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/domain/validation"
	"addressbook/internal/addressbook/ports/api"
	"addressbook/internal/addressbook/ports/repositories"
	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	methodExport = "Export"
	methodImport = "Import"

	msgExportDone       = "contacts exported"
	msgImportDone       = "contacts imported"
	msgImportRowSkipped = "import row skipped, email already exists"
	msgImportRowFailed  = "import row rejected"

	msgErrReadContacts = "failed to read contacts for export"
	msgErrEncode       = "failed to encode contacts"
	msgErrDecode       = "failed to decode import file"

	errCtxReadingContacts  = "reading contacts"
	errCtxEncodingContacts = "encoding contacts"
	errCtxDecodingImport   = "decoding import file"
)

// TransferUseCaseImpl реализует экспорт и импорт контактов.
type TransferUseCaseImpl struct {
	contactRepo repositories.ContactRepository
	encoder     svc.ContactEncoder
	decoder     svc.ContactDecoder
	contacts    api.ContactUseCase
}

// NewTransferUseCase создает сценарии экспорта и импорта.
func NewTransferUseCase(
	contactRepo repositories.ContactRepository,
	encoder svc.ContactEncoder,
	decoder svc.ContactDecoder,
) api.TransferUseCase {
	return &TransferUseCaseImpl{
		contactRepo: contactRepo,
		encoder:     encoder,
		decoder:     decoder,
		contacts:    NewContactUseCase(contactRepo),
	}
}

// Export пишет все контакты в w и возвращает их количество.
func (t *TransferUseCaseImpl) Export(ctx context.Context, w io.Writer) (int, error) {
	log := logger.Log(ctx).With(zap.String("method", methodExport))

	contacts, err := t.contactRepo.GetAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrReadContacts, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxReadingContacts, err)
	}

	if err := t.encoder.Encode(ctx, w, contacts); err != nil {
		log.Error(ctx, msgErrEncode, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", errCtxEncodingContacts, err)
	}

	log.Info(ctx, msgExportDone, zap.Int("count", len(contacts)))
	return len(contacts), nil
}

// Import добавляет контакты из r. Строки с занятым email пропускаются,
// строки с ошибками попадают в Failures; остальные сохраняются.
func (t *TransferUseCaseImpl) Import(ctx context.Context, r io.Reader) (*services.ImportResult, error) {
	log := logger.Log(ctx).With(zap.String("method", methodImport))

	records, err := t.decoder.Decode(ctx, r)
	if err != nil {
		log.Debug(ctx, msgErrDecode, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxDecodingImport, err)
	}

	result := &services.ImportResult{Failures: []services.ImportFailure{}}
	for _, rec := range records {
		_, err := t.contacts.Create(ctx, entities.ContactInput{
			Name:    rec.Name,
			Phone:   rec.Phone,
			Email:   rec.Email,
			Address: rec.Address,
			Notes:   rec.Notes,
		})

		var fieldErr *validation.FieldError
		switch {
		case err == nil:
			result.Imported++
		case errors.Is(err, entities.ErrDuplicateEmail):
			log.Debug(ctx, msgImportRowSkipped, zap.Int("line", rec.Line))
			result.Skipped++
		case errors.As(err, &fieldErr):
			log.Debug(ctx, msgImportRowFailed, zap.Int("line", rec.Line), zap.Error(err))
			result.Failures = append(result.Failures, services.ImportFailure{Line: rec.Line, Reason: fieldErr.Error()})
		default:
			log.Debug(ctx, msgImportRowFailed, zap.Int("line", rec.Line), zap.Error(err))
			result.Failures = append(result.Failures, services.ImportFailure{Line: rec.Line, Reason: err.Error()})
		}
	}

	log.Info(ctx, msgImportDone,
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failures)),
	)
	return result, nil
}
