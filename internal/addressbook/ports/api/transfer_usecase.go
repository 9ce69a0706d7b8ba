package api

import (
	"context"
	"io"

	"addressbook/internal/addressbook/domain/services"
)

// TransferUseCase определяет экспорт и импорт контактов.
type TransferUseCase interface {
	Export(ctx context.Context, w io.Writer) (int, error)

	Import(ctx context.Context, r io.Reader) (*services.ImportResult, error)
}
