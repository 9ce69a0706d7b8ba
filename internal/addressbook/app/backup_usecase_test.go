package app_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"addressbook/internal/addressbook/app"
	"addressbook/internal/addressbook/domain/services"
)

func inDir(dir string) func(string) bool {
	return func(path string) bool {
		return filepath.Dir(path) == dir &&
			strings.HasPrefix(filepath.Base(path), "addressbook_backup_") &&
			strings.HasSuffix(path, ".sql")
	}
}

func TestBackupUseCase_Backup(t *testing.T) {
	ctx := testContext(t)

	t.Run("дамп без выгрузки", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "backups")
		dumper := new(mockDumper)
		dumper.On("Dump", mock.Anything, mock.MatchedBy(inDir(dir))).Return(nil)

		result, err := app.NewBackupUseCase(dumper, nil, dir).Backup(ctx)
		require.NoError(t, err)
		assert.True(t, inDir(dir)(result.File))
		assert.Empty(t, result.ObjectKey)
		assert.DirExists(t, dir)
	})

	t.Run("дамп с выгрузкой", func(t *testing.T) {
		dir := t.TempDir()
		dumper := new(mockDumper)
		dumper.On("Dump", mock.Anything, mock.Anything).Return(nil)
		uploader := new(mockUploader)
		uploader.On("Upload", mock.Anything, mock.MatchedBy(inDir(dir))).Return("backups/file.sql", nil)

		result, err := app.NewBackupUseCase(dumper, uploader, dir).Backup(ctx)
		require.NoError(t, err)
		assert.Equal(t, "backups/file.sql", result.ObjectKey)
	})

	t.Run("имена файлов не повторяются", func(t *testing.T) {
		dir := t.TempDir()
		dumper := new(mockDumper)
		dumper.On("Dump", mock.Anything, mock.Anything).Return(nil)
		uc := app.NewBackupUseCase(dumper, nil, dir)

		first, err := uc.Backup(ctx)
		require.NoError(t, err)
		second, err := uc.Backup(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, first.File, second.File)
	})

	t.Run("ошибка дампа", func(t *testing.T) {
		dumper := new(mockDumper)
		dumper.On("Dump", mock.Anything, mock.Anything).Return(errors.New("exit status 1"))
		uploader := new(mockUploader)

		_, err := app.NewBackupUseCase(dumper, uploader, t.TempDir()).Backup(ctx)
		require.ErrorIs(t, err, services.ErrDumpFailed)
		uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	})

	t.Run("ошибка выгрузки сохраняет путь к файлу", func(t *testing.T) {
		dumper := new(mockDumper)
		dumper.On("Dump", mock.Anything, mock.Anything).Return(nil)
		uploader := new(mockUploader)
		uploader.On("Upload", mock.Anything, mock.Anything).Return("", errors.New("access denied"))

		result, err := app.NewBackupUseCase(dumper, uploader, t.TempDir()).Backup(ctx)
		require.ErrorIs(t, err, services.ErrUploadFailed)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.File)
	})
}
