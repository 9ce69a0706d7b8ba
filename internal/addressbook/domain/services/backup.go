package services

import "errors"

// Ошибки резервного копирования.
var (
	ErrDumpFailed   = errors.New("database dump failed")
	ErrUploadFailed = errors.New("backup upload failed")
)

// BackupResult - созданный дамп и, если была выгрузка, ключ объекта.
type BackupResult struct {
	File      string
	ObjectKey string
}
