package services

import "context"

// Dumper снимает дамп базы в указанный файл.
type Dumper interface {
	Dump(ctx context.Context, path string) error
}

// Uploader выгружает файл во внешнее хранилище и возвращает ключ объекта.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}
