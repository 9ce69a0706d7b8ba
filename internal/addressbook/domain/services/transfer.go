package services

import "errors"

// Ошибки импорта и экспорта.
var (
	ErrMalformedCSV   = errors.New("malformed csv")
	ErrUnexpectedHead = errors.New("unexpected csv header")
)

// ImportRecord - строка CSV файла до проверки.
type ImportRecord struct {
	Line    int
	Name    string
	Phone   string
	Email   string
	Address string
	Notes   string
}

// ImportFailure описывает отклоненную строку.
type ImportFailure struct {
	Line   int
	Reason string
}

// ImportResult - итог импорта.
type ImportResult struct {
	Imported int
	Skipped  int
	Failures []ImportFailure
}
