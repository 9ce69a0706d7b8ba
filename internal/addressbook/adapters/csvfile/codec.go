// Package csvfile читает и пишет контакты в формате CSV адресной книги.
package csvfile

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

// TimeLayout - формат меток времени в экспорте.
const TimeLayout = "2006-01-02 15:04:05"

// Header - заголовок экспортируемого файла.
var Header = []string{"Name", "Phone", "Email", "Address", "Notes", "Created", "Updated"}

// Обязательные колонки импорта; Notes и метки времени можно опустить.
const requiredColumns = 4

const (
	msgDecoded = "import file decoded"

	errCtxWriting = "writing csv"
	errCtxReading = "reading csv"
)

const utf8BOM = "\ufeff"

// Codec реализует ContactEncoder и ContactDecoder.
type Codec struct {
	loc *time.Location
}

var (
	_ svc.ContactEncoder = (*Codec)(nil)
	_ svc.ContactDecoder = (*Codec)(nil)
)

// NewCodec создает кодек; метки времени выводятся в зоне loc (nil - UTC).
func NewCodec(loc *time.Location) *Codec {
	if loc == nil {
		loc = time.UTC
	}
	return &Codec{loc: loc}
}

// Encode пишет заголовок и по строке на контакт. Каждое поле заключается
// в двойные кавычки, кавычки внутри удваиваются.
func (c *Codec) Encode(_ context.Context, w io.Writer, contacts []*entities.Contact) error {
	bw := bufio.NewWriter(w)

	if err := writeRow(bw, Header); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriting, err)
	}
	for _, ct := range contacts {
		row := []string{
			ct.Name,
			ct.Phone,
			ct.Email,
			ct.Address,
			ct.Notes,
			c.formatTime(ct.CreatedAt),
			c.formatTime(ct.UpdatedAt),
		}
		if err := writeRow(bw, row); err != nil {
			return fmt.Errorf("%s: %w", errCtxWriting, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", errCtxWriting, err)
	}
	return nil
}

// Decode разбирает файл с заголовком экспорта. Пустые строки пропускаются;
// номер строки в записи соответствует строке файла.
func (c *Codec) Decode(ctx context.Context, r io.Reader) ([]services.ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w: empty file", errCtxReading, services.ErrUnexpectedHead)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxReading, services.ErrMalformedCSV, err)
	}
	if !validHeader(head) {
		return nil, fmt.Errorf("%s: %w: %q", errCtxReading, services.ErrUnexpectedHead, strings.Join(head, ","))
	}

	records := []services.ImportRecord{}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", errCtxReading, services.ErrMalformedCSV, err)
		}

		line, _ := reader.FieldPos(0)
		records = append(records, services.ImportRecord{
			Line:    line,
			Name:    field(row, 0),
			Phone:   field(row, 1),
			Email:   field(row, 2),
			Address: field(row, 3),
			Notes:   field(row, 4),
		})
	}

	logger.Log(ctx).Debug(ctx, msgDecoded, zap.Int("rows", len(records)))
	return records, nil
}

func (c *Codec) formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(c.loc).Format(TimeLayout)
}

func writeRow(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err //nolint:wrapcheck
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err //nolint:wrapcheck
		}
	}
	return w.WriteByte('\n') //nolint:wrapcheck
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func validHeader(head []string) bool {
	if len(head) < requiredColumns {
		return false
	}
	head[0] = strings.TrimPrefix(head[0], utf8BOM)
	for i := 0; i < len(head) && i < len(Header); i++ {
		if !strings.EqualFold(strings.TrimSpace(head[i]), Header[i]) {
			return false
		}
	}
	return true
}

func field(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
