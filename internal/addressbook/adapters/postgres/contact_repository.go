package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/ports/repositories"
	"addressbook/pkg/logger"
)

const contactColumns = "id, name, phone, email, address, notes, created_at, updated_at"

// ContactRepository реализует интерфейс repositories.ContactRepository для работы с Postgres.
type ContactRepository struct {
	pool PgxPoolInterface
}

// NewContactRepository создает новый экземпляр репозитория контактов.
func NewContactRepository(pool PgxPoolInterface) repositories.ContactRepository {
	return &ContactRepository{pool: pool}
}

// Insert сохраняет контакт и возвращает его с присвоенным id.
func (r *ContactRepository) Insert(ctx context.Context, contact *entities.Contact) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Insert"))

	query := `
        INSERT INTO contacts (name, phone, email, address, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + contactColumns

	var created entities.Contact
	err := scanContact(r.pool.QueryRow(ctx, query,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Address,
		contact.Notes,
		contact.CreatedAt,
		contact.UpdatedAt,
	), &created)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate contact email", zap.String("email", contact.Email))
			return nil, entities.ErrDuplicateEmail
		}
		log.Error(ctx, "error inserting contact", zap.Error(err))
		return nil, fmt.Errorf("error inserting contact: %w", err)
	}

	return &created, nil
}

// Update перезаписывает изменяемые поля. Метки времени из базы записываются в contact.
func (r *ContactRepository) Update(ctx context.Context, contact *entities.Contact) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Update"))

	query := `
        UPDATE contacts
        SET name = $2, phone = $3, email = $4, address = $5, notes = $6,
            updated_at = GREATEST($7::timestamptz, created_at + INTERVAL '1 microsecond')
        WHERE id = $1
        RETURNING created_at, updated_at
    `

	err := r.pool.QueryRow(ctx, query,
		contact.ID,
		contact.Name,
		contact.Phone,
		contact.Email,
		contact.Address,
		contact.Notes,
		contact.UpdatedAt,
	).Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found for update", zap.Int64("id", contact.ID))
			return false, nil
		}
		if isUniqueViolation(err) {
			log.Debug(ctx, "duplicate contact email", zap.String("email", contact.Email))
			return false, entities.ErrDuplicateEmail
		}
		log.Error(ctx, "error updating contact", zap.Error(err))
		return false, fmt.Errorf("error updating contact: %w", err)
	}

	return true, nil
}

// Delete удаляет контакт по ID.
func (r *ContactRepository) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting contact", zap.Error(err))
		return false, fmt.Errorf("error deleting contact: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "contact not found for deletion", zap.Int64("id", id))
		return false, nil
	}

	return true, nil
}

// GetByID находит контакт по ID; отсутствие записи дает nil без ошибки.
func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "GetByID"))

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`

	var contact entities.Contact
	if err := scanContact(r.pool.QueryRow(ctx, query, id), &contact); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "contact not found", zap.Int64("id", id))
			return nil, nil
		}
		log.Error(ctx, "error finding contact by id", zap.Error(err))
		return nil, fmt.Errorf("error querying contact by id: %w", err)
	}

	return &contact, nil
}

// GetAll возвращает все контакты, отсортированные по имени.
func (r *ContactRepository) GetAll(ctx context.Context) ([]*entities.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY name ASC, id ASC`
	return r.list(ctx, "GetAll", query)
}

// Search ищет подстроку без учета регистра в имени, телефоне, email и адресе.
func (r *ContactRepository) Search(ctx context.Context, term string) ([]*entities.Contact, error) {
	query := `
        SELECT ` + contactColumns + `
        FROM contacts
        WHERE name ILIKE $1 ESCAPE '\'
           OR phone ILIKE $1 ESCAPE '\'
           OR email ILIKE $1 ESCAPE '\'
           OR address ILIKE $1 ESCAPE '\'
        ORDER BY name ASC, id ASC
    `
	return r.list(ctx, "Search", query, "%"+escapeLike(term)+"%")
}

// Count возвращает количество контактов.
func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", "Count")).
			Error(ctx, "error counting contacts", zap.Error(err))
		return 0, fmt.Errorf("error counting contacts: %w", err)
	}
	return total, nil
}

func (r *ContactRepository) list(ctx context.Context, method, query string, args ...interface{}) ([]*entities.Contact, error) {
	log := logger.Log(ctx).With(zap.String("repository", "contact"), zap.String("method", method))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error querying contacts", zap.Error(err))
		return nil, fmt.Errorf("error querying contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*entities.Contact{}
	for rows.Next() {
		var c entities.Contact
		if err := scanContact(rows, &c); err != nil {
			log.Error(ctx, "error scanning contact row", zap.Error(err))
			return nil, fmt.Errorf("error scanning contact row: %w", err)
		}
		contacts = append(contacts, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating contact rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	return contacts, nil
}

func scanContact(row pgx.Row, c *entities.Contact) error {
	return row.Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
