package app_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"addressbook/internal/addressbook/domain/entities"
)

// memoryContactRepository повторяет поведение Postgres-хранилища в памяти.
type memoryContactRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entities.Contact
}

func newMemoryContactRepository() *memoryContactRepository {
	return &memoryContactRepository{nextID: 1, rows: map[int64]entities.Contact{}}
}

func (r *memoryContactRepository) emailTaken(email string, except int64) bool {
	for id, c := range r.rows {
		if id != except && strings.EqualFold(c.Email, email) {
			return true
		}
	}
	return false
}

func (r *memoryContactRepository) Insert(_ context.Context, contact *entities.Contact) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(contact.Email, 0) {
		return nil, entities.ErrDuplicateEmail
	}
	stored := *contact
	stored.ID = r.nextID
	r.nextID++
	r.rows[stored.ID] = stored
	out := stored
	return &out, nil
}

func (r *memoryContactRepository) Update(_ context.Context, contact *entities.Contact) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.rows[contact.ID]
	if !ok {
		return false, nil
	}
	if r.emailTaken(contact.Email, contact.ID) {
		return false, entities.ErrDuplicateEmail
	}

	updatedAt := contact.UpdatedAt
	if floor := current.CreatedAt.Add(time.Microsecond); updatedAt.Before(floor) {
		updatedAt = floor
	}
	current.Name = contact.Name
	current.Phone = contact.Phone
	current.Email = contact.Email
	current.Address = contact.Address
	current.Notes = contact.Notes
	current.UpdatedAt = updatedAt
	r.rows[contact.ID] = current

	contact.CreatedAt = current.CreatedAt
	contact.UpdatedAt = current.UpdatedAt
	return true, nil
}

func (r *memoryContactRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *memoryContactRepository) GetByID(_ context.Context, id int64) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memoryContactRepository) GetAll(_ context.Context) ([]*entities.Contact, error) {
	return r.filter(func(entities.Contact) bool { return true }), nil
}

func (r *memoryContactRepository) Search(_ context.Context, term string) ([]*entities.Contact, error) {
	term = strings.ToLower(term)
	return r.filter(func(c entities.Contact) bool {
		for _, v := range []string{c.Name, c.Phone, c.Email, c.Address} {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
		return false
	}), nil
}

func (r *memoryContactRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *memoryContactRepository) filter(keep func(entities.Contact) bool) []*entities.Contact {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*entities.Contact{}
	for _, c := range r.rows {
		if keep(c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
