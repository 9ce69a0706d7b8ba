package http_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "addressbook/internal/addressbook/adapters/http"
	"addressbook/internal/addressbook/adapters/http/health"
	"addressbook/internal/addressbook/adapters/http/middleware"
	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/domain/validation"
)

const validToken = "valid-token"

type fixture struct {
	app      *fiber.App
	auth     *MockAuthUseCase
	contacts *MockContactUseCase
	transfer *MockTransferUseCase
	backup   *MockBackupUseCase
	pinger   *MockPinger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		auth:     new(MockAuthUseCase),
		contacts: new(MockContactUseCase),
		transfer: new(MockTransferUseCase),
		backup:   new(MockBackupUseCase),
		pinger:   new(MockPinger),
	}

	f.app = httpadapter.NewApp(httpadapter.ServerOptions{BodyLimit: 1 << 20})
	httpadapter.SetupRouter(f.app, httpadapter.Dependencies{
		Auth:     f.auth,
		Contacts: f.contacts,
		Transfer: f.transfer,
		Backup:   f.backup,
		Health:   map[string]health.Pinger{"postgres": f.pinger},
	})

	f.auth.On("ValidateSession", mock.Anything, validToken).Return(&services.Session{
		TokenID:   "jti",
		UserID:    1,
		Username:  "admin",
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil).Maybe()

	t.Cleanup(func() {
		f.auth.AssertExpectations(t)
		f.contacts.AssertExpectations(t)
		f.transfer.AssertExpectations(t)
		f.backup.AssertExpectations(t)
		f.pinger.AssertExpectations(t)
	})

	return f
}

func (f *fixture) do(t *testing.T, method, path, body, token string) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func sampleContact() *entities.Contact {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return &entities.Contact{
		ID: 7, Name: "Jane Doe", Phone: "+15551234567", Email: "jane@example.com",
		Address: "1 Main Street", CreatedAt: at, UpdatedAt: at,
	}
}

func TestLogin(t *testing.T) {
	t.Run("успешный вход", func(t *testing.T) {
		f := newFixture(t)
		expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		f.auth.On("Login", mock.Anything, "admin", "secret123").
			Return(&services.AccessToken{Token: "jwt", ExpiresAt: expires}, nil)

		resp, raw := f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"secret123"}`, "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode(t, raw)
		assert.Equal(t, "jwt", body["access_token"])
		assert.Equal(t, "Bearer", body["token_type"])
	})

	t.Run("неверные учетные данные", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("Login", mock.Anything, "admin", "wrong-pass").
			Return(nil, fmt.Errorf("login: %w", services.ErrInvalidCredentials))

		resp, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":"admin","password":"wrong-pass"}`, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("пустые поля", func(t *testing.T) {
		f := newFixture(t)
		resp, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", `{"username":" "}`, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("некорректный JSON", func(t *testing.T) {
		f := newFixture(t)
		resp, _ := f.do(t, http.MethodPost, "/api/v1/auth/login", `{`, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogoutAndSession(t *testing.T) {
	f := newFixture(t)
	f.auth.On("Logout", mock.Anything, validToken).Return(nil)

	resp, raw := f.do(t, http.MethodGet, "/api/v1/auth/session", "", validToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode(t, raw)["username"])

	resp, _ = f.do(t, http.MethodPost, "/api/v1/auth/logout", "", validToken)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("нет заголовка", func(t *testing.T) {
		f := newFixture(t)
		resp, raw := f.do(t, http.MethodGet, "/api/v1/contacts", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, middleware.ErrorNoAuthHeader, decode(t, raw)["error"])
	})

	t.Run("не Bearer", func(t *testing.T) {
		f := newFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
		req.Header.Set("Authorization", "Basic abc")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("выход без токена", func(t *testing.T) {
		f := newFixture(t)
		resp, _ := f.do(t, http.MethodPost, "/api/v1/auth/logout", "", "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("отозванная сессия", func(t *testing.T) {
		f := newFixture(t)
		f.auth.On("ValidateSession", mock.Anything, "revoked").Return(nil, services.ErrSessionRevoked)

		resp, _ := f.do(t, http.MethodGet, "/api/v1/contacts", "", "revoked")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListContacts(t *testing.T) {
	t.Run("без запроса", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Search", mock.Anything, "").Return([]*entities.Contact{sampleContact()})

		resp, raw := f.do(t, http.MethodGet, "/api/v1/contacts", "", validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode(t, raw)
		assert.EqualValues(t, 1, body["count"])
	})

	t.Run("поиск по q", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Search", mock.Anything, "jane").Return([]*entities.Contact{})

		resp, raw := f.do(t, http.MethodGet, "/api/v1/contacts?q=jane", "", validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode(t, raw)
		assert.EqualValues(t, 0, body["count"])
		assert.Equal(t, []any{}, body["contacts"])
	})
}

func TestCreateContact(t *testing.T) {
	payload := `{"name":"Jane Doe","phone":"+15551234567","email":"jane@example.com","address":"1 Main Street"}`
	input := entities.ContactInput{
		Name: "Jane Doe", Phone: "+15551234567", Email: "jane@example.com", Address: "1 Main Street",
	}

	t.Run("создан", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Create", mock.Anything, input).Return(sampleContact(), nil)

		resp, raw := f.do(t, http.MethodPost, "/api/v1/contacts", payload, validToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.EqualValues(t, 7, decode(t, raw)["id"])
	})

	t.Run("ошибка проверки поля", func(t *testing.T) {
		f := newFixture(t)
		fieldErr := validation.ValidateContact("Jane Doe", "123", "jane@example.com", "1 Main Street")
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("create: %w", fieldErr))

		resp, raw := f.do(t, http.MethodPost, "/api/v1/contacts", payload, validToken)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decode(t, raw)
		assert.Equal(t, validation.FieldPhone, body["field"])
		assert.NotEmpty(t, body["reason"])
	})

	t.Run("дубликат email", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Create", mock.Anything, mock.Anything).Return(nil, entities.ErrDuplicateEmail)

		resp, _ := f.do(t, http.MethodPost, "/api/v1/contacts", payload, validToken)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestContactByID(t *testing.T) {
	t.Run("найден", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Get", mock.Anything, int64(7)).Return(sampleContact(), nil)

		resp, raw := f.do(t, http.MethodGet, "/api/v1/contacts/7", "", validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Jane Doe", decode(t, raw)["name"])
	})

	t.Run("не найден", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Get", mock.Anything, int64(8)).Return(nil, entities.ErrContactNotFound)

		resp, _ := f.do(t, http.MethodGet, "/api/v1/contacts/8", "", validToken)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("неверный идентификатор", func(t *testing.T) {
		f := newFixture(t)
		for _, id := range []string{"abc", "0", "-3"} {
			resp, _ := f.do(t, http.MethodGet, "/api/v1/contacts/"+id, "", validToken)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
		}
	})

	t.Run("обновление", func(t *testing.T) {
		f := newFixture(t)
		updated := sampleContact()
		updated.Name = "Jane Smith"
		f.contacts.On("Update", mock.Anything, int64(7), mock.MatchedBy(func(in entities.ContactInput) bool {
			return in.Name == "Jane Smith"
		})).Return(updated, nil)

		resp, raw := f.do(t, http.MethodPut, "/api/v1/contacts/7",
			`{"name":"Jane Smith","phone":"+15551234567","email":"jane@example.com","address":"1 Main Street"}`, validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Jane Smith", decode(t, raw)["name"])
	})

	t.Run("удаление", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Delete", mock.Anything, int64(7)).Return(nil)

		resp, _ := f.do(t, http.MethodDelete, "/api/v1/contacts/7", "", validToken)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestExportImport(t *testing.T) {
	t.Run("экспорт не перехватывается маршрутом :id", func(t *testing.T) {
		f := newFixture(t)
		f.transfer.On("Export", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(1).(io.Writer), "Name,Phone,Email,Address\n")
			}).
			Return(0, nil)

		resp, raw := f.do(t, http.MethodGet, "/api/v1/contacts/export", "", validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "contacts.csv")
		assert.Equal(t, "Name,Phone,Email,Address\n", string(raw))
	})

	t.Run("импорт", func(t *testing.T) {
		f := newFixture(t)
		csvBody := "Name,Phone,Email,Address\nJane Doe,+15551234567,jane@example.com,1 Main Street\n"
		f.transfer.On("Import", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				got, err := io.ReadAll(args.Get(1).(io.Reader))
				assert.NoError(t, err)
				assert.Equal(t, csvBody, string(got))
			}).
			Return(&services.ImportResult{
				Imported: 1,
				Failures: []services.ImportFailure{{Line: 3, Reason: "phone: invalid"}},
			}, nil)

		resp, raw := f.do(t, http.MethodPost, "/api/v1/contacts/import", csvBody, validToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode(t, raw)
		assert.EqualValues(t, 1, body["imported"])
		assert.Len(t, body["errors"], 1)
	})

	t.Run("неверный заголовок CSV", func(t *testing.T) {
		f := newFixture(t)
		f.transfer.On("Import", mock.Anything, mock.Anything).Return(nil, services.ErrUnexpectedHead)

		resp, _ := f.do(t, http.MethodPost, "/api/v1/contacts/import", "x,y\n", validToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestBackup(t *testing.T) {
	t.Run("создан", func(t *testing.T) {
		f := newFixture(t)
		f.backup.On("Backup", mock.Anything).
			Return(&services.BackupResult{File: "/tmp/b.sql", ObjectKey: "backups/b.sql"}, nil)

		resp, raw := f.do(t, http.MethodPost, "/api/v1/backups", "", validToken)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "backups/b.sql", decode(t, raw)["object_key"])
	})

	t.Run("выгрузка не удалась", func(t *testing.T) {
		f := newFixture(t)
		f.backup.On("Backup", mock.Anything).
			Return(&services.BackupResult{File: "/tmp/b.sql"}, fmt.Errorf("%w: timeout", services.ErrUploadFailed))

		resp, raw := f.do(t, http.MethodPost, "/api/v1/backups", "", validToken)
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Equal(t, "/tmp/b.sql", decode(t, raw)["file"])
	})

	t.Run("дамп не удался", func(t *testing.T) {
		f := newFixture(t)
		f.backup.On("Backup", mock.Anything).Return(nil, services.ErrDumpFailed)

		resp, _ := f.do(t, http.MethodPost, "/api/v1/backups", "", validToken)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		f := newFixture(t)
		f.pinger.On("Ping", mock.Anything).Return(nil)

		resp, raw := f.do(t, http.MethodGet, "/healthz", "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "ok", decode(t, raw)["status"])
	})

	t.Run("недоступна база", func(t *testing.T) {
		f := newFixture(t)
		f.pinger.On("Ping", mock.Anything).Return(errors.New("connection refused"))

		resp, _ := f.do(t, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRouterFallbacks(t *testing.T) {
	t.Run("неизвестный маршрут", func(t *testing.T) {
		f := newFixture(t)
		resp, raw := f.do(t, http.MethodGet, "/nope", "", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Route not found", decode(t, raw)["error"])
	})

	t.Run("паника превращается в 500", func(t *testing.T) {
		f := newFixture(t)
		f.contacts.On("Get", mock.Anything, int64(9)).Run(func(mock.Arguments) {
			panic("boom")
		}).Return(nil, nil)

		resp, _ := f.do(t, http.MethodGet, "/api/v1/contacts/9", "", validToken)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("X-Request-ID возвращается клиенту", func(t *testing.T) {
		f := newFixture(t)
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")
		resp, err := f.app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
	})
}
