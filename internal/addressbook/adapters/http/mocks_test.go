package http_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, username, password string) (bool, error) {
	args := m.Called(ctx, username, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

func (m *MockAuthUseCase) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthUseCase) ValidateSession(ctx context.Context, token string) (*services.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthUseCase) CreateUser(ctx context.Context, username, email, password string) (*entities.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockAuthUseCase) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	args := m.Called(ctx, username, email, password)
	return args.Bool(0), args.Error(1)
}

type MockContactUseCase struct {
	mock.Mock
}

func (m *MockContactUseCase) Create(ctx context.Context, input entities.ContactInput) (*entities.Contact, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *MockContactUseCase) Update(ctx context.Context, id int64, input entities.ContactInput) (*entities.Contact, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *MockContactUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactUseCase) Get(ctx context.Context, id int64) (*entities.Contact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Contact), args.Error(1)
}

func (m *MockContactUseCase) List(ctx context.Context) []*entities.Contact {
	args := m.Called(ctx)
	return args.Get(0).([]*entities.Contact)
}

func (m *MockContactUseCase) Search(ctx context.Context, term string) []*entities.Contact {
	args := m.Called(ctx, term)
	return args.Get(0).([]*entities.Contact)
}

func (m *MockContactUseCase) SeedSamples(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockTransferUseCase struct {
	mock.Mock
}

func (m *MockTransferUseCase) Export(ctx context.Context, w io.Writer) (int, error) {
	args := m.Called(ctx, w)
	return args.Int(0), args.Error(1)
}

func (m *MockTransferUseCase) Import(ctx context.Context, r io.Reader) (*services.ImportResult, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ImportResult), args.Error(1)
}

type MockBackupUseCase struct {
	mock.Mock
}

func (m *MockBackupUseCase) Backup(ctx context.Context) (*services.BackupResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.BackupResult), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
