package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"addressbook/internal/addressbook/domain/entities"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/internal/addressbook/domain/validation"
	"addressbook/internal/addressbook/ports/api"
	"addressbook/internal/addressbook/ports/repositories"
	svc "addressbook/internal/addressbook/ports/services"
	"addressbook/pkg/logger"
)

const (
	methodAuthenticate    = "Authenticate"
	methodLogin           = "Login"
	methodLogout          = "Logout"
	methodValidateSession = "ValidateSession"
	methodCreateUser      = "CreateUser"
	methodEnsureAdmin     = "EnsureAdmin"

	msgLoginAttempt        = "login attempt"
	msgLoginNonExistent    = "login attempt with non-existent username"
	msgInvalidPasswordAuth = "invalid password provided"
	msgUserLoggedIn        = "user logged in successfully"
	msgProcessingLogout    = "processing logout request"
	msgTokenAlreadyExpired = "token already expired, nothing to revoke"
	msgUserLoggedOut       = "user logged out successfully"
	msgRevokedTokenAttempt = "attempt to use revoked token"
	msgUserCreated         = "user created"
	msgAdminExists         = "users already present, bootstrap admin skipped"
	msgAdminCreated        = "bootstrap admin created"

	msgErrFindingUser       = "error finding user by username"
	msgErrVerifyingPassword = "error verifying password"
	msgErrGenerateToken     = "failed to generate access token"
	msgErrInvalidToken      = "invalid access token"
	msgErrRevokeToken       = "failed to revoke token"
	msgErrCheckRevoked      = "failed to check token revocation"
	msgErrHashPassword      = "failed to hash password"
	msgErrCreateUser        = "failed to create user"
	msgErrCountUsers        = "failed to count users"

	errCtxInvalidCredentials = "invalid credentials"
	errCtxFindingUser        = "finding user"
	errCtxVerifyingPassword  = "verifying password"
	errCtxGeneratingToken    = "generating access token"
	errCtxValidatingToken    = "validating access token"
	errCtxRevokingToken      = "revoking token"
	errCtxCheckingSession    = "checking session"
	errCtxValidatingUsername = "validating username"
	errCtxValidatingEmail    = "validating email"
	errCtxValidatingPassword = "validating password"
	errCtxHashingPassword    = "hashing password"
	errCtxCreatingUser       = "creating user"
	errCtxCountingUsers      = "counting users"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
	sessions    svc.SessionStore
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
// При sessions == nil токены не отзываются (для утилит командной строки).
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
	sessions svc.SessionStore,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		sessions:    sessions,
	}
}

// Authenticate проверяет пару логин/пароль. Неизвестный логин - это false, а не ошибка.
func (a *AuthUseCaseImpl) Authenticate(ctx context.Context, username, password string) (bool, error) {
	_, err := a.verifyCredentials(ctx, methodAuthenticate, username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Login проверяет учетные данные и выдает токен доступа.
func (a *AuthUseCaseImpl) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	user, err := a.verifyCredentials(ctx, methodLogin, username, password)
	if err != nil {
		return nil, err
	}

	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.Int64("userID", user.ID))

	token, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		log.Error(ctx, msgErrGenerateToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	log.Info(ctx, msgUserLoggedIn)
	return token, nil
}

// Logout отзывает токен до конца его срока жизни.
func (a *AuthUseCaseImpl) Logout(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout))
	log.Debug(ctx, msgProcessingLogout)

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgErrInvalidToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	log = log.With(zap.Int64("userID", claims.UserID))

	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 || a.sessions == nil {
		log.Debug(ctx, msgTokenAlreadyExpired)
		return nil
	}

	if err := a.sessions.Revoke(ctx, claims.TokenID, ttl); err != nil {
		log.Error(ctx, msgErrRevokeToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// ValidateSession проверяет подпись токена и то, что он не отозван.
func (a *AuthUseCaseImpl) ValidateSession(ctx context.Context, token string) (*services.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateSession))

	claims, err := a.tokenSvc.ValidateAccessToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgErrInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
	}

	revoked := false
	if a.sessions != nil {
		revoked, err = a.sessions.IsRevoked(ctx, claims.TokenID)
	}
	if err != nil {
		log.Error(ctx, msgErrCheckRevoked, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if revoked {
		log.Debug(ctx, msgRevokedTokenAttempt, zap.Int64("userID", claims.UserID))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, services.ErrSessionRevoked)
	}

	return &services.Session{
		TokenID:   claims.TokenID,
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

// CreateUser заводит учетную запись с хешированным паролем.
func (a *AuthUseCaseImpl) CreateUser(ctx context.Context, username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	log := logger.Log(ctx).With(zap.String("method", methodCreateUser), zap.String("username", username))

	if username == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingUsername, entities.ErrEmptyUsername)
	}
	if !validation.IsValidEmail(email) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingEmail, entities.ErrInvalidEmail)
	}
	if len(password) < services.MinPasswordLength {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingPassword, services.ErrInvalidPassword)
	}

	hash, err := a.passwordSvc.Hash(ctx, password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user, err := a.userRepo.Create(ctx, &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if !errors.Is(err, entities.ErrUserAlreadyExists) {
			log.Error(ctx, msgErrCreateUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserCreated, zap.Int64("userID", user.ID))
	return user, nil
}

// EnsureAdmin создает учетную запись администратора, если пользователей нет.
func (a *AuthUseCaseImpl) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodEnsureAdmin))

	total, err := a.userRepo.Count(ctx)
	if err != nil {
		log.Error(ctx, msgErrCountUsers, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCountingUsers, err)
	}
	if total > 0 {
		log.Debug(ctx, msgAdminExists, zap.Int64("users", total))
		return false, nil
	}

	if _, err := a.CreateUser(ctx, username, email, password); err != nil {
		return false, err
	}

	log.Info(ctx, msgAdminCreated, zap.String("username", username))
	return true, nil
}

func (a *AuthUseCaseImpl) verifyCredentials(ctx context.Context, method, username, password string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", method), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginNonExistent)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.Int64("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	return user, nil
}
