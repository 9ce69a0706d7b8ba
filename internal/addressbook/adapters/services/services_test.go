package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapters "addressbook/internal/addressbook/adapters/services"
	"addressbook/internal/addressbook/domain/services"
	"addressbook/pkg/logger"
)

const testSecret = "test-secret-key"

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestBcrypt(t *testing.T) {
	ctx := context.Background()
	svc := adapters.NewBcrypt(bcrypt.MinCost)

	t.Run("хеш проверяется исходным паролем", func(t *testing.T) {
		hash, err := svc.Hash(ctx, "admin123")
		require.NoError(t, err)
		assert.NotEqual(t, "admin123", hash)

		ok, err := svc.Verify(ctx, "admin123", hash)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = svc.Verify(ctx, "admin124", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("одинаковые пароли дают разные хеши", func(t *testing.T) {
		first, err := svc.Hash(ctx, "password1")
		require.NoError(t, err)
		second, err := svc.Hash(ctx, "password1")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("короткий и пустой пароль отклоняются", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		require.ErrorIs(t, err, services.ErrInvalidPassword)
		_, err = svc.Hash(ctx, "short")
		require.ErrorIs(t, err, services.ErrInvalidPassword)
	})

	t.Run("пустые аргументы проверки", func(t *testing.T) {
		ok, err := svc.Verify(ctx, "", "hash")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("испорченный хеш", func(t *testing.T) {
		_, err := svc.Verify(ctx, "admin123", "not-a-bcrypt-hash")
		require.Error(t, err)
	})

	t.Run("некорректная стоимость заменяется значением по умолчанию", func(t *testing.T) {
		hash, err := adapters.NewBcrypt(0).Hash(ctx, "admin123")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
	})
}

func TestJWT_RoundTrip(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT(testSecret, time.Hour)

	token, err := svc.GenerateAccessToken(ctx, 42, "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	_, err = uuid.Parse(token.TokenID)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, token.TokenID, claims.TokenID)
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	ctx := testContext(t)
	svc := adapters.NewJWT(testSecret, time.Hour)

	first, err := svc.GenerateAccessToken(ctx, 1, "admin")
	require.NoError(t, err)
	second, err := svc.GenerateAccessToken(ctx, 1, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, first.TokenID, second.TokenID)
}

func TestJWT_Validation(t *testing.T) {
	ctx := testContext(t)

	t.Run("пустой секрет", func(t *testing.T) {
		_, err := adapters.NewJWT("", time.Hour).GenerateAccessToken(ctx, 1, "admin")
		require.ErrorIs(t, err, services.ErrGeneratingJWTToken)
	})

	t.Run("просроченный токен", func(t *testing.T) {
		svc := adapters.NewJWT(testSecret, -time.Minute)
		token, err := svc.GenerateAccessToken(ctx, 1, "admin")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(ctx, token.Token)
		require.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("чужая подпись", func(t *testing.T) {
		token, err := adapters.NewJWT("other-secret", time.Hour).GenerateAccessToken(ctx, 1, "admin")
		require.NoError(t, err)

		_, err = adapters.NewJWT(testSecret, time.Hour).ValidateAccessToken(ctx, token.Token)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := adapters.NewJWT(testSecret, time.Hour).ValidateAccessToken(ctx, "not.a.token")
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("другой алгоритм подписи", func(t *testing.T) {
		claims := adapters.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        "jti",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = adapters.NewJWT(testSecret, time.Hour).ValidateAccessToken(ctx, unsigned)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("токен без jti", func(t *testing.T) {
		claims := adapters.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = adapters.NewJWT(testSecret, time.Hour).ValidateAccessToken(ctx, signed)
		require.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})
}

func TestServiceFactory(t *testing.T) {
	factory := adapters.NewServiceFactory(testSecret, time.Hour, bcrypt.MinCost)

	assert.NotNil(t, factory.PasswordService())
	assert.NotNil(t, factory.TokenService())
}
