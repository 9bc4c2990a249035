package service

import (
	"context"
	"testing"
	"time"
	"video-paywall-demo/internal/model"
	"video-paywall-demo/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuth(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	svc := NewAuthService(repository.NewUserRepository(newTestDB(t)), "test-secret", ttl)
	svc.(*authServiceImpl).hashCost = bcrypt.MinCost
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t, time.Hour)

	user, err := svc.Register(ctx, "ada", "ada@gmail.com", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.PasswordHash)

	_, err = svc.Register(ctx, "ada2", "ada@gmail.com", "other")
	assert.ErrorIs(t, err, model.ErrEmailTaken)

	_, _, err = svc.Login(ctx, "ada@gmail.com", "wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@gmail.com", "s3cret")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	token, got, err := svc.Login(ctx, "ada@gmail.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ada", got.Username)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@gmail.com", claims.Subject)
	assert.Equal(t, "ada", claims.Username)
}

func TestRegister_Validation(t *testing.T) {
	svc := newAuth(t, time.Hour)

	_, err := svc.Register(context.Background(), "", "a@x.com", "pw")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, _, err = svc.Login(context.Background(), "a@x.com", "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestParseToken_Rejects(t *testing.T) {
	ctx := context.Background()
	svc := newAuth(t, -time.Minute)

	_, err := svc.Register(ctx, "ada", "ada@gmail.com", "pw")
	require.NoError(t, err)
	expired, _, err := svc.Login(ctx, "ada@gmail.com", "pw")
	require.NoError(t, err)

	_, err = svc.ParseToken(expired)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "ada@gmail.com"}).
		SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(foreign)
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)

	_, err = svc.ParseToken("not-a-token")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}
