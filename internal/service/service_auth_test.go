package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/teamnotes/note-keeper/internal/config"
	cryptomock "github.com/teamnotes/note-keeper/internal/crypto/mock"
	"github.com/teamnotes/note-keeper/internal/logger"
	"github.com/teamnotes/note-keeper/internal/store"
	storemock "github.com/teamnotes/note-keeper/internal/store/mock"
	"github.com/teamnotes/note-keeper/models"
)

func newTestAuthService(t *testing.T) (AuthService, *storemock.MockUserRepository, *cryptomock.MockPasswordHasher) {
	ctrl := gomock.NewController(t)
	users := storemock.NewMockUserRepository(ctrl)
	hasher := cryptomock.NewMockPasswordHasher(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "note-keeper-test",
		TokenDuration: time.Hour,
	}

	return NewAuthService(users, hasher, cfg, logger.Nop()), users, hasher
}

func TestRegisterUser_HashesPasswordAndClearsPlaintext(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)

	hasher.EXPECT().Hash("s3cret").Return("$argon2id$stub", nil)
	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "$argon2id$stub", u.PasswordHash)
			assert.Empty(t, u.Password, "plaintext password must not reach the store")
			u.UserID = 1
			return u, nil
		})

	registered, err := svc.RegisterUser(context.Background(), models.User{
		Login:    "alice",
		Password: "s3cret",
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, registered.UserID)
}

func TestRegisterUser_EmptyCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.RegisterUser(context.Background(), models.User{Login: "alice"})

	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegisterUser_LoginTaken(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)

	hasher.EXPECT().Hash(gomock.Any()).Return("$argon2id$stub", nil)
	users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrLoginAlreadyExists)

	_, err := svc.RegisterUser(context.Background(), models.User{
		Login:    "alice",
		Password: "s3cret",
	})

	assert.ErrorIs(t, err, store.ErrLoginAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "alice").
		Return(models.User{UserID: 1, Login: "alice", PasswordHash: "$argon2id$stored"}, nil)
	hasher.EXPECT().Verify("wrong", "$argon2id$stored").Return(false)

	_, err := svc.Login(context.Background(), models.User{Login: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLogin_Success(t *testing.T) {
	svc, users, hasher := newTestAuthService(t)

	users.EXPECT().
		FindUserByLogin(gomock.Any(), "alice").
		Return(models.User{UserID: 1, Login: "alice", PasswordHash: "$argon2id$stored"}, nil)
	hasher.EXPECT().Verify("s3cret", "$argon2id$stored").Return(true)

	found, err := svc.Login(context.Background(), models.User{Login: "alice", Password: "s3cret"})

	require.NoError(t, err)
	assert.EqualValues(t, 1, found.UserID)
}

func TestCreateAndParseToken_RoundTrip(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)
	assert.EqualValues(t, 42, parsed.UserID)
}

func TestParseToken_Garbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.ParseToken(context.Background(), "not.a.jwt")

	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
