package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkdsmart/feedback-portal/internal/models"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
)

type mockAuthRepo struct {
	user    *models.User
	findErr error
}

func (m *mockAuthRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.user == nil || m.user.Username != username {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func newAuthService(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, validator.New(), zap.NewNop(), AuthConfig{
		Secret: "secret",
		TTL:    time.Hour,
		Issuer: "feedback-portal",
	})
}

func TestLoginSuccess(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{user: &models.User{ID: 1, Username: "alice", PasswordHash: string(hash), Role: models.RoleUser}}
	svc := newAuthService(repo)

	user, err := svc.Login(context.Background(), models.LoginForm{Username: "alice", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestLoginTrimsInput(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{user: &models.User{ID: 1, Username: "alice", PasswordHash: string(hash), Role: models.RoleUser}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginForm{Username: "  alice  ", Password: " password "})
	require.NoError(t, err)
}

func TestLoginUnknownUserIsGeneric(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginForm{Username: "nobody", Password: "password"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErr.Message)
}

func TestLoginWrongPasswordIsGeneric(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockAuthRepo{user: &models.User{ID: 1, Username: "alice", PasswordHash: string(hash), Role: models.RoleUser}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), models.LoginForm{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Message, appErr.Message)
}

func TestLoginEmptyFieldsRejected(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.Login(context.Background(), models.LoginForm{Username: "   ", Password: ""})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErr.Code)
}

func TestSessionRoundTrip(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})
	user := &models.User{ID: 42, Username: "admin", Role: models.RoleAdmin}

	token, err := svc.IssueSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateSession(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestValidateSessionRejectsGarbage(t *testing.T) {
	svc := newAuthService(&mockAuthRepo{})

	_, err := svc.ValidateSession("not-a-token")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestValidateSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(&mockAuthRepo{}, validator.New(), zap.NewNop(), AuthConfig{Secret: "other", TTL: time.Hour})
	token, err := issuer.IssueSession(&models.User{ID: 1, Username: "alice", Role: models.RoleUser})
	require.NoError(t, err)

	svc := newAuthService(&mockAuthRepo{})
	_, err = svc.ValidateSession(token)
	require.Error(t, err)
}
