package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"installment-backend/internal/auth"
	"installment-backend/internal/config"
	"installment-backend/internal/models"
)

func newUserFixture(t *testing.T) (*UserService, *fakeUserStore) {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "test"

	users := newFakeUserStore()
	svc := NewUserService(users, auth.NewJWTManager(cfg), zaptest.NewLogger(t))
	return svc, users
}

func TestSignupCreatesClient(t *testing.T) {
	svc, users := newUserFixture(t)

	resp, err := svc.Signup(context.Background(), &models.SignupRequest{
		Name:     "Aziz Karimov",
		Email:    "aziz@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleClient, resp.User.Role)

	stored, err := users.GetByEmail(context.Background(), "aziz@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored.PasswordHash)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	req := &models.SignupRequest{Name: "Aziz", Email: "aziz@example.com", Password: "secret"}
	_, err := svc.Signup(ctx, req)
	require.NoError(t, err)

	_, err = svc.Signup(ctx, req)
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Name:     "X",
		Email:    "x@example.com",
		Password: "secret",
		Role:     "superuser",
	})
	var verr *models.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestCreateUserSurfacesStoreReadFailure(t *testing.T) {
	svc, users := newUserFixture(t)
	storeErr := errors.New("connection reset")
	users.getByEmailErr = storeErr

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{
		Name:     "Aziz",
		Email:    "aziz@example.com",
		Password: "secret",
		Role:     string(models.RoleClient),
	})
	require.ErrorIs(t, err, storeErr)
	assert.Empty(t, users.users, "a failed duplicate check must not fall through to a write")
}

func TestCreateUserRequiresFields(t *testing.T) {
	svc, users := newUserFixture(t)

	_, err := svc.CreateUser(context.Background(), &models.CreateUserRequest{Email: "x@example.com"})
	require.Error(t, err)
	assert.Empty(t, users.users)
}

func TestLogin(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &models.SignupRequest{Name: "Aziz", Email: "aziz@example.com", Password: "secret"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &models.LoginRequest{Email: "aziz@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserFixture(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &models.SignupRequest{Name: "Aziz", Email: "aziz@example.com", Password: "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &models.LoginRequest{Email: "aziz@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newUserFixture(t)

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "ghost@example.com", Password: "secret"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestEnsureAdminIdempotent(t *testing.T) {
	svc, users := newUserFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "Admin", "admin@example.com", "adminpass"))

	assert.Len(t, users.users, 1)
	admin, err := users.GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
}
