package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skilltrack/tms-api/internal/models"
	memorystore "github.com/skilltrack/tms-api/internal/store/memory"
	appErrors "github.com/skilltrack/tms-api/pkg/errors"
)

func newAuthService(t *testing.T) (*AuthService, *memorystore.Store) {
	t.Helper()
	st, err := memorystore.New()
	require.NoError(t, err)
	svc := NewAuthService(st, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "tms-api",
	})
	return svc, st
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthService(t)

	res, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "admin", res.User.Username)
	assert.Equal(t, models.RoleAdmin, res.User.Role)
}

func TestLoginFailureIsGeneric(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, unknownErr := svc.Login(ctx, models.LoginRequest{Username: "nobody", Password: "admin123"})
	require.Error(t, unknownErr)
	_, wrongPassErr := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, wrongPassErr)

	// Unknown username and wrong password are indistinguishable to the caller.
	unknown := appErrors.FromError(unknownErr)
	wrongPass := appErrors.FromError(wrongPassErr)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, unknown.Code)
	assert.Equal(t, unknown.Code, wrongPass.Code)
	assert.Equal(t, unknown.Message, wrongPass.Message)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		Username: "newofficer",
		Password: "password1",
		Name:     "New Officer",
		Role:     models.RoleEnrollmentOfficer,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	res, err := svc.Login(ctx, models.LoginRequest{Username: "newofficer", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleEnrollmentOfficer, res.User.Role)
}

func TestRegisterDuplicateUsernameConflicts(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "admin",
		Password: "password1",
		Name:     "Impostor",
		Role:     models.RoleAdmin,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestRegisterUnknownRoleRejected(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Username: "ghost",
		Password: "password1",
		Name:     "Ghost",
		Role:     models.UserRole("superuser"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The used token is revoked and cannot be replayed.
	_, err = svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Username: "cashier", Password: "cashier123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, login.RefreshToken, login.User.ID))

	_, err = svc.Refresh(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Username: "cashier", Password: "cashier123"})
	require.NoError(t, err)

	err = svc.Logout(ctx, login.RefreshToken, login.User.ID+1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService(t)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "officer", Password: "officer123"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "officer", claims.Username)
	assert.Equal(t, models.RoleEnrollmentOfficer, claims.Role)
	assert.Equal(t, login.User.ID, claims.UserID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc, st := newAuthService(t)

	login, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	other := NewAuthService(st, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "different",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: time.Hour,
	})
	_, err = other.ValidateToken(login.AccessToken)
	require.Error(t, err)
}
