package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/dental-booking/internal/apperr"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store/memstore"
	"github.com/harentsoaR/dental-booking/internal/utils"
)

func newAccounts(t *testing.T) (*Accounts, *utils.TokenManager) {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)
	return NewAccounts(memstore.New(), tokens, 4), tokens
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Name:      "Alice",
		Email:     "Alice@Clinic.test ",
		Telephone: "0812345678",
		Password:  "secret123",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	accounts, tokens := newAccounts(t)
	ctx := context.Background()

	user, token, err := accounts.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "alice@clinic.test", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	loggedIn, _, err := accounts.Login(ctx, "ALICE@clinic.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()

	_, _, err := accounts.Register(ctx, validRegistration())
	require.NoError(t, err)
	_, _, err = accounts.Register(ctx, validRegistration())
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	accounts, _ := newAccounts(t)
	tests := map[string]func(*RegisterInput){
		"bad email":      func(in *RegisterInput) { in.Email = "nope" },
		"short password": func(in *RegisterInput) { in.Password = "123" },
		"no telephone":   func(in *RegisterInput) { in.Telephone = "" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			in := validRegistration()
			mutate(&in)
			_, _, err := accounts.Register(context.Background(), in)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestLoginFailures(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()
	_, _, err := accounts.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, err = accounts.Login(ctx, "alice@clinic.test", "wrong-password")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	_, _, err = accounts.Login(ctx, "bob@clinic.test", "secret123")
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	_, _, err = accounts.Login(ctx, "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestSeedAdmin(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()
	seed := RegisterInput{Name: "Clinic Admin", Email: "Admin@Clinic.test", Telephone: "0800000000", Password: "admin-secret"}

	created, err := accounts.SeedAdmin(ctx, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = accounts.SeedAdmin(ctx, seed)
	require.NoError(t, err)
	assert.False(t, created)

	admin, token, err := accounts.Login(ctx, "admin@clinic.test", "admin-secret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NotEmpty(t, token)
}

func TestSeedAdminKeepsExistingUser(t *testing.T) {
	accounts, _ := newAccounts(t)
	ctx := context.Background()
	_, _, err := accounts.Register(ctx, validRegistration())
	require.NoError(t, err)

	seed := validRegistration()
	seed.Password = "another-secret"
	created, err := accounts.SeedAdmin(ctx, seed)
	assert.False(t, created)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	user, _, err := accounts.Login(ctx, "alice@clinic.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}
