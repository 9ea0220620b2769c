package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/apperr"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
	"github.com/harentsoaR/dental-booking/internal/utils"
)

// RegisterInput is a public sign-up. Accounts created this way always
// get the user role; admins come from SeedAdmin.
type RegisterInput struct {
	Name      string `json:"name" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Accounts registers users and issues tokens for them.
type Accounts struct {
	users      UserStore
	tokens     *utils.TokenManager
	bcryptCost int
	now        func() time.Time
}

func NewAccounts(users UserStore, tokens *utils.TokenManager, bcryptCost int) *Accounts {
	return &Accounts{users: users, tokens: tokens, bcryptCost: bcryptCost, now: time.Now}
}

func (a *Accounts) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	user, err := a.create(ctx, in, models.RoleUser)
	if err != nil {
		return nil, "", err
	}
	token, err := a.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", apperr.Unexpected("generate token", err)
	}
	return user, token, nil
}

// SeedAdmin creates the configured admin account unless its email is
// already taken by an admin. An existing non-admin account with that
// email is left alone and reported as a conflict.
func (a *Accounts) SeedAdmin(ctx context.Context, in RegisterInput) (created bool, err error) {
	existing, err := a.users.FindUserByEmail(ctx, normalizeEmail(in.Email))
	switch {
	case err == nil && existing.Role == models.RoleAdmin:
		return false, nil
	case err == nil:
		return false, apperr.Conflictf("Account %s exists with role %s", existing.Email, existing.Role)
	case !errors.Is(err, store.ErrNotFound):
		return false, apperr.Unexpected("find admin", err)
	}

	if _, err := a.create(ctx, in, models.RoleAdmin); err != nil {
		return false, err
	}
	return true, nil
}

func (a *Accounts) create(ctx context.Context, in RegisterInput, role string) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	hashed, err := utils.HashPassword(in.Password, a.bcryptCost)
	if err != nil {
		return nil, apperr.Unexpected("hash password", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      in.Name,
		Email:     in.Email,
		Telephone: in.Telephone,
		Role:      role,
		Password:  hashed,
		CreatedAt: a.now().UTC(),
	}
	if err := a.users.InsertUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflictf("An account with this email already exists")
		}
		return nil, apperr.Unexpected("create user", err)
	}
	return user, nil
}

func (a *Accounts) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validationf("Please provide an email and password")
	}

	user, err := a.users.FindUserByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", apperr.Unauthenticatedf("Invalid credentials")
	}
	if err != nil {
		return nil, "", apperr.Unexpected("find user", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", apperr.Unauthenticatedf("Invalid credentials")
	}

	token, err := a.tokens.Generate(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, "", apperr.Unexpected("generate token", err)
	}
	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
