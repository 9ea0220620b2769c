package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store/memstore"
	"github.com/harentsoaR/dental-booking/internal/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type failingFinder struct{}

func (failingFinder) FindUserByID(context.Context, primitive.ObjectID) (*models.User, error) {
	return nil, errors.New("connection refused")
}

func setup(t *testing.T) (*utils.TokenManager, *memstore.Store, *models.User, *models.User) {
	t.Helper()
	tokens, err := utils.NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	users := memstore.New()
	alice := &models.User{ID: primitive.NewObjectID(), Name: "alice", Email: "alice@clinic.test", Role: models.RoleUser}
	admin := &models.User{ID: primitive.NewObjectID(), Name: "root", Email: "root@clinic.test", Role: models.RoleAdmin}
	require.NoError(t, users.InsertUser(context.Background(), alice))
	require.NoError(t, users.InsertUser(context.Background(), admin))
	return tokens, users, alice, admin
}

// router mounts a handler that echoes the identity id behind the given chain.
func router(reached *bool, chain ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(chain, func(c *gin.Context) {
		*reached = true
		who, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": who.ID.Hex(), "role": who.Role})
	})
	r.GET("/private", handlers...)
	return r
}

func token(t *testing.T, tokens *utils.TokenManager, u *models.User) string {
	t.Helper()
	tok, err := tokens.Generate(u.ID.Hex(), u.Role)
	require.NoError(t, err)
	return tok
}

func TestProtect(t *testing.T) {
	tokens, users, alice, admin := setup(t)
	otherIssuer, err := utils.NewTokenManager("other-secret", time.Hour)
	require.NoError(t, err)
	ghost := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}

	tests := []struct {
		name       string
		header     string
		cookie     string
		wantStatus int
		wantID     string
		wantBody   string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized, wantBody: "Not authorized to access this route"},
		{name: "bearer header", header: "Bearer " + token(t, tokens, alice), wantStatus: http.StatusOK, wantID: alice.ID.Hex()},
		{name: "cookie", cookie: token(t, tokens, alice), wantStatus: http.StatusOK, wantID: alice.ID.Hex()},
		{
			name:       "header wins over cookie",
			header:     "Bearer " + token(t, tokens, admin),
			cookie:     token(t, tokens, alice),
			wantStatus: http.StatusOK,
			wantID:     admin.ID.Hex(),
		},
		{name: "logged out cookie", cookie: "none", wantStatus: http.StatusUnauthorized},
		{name: "literal none header", header: "Bearer none", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + token(t, otherIssuer, alice), wantStatus: http.StatusUnauthorized},
		{
			name:       "deleted user",
			header:     "Bearer " + token(t, tokens, ghost),
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Not authorized (user not found)",
		},
	}

	auth := NewAuthenticator(tokens, users, zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			r := router(&reached, auth.Protect())

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			if tt.wantID != "" {
				assert.Contains(t, rr.Body.String(), tt.wantID)
			}
			if tt.wantBody != "" {
				assert.JSONEq(t, `{"success":false,"message":"`+tt.wantBody+`"}`, rr.Body.String())
			}
		})
	}
}

func TestProtectStoreFailure(t *testing.T) {
	tokens, _, alice, _ := setup(t)
	auth := NewAuthenticator(tokens, failingFinder{}, zap.NewNop())

	var reached bool
	r := router(&reached, auth.Protect())
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, tokens, alice))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.False(t, reached)
}

func TestAuthorize(t *testing.T) {
	tokens, users, alice, admin := setup(t)
	auth := NewAuthenticator(tokens, users, zap.NewNop())

	tests := []struct {
		name       string
		user       *models.User
		roles      []string
		wantStatus int
	}{
		{"user denied admin route", alice, []string{models.RoleAdmin}, http.StatusForbidden},
		{"admin allowed", admin, []string{models.RoleAdmin}, http.StatusOK},
		{"user allowed when listed", alice, []string{models.RoleUser, models.RoleAdmin}, http.StatusOK},
		{"empty role set denies everyone", admin, nil, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			r := router(&reached, auth.Protect(), Authorize(tt.roles...))
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			req.Header.Set("Authorization", "Bearer "+token(t, tokens, tt.user))
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
		})
	}
}

func TestAuthorizeWithoutIdentityFailsClosed(t *testing.T) {
	var reached bool
	r := router(&reached, Authorize(models.RoleAdmin))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, reached)
	assert.JSONEq(t, `{"success":false,"message":"User role  is not authorized to access this route"}`, rr.Body.String())
}
