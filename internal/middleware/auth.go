package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
	"github.com/harentsoaR/dental-booking/internal/utils"
)

const (
	// TokenCookie is the cookie the login endpoints set.
	TokenCookie = "token"
	// LoggedOutToken is what logout writes into the cookie.
	LoggedOutToken = "none"

	identityKey = "identity"
	userKey     = "user"
)

type UserFinder interface {
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Authenticator resolves the request's bearer token to a stored user.
type Authenticator struct {
	tokens *utils.TokenManager
	users  UserFinder
	logger *zap.Logger
}

func NewAuthenticator(tokens *utils.TokenManager, users UserFinder, logger *zap.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// Protect rejects requests without a valid token for an existing user and
// attaches the identity for the handlers.
func (a *Authenticator) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || token == LoggedOutToken {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		claims, err := a.tokens.Validate(token)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}
		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Not authorized to access this route")
			return
		}

		user, err := a.users.FindUserByID(c.Request.Context(), userID)
		if errors.Is(err, store.ErrNotFound) {
			abort(c, http.StatusUnauthorized, "Not authorized (user not found)")
			return
		}
		if err != nil {
			a.logger.Error("failed to load user for token", zap.String("user_id", claims.UserID), zap.Error(err))
			abort(c, http.StatusInternalServerError, "Cannot verify credentials")
			return
		}

		c.Set(identityKey, user.Identity())
		c.Set(userKey, user)
		c.Next()
	}
}

// Authorize lets a request through only when its identity has one of roles.
// It must run after Protect; a request without an identity is denied.
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		who, ok := CurrentIdentity(c)
		if !ok || !slices.Contains(roles, who.Role) {
			abort(c, http.StatusForbidden, fmt.Sprintf("User role %s is not authorized to access this route", who.Role))
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return models.Identity{}, false
	}
	who, ok := v.(models.Identity)
	return who, ok
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// extractToken prefers the Authorization header over the cookie.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
