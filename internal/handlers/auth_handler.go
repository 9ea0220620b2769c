package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dental-booking/internal/middleware"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/services"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// RegisterUser creates an account and logs it in.
func (h *Handler) RegisterUser(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	user, token, err := h.Accounts.Register(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Failed to create user")
		return
	}
	h.sendToken(c, http.StatusCreated, user, token)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request")
		return
	}
	user, token, err := h.Accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, "Could not log in")
		return
	}
	h.sendToken(c, http.StatusOK, user, token)
}

// Logout overwrites the token cookie with the logged-out marker.
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, middleware.LoggedOutToken, int((10 * time.Second).Seconds()), "/", "", h.CookieSecure, true)
	respond(c, http.StatusOK, gin.H{})
}

// GetMe returns the profile of the currently authenticated user.
func (h *Handler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Not authorized to access this route"})
		return
	}
	respond(c, http.StatusOK, user)
}

func (h *Handler) sendToken(c *gin.Context, status int, user *models.User, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.CookieTTL.Seconds()), "/", "", h.CookieSecure, true)
	c.JSON(status, tokenResponse{Success: true, Token: token, User: user})
}
