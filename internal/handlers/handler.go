package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/services"
)

// Handler holds the services every HTTP handler in this package uses.
type Handler struct {
	Dentists *services.DentistRegistry
	Bookings *services.BookingLedger
	Accounts *services.Accounts
	Logger   *zap.Logger

	// CookieTTL and CookieSecure control the token cookie set on login.
	CookieTTL    time.Duration
	CookieSecure bool
}

func NewHandler(
	dentists *services.DentistRegistry,
	bookings *services.BookingLedger,
	accounts *services.Accounts,
	logger *zap.Logger,
	cookieTTL time.Duration,
	cookieSecure bool,
) *Handler {
	return &Handler{
		Dentists:     dentists,
		Bookings:     bookings,
		Accounts:     accounts,
		Logger:       logger,
		CookieTTL:    cookieTTL,
		CookieSecure: cookieSecure,
	}
}
