package handlers

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dental-booking/internal/middleware"
	"github.com/harentsoaR/dental-booking/internal/models"
)

// NewRouter wires every route under /api/v1.
func NewRouter(h *Handler, auth *middleware.Authenticator, allowOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(h.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	protect := auth.Protect()
	adminOnly := middleware.Authorize(models.RoleAdmin)

	api := r.Group("/api/v1")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", h.RegisterUser)
		authRoutes.POST("/login", h.Login)
		authRoutes.GET("/logout", protect, h.Logout)
		authRoutes.GET("/me", protect, h.GetMe)
	}

	bookings := api.Group("/bookings", protect)
	{
		bookings.GET("", adminOnly, h.GetBookings)
		bookings.POST("", h.CreateBooking)
		bookings.GET("/me", h.GetMyBooking)
		bookings.GET("/:id", h.GetBooking)
		bookings.PUT("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
	}

	dentists := api.Group("/dentists", protect)
	{
		dentists.GET("", h.GetDentists)
		dentists.GET("/:id", h.GetDentist)
		dentists.GET("/:id/bookings", adminOnly, h.GetDentistBookings)
		dentists.POST("", adminOnly, h.CreateDentist)
		dentists.PUT("/:id", adminOnly, h.UpdateDentist)
		dentists.DELETE("/:id", adminOnly, h.DeleteDentist)
	}

	return r
}
