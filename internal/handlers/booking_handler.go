package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dental-booking/internal/middleware"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/services"
)

// bookingRequest accepts "date" as an alias of "bookingDate".
// A "user" field is ignored: the owner is always the requester.
type bookingRequest struct {
	Dentist     string     `json:"dentist"`
	BookingDate *time.Time `json:"bookingDate"`
	Date        *time.Time `json:"date"`
}

func (r bookingRequest) input() services.BookingInput {
	in := services.BookingInput{Dentist: r.Dentist, BookingDate: r.BookingDate}
	if in.BookingDate == nil {
		in.BookingDate = r.Date
	}
	return in
}

// identity is always present behind Protect; the check keeps a
// misconfigured route from acting as the zero identity.
func (h *Handler) identity(c *gin.Context) (models.Identity, bool) {
	who, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Message: "Not authorized to access this route"})
	}
	return who, ok
}

// GetBookings lists every booking with user and dentist details (admin).
func (h *Handler) GetBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Cannot fetch bookings")
		return
	}
	respondList(c, bookings)
}

func (h *Handler) GetMyBooking(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	booking, err := h.Bookings.GetMine(c.Request.Context(), who)
	if err != nil {
		h.fail(c, err, "Cannot fetch booking")
		return
	}
	respond(c, http.StatusOK, booking)
}

func (h *Handler) GetBooking(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	booking, err := h.Bookings.GetByID(c.Request.Context(), c.Param("id"), who)
	if err != nil {
		h.fail(c, err, "Cannot fetch booking")
		return
	}
	respond(c, http.StatusOK, booking)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body, bookingDate must be RFC3339")
		return
	}
	booking, err := h.Bookings.Create(c.Request.Context(), who, req.input())
	if err != nil {
		h.fail(c, err, "Cannot create booking")
		return
	}
	respond(c, http.StatusCreated, booking)
}

// UpdateBooking checks existence and ownership before it reads the body,
// so a caller without access never learns anything from validation.
func (h *Handler) UpdateBooking(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	if err := h.Bookings.CheckAccess(c.Request.Context(), c.Param("id"), who, "update"); err != nil {
		h.fail(c, err, "Cannot update booking")
		return
	}
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body, bookingDate must be RFC3339")
		return
	}
	booking, err := h.Bookings.Update(c.Request.Context(), c.Param("id"), who, req.input())
	if err != nil {
		h.fail(c, err, "Cannot update booking")
		return
	}
	respond(c, http.StatusOK, booking)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	who, ok := h.identity(c)
	if !ok {
		return
	}
	if err := h.Bookings.Delete(c.Request.Context(), c.Param("id"), who); err != nil {
		h.fail(c, err, "Cannot delete booking")
		return
	}
	respond(c, http.StatusOK, gin.H{})
}
