package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/dental-booking/internal/services"
)

// GetDentists lists all dentists, newest first.
func (h *Handler) GetDentists(c *gin.Context) {
	dentists, err := h.Dentists.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Cannot fetch dentists")
		return
	}
	respondList(c, dentists)
}

func (h *Handler) GetDentist(c *gin.Context) {
	dentist, err := h.Dentists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Cannot fetch dentist")
		return
	}
	respond(c, http.StatusOK, dentist)
}

// GetDentistBookings lists the bookings made with one dentist (admin).
func (h *Handler) GetDentistBookings(c *gin.Context) {
	dentist, err := h.Dentists.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "Cannot fetch dentist")
		return
	}
	bookings, err := h.Bookings.ListForDentist(c.Request.Context(), dentist.ID)
	if err != nil {
		h.fail(c, err, "Cannot fetch bookings")
		return
	}
	respondList(c, bookings)
}

func (h *Handler) CreateDentist(c *gin.Context) {
	var req services.DentistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	dentist, err := h.Dentists.Create(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err, "Cannot create dentist")
		return
	}
	respond(c, http.StatusCreated, dentist)
}

func (h *Handler) UpdateDentist(c *gin.Context) {
	var req services.DentistInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	dentist, err := h.Dentists.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, err, "Cannot update dentist")
		return
	}
	respond(c, http.StatusOK, dentist)
}

func (h *Handler) DeleteDentist(c *gin.Context) {
	if err := h.Dentists.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "Cannot delete dentist")
		return
	}
	respond(c, http.StatusOK, gin.H{})
}
