package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"houseman.backend/internal/domain/entities"
	"houseman.backend/internal/interfaces/http/response"
	"houseman.backend/internal/usecases"
	"houseman.backend/pkg/utils"
)

type BookingService interface {
	CreateBooking(ctx context.Context, actor entities.Actor, input *entities.CreateBookingInput) (*entities.Booking, error)
	ListBookings(ctx context.Context, actor entities.Actor, query usecases.BookingListQuery) ([]*entities.Booking, utils.PaginationMeta, error)
	GetBooking(ctx context.Context, actor entities.Actor, id uuid.UUID) (*entities.Booking, error)
	UpdateStatus(ctx context.Context, actor entities.Actor, id uuid.UUID, input *entities.UpdateBookingStatusInput) (*entities.Booking, error)
}

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingUsecase BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingUsecase BookingService) *BookingHandler {
	return &BookingHandler{bookingUsecase: bookingUsecase}
}

// CreateBooking creates a pending booking
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var input entities.CreateBookingInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(c.Request.Context(), actor, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": booking})
}

// ListBookings lists bookings visible to the caller
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	bookings, meta, err := h.bookingUsecase.ListBookings(c.Request.Context(), actor, usecases.BookingListQuery{
		UserID: c.Query("userId"),
		Role:   c.Query("role"),
		Status: c.Query("status"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bookings":   bookings,
		"pagination": meta,
	})
}

// GetBooking gets a booking by ID
// GET /api/v1/bookings/:id
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	booking, err := h.bookingUsecase.GetBooking(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}

// UpdateStatus moves a booking along its lifecycle
// PATCH /api/v1/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id", "booking")
	if !ok {
		return
	}

	var input entities.UpdateBookingStatusInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := h.bookingUsecase.UpdateStatus(c.Request.Context(), actor, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": booking})
}
