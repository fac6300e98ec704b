package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	book := rg.Group("/properties/book")
	{
		book.POST("", h.CreateBooking)
		book.GET("", h.ListBookings)
		book.GET("/:id", h.GetBooking)
		book.DELETE("/:id", h.DeleteBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "Invalid booking dates")
		case errors.Is(err, ErrPropertyNotFound):
			response.Message(c, http.StatusNotFound, "Property not found")
		default:
			logger.WithContext(c.Request.Context()).Error("create booking failed", "error", err)
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response.JSON(c, http.StatusCreated, gin.H{"booking_id": b.ID})
}

func (h *Handler) ListBookings(c *gin.Context) {
	list, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context()).Error("list bookings failed", "error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	out := make([]BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, NewBookingResponse(b))
	}
	response.JSON(c, http.StatusOK, out)
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.notFoundOr500(c, err)
		return
	}
	response.JSON(c, http.StatusOK, NewBookingResponse(*b))
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.service.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		h.notFoundOr500(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Booking data deleted successfully")
}

func (h *Handler) notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, ErrBookingNotFound) {
		response.Message(c, http.StatusNotFound, "Booking data not found")
		return
	}
	logger.WithContext(c.Request.Context()).Error("booking request failed", "error", err)
	response.Error(c, http.StatusInternalServerError, "Internal server error")
}
