package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(api *gin.RouterGroup) {
	api.GET("/properties", h.ListProperties)
	api.GET("/properties/:id", h.GetProperty)
}

func (h *Handler) RegisterProtectedRoutes(api *gin.RouterGroup) {
	api.POST("/properties", h.CreateProperty)
	api.PUT("/properties/:id", h.UpdateProperty)
	api.DELETE("/properties/:id", h.DeleteProperty)
}

// ListProperties handles GET /api/properties
func (h *Handler) ListProperties(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}
	if errs := validator.Validate(q); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameters", errs)
		return
	}
	query, err := q.toDomain()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	items, page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]ListItem, 0, len(items))
	for _, p := range items {
		out = append(out, NewListItem(p))
	}

	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages))
	c.Header("X-Page", strconv.Itoa(page.Number))
	response.JSON(c, http.StatusOK, out)
}

// GetProperty handles GET /api/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, NewPropertyResponse(p))
}

// CreateProperty handles POST /api/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.MessageWith(c, http.StatusCreated, "Property created successfully", gin.H{"id": p.ID})
}

// UpdateProperty handles PUT /api/properties/:id
func (h *Handler) UpdateProperty(c *gin.Context) {
	var req UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), req.Patch()); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Property updated successfully")
}

// DeleteProperty handles DELETE /api/properties/:id
func (h *Handler) DeleteProperty(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Property deleted successfully")
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrPropertyNotFound):
		response.Message(c, http.StatusNotFound, "Property not found")
	case errors.Is(err, ErrPropertyHasBookings):
		response.Error(c, http.StatusConflict, "Property has active bookings")
	case errors.Is(err, ErrEmptyPatch):
		response.Error(c, http.StatusBadRequest, "No fields to update")
	case errors.Is(err, ErrInvalidQuery):
		response.Error(c, http.StatusBadRequest, "Invalid query parameters")
	default:
		logger.WithContext(c.Request.Context()).Error("catalog request failed", "error", err, "path", c.FullPath())
		response.Error(c, http.StatusInternalServerError, "Internal server error")
	}
}
