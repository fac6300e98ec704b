package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.Chat)
	rg.GET("/chat/ws", h.ServeWS)
}

// Chat handles POST /api/chat
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "user_input is required")
		return
	}

	reply := h.service.Respond(c.Request.Context(), *req.UserInput)
	response.JSON(c, http.StatusOK, ChatResponse{Response: reply})
}
