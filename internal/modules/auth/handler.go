package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalhub/internal/domain"
	"rentalhub/internal/pkg/logger"
	"rentalhub/internal/pkg/response"
	"rentalhub/internal/pkg/session"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service      *Service
	cookieSecure bool
}

func NewHandler(service *Service, cookieSecure bool) *Handler {
	return &Handler{service: service, cookieSecure: cookieSecure}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/signup/:role", h.Signup)
	r.POST("/login/:role", h.Login)
	r.POST("/logout", h.Logout)
}

// Signup handles POST /signup/host and /signup/guest
func (h *Handler) Signup(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Unknown role")
		return
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	cred, err := h.service.Signup(c.Request.Context(), role, req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusBadRequest, "Email already exists")
			return
		}
		logger.WithContext(c.Request.Context()).Error("signup failed", "role", role, "error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	body := gin.H{"id": cred.ID}
	body[string(role)+"_id"] = cred.ID
	response.JSON(c, http.StatusCreated, body)
}

// Login handles POST /login/host and /login/guest
func (h *Handler) Login(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Unknown role")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.service.Login(c.Request.Context(), role, req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		logger.WithContext(c.Request.Context()).Error("login failed", "role", role, "error", err)
		response.Error(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.setSessionCookie(c, res.Token, int(h.service.sessions.TTL().Seconds()))

	msg := "Guest login successful"
	if role == domain.RoleHost {
		msg = "Host login successful"
	}
	extra := gin.H{
		"id":         res.UserID,
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
	}
	extra[string(role)+"_id"] = res.UserID
	response.MessageWith(c, http.StatusOK, msg, extra)
}

// Logout handles POST /logout. It always succeeds.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), session.TokenFromRequest(c.Request)); err != nil {
		logger.WithContext(c.Request.Context()).Warn("failed to revoke session", "error", err)
	}
	h.setSessionCookie(c, "", -1)
	response.Message(c, http.StatusOK, "Logout successful")
}

func (h *Handler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", h.cookieSecure, true)
}
