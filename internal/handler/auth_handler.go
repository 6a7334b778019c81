// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"net/http"

	"visiontrain/internal/services"
	"visiontrain/internal/transport/httpdto"
	visiontrain_errors "visiontrain/pkg/errors"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles the signup and login endpoints.
type AuthHandler struct {
	service *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Signup handles user registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req httpdto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid request body"))
		return
	}

	u, err := h.service.Signup(c.Request.Context(), services.SignupInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.SignupResponse{
		ID:       u.ID,
		Username: u.Username,
	})
}

// Login handles credential verification. No token or session is issued.
func (h *AuthHandler) Login(c *gin.Context) {
	var req httpdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("Invalid request body"))
		return
	}

	u, err := h.service.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.LoginResponse{
		Message:  "Login successful",
		Username: u.Username,
	})
}

func writeError(c *gin.Context, err error) {
	// Recorded for the logging middleware; the response is written here.
	_ = c.Error(err)

	status := services.HTTPStatus(err)

	// Upstream errors keep their own detail, including transport failures
	// relayed as 500s.
	var upstream *visiontrain_errors.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(status, httpdto.NewErrorResponse(upstream.Message))
		return
	}

	detail := err.Error()
	if status == http.StatusInternalServerError {
		detail = "Internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(detail))
}
