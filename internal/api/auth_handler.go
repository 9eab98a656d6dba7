package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haibh/airisk-dashboard-sub002/internal/auth"
	"github.com/haibh/airisk-dashboard-sub002/internal/models"
	"github.com/haibh/airisk-dashboard-sub002/internal/services"
)

// AuthHandler handles authentication operations
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new auth handler with service injection
func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and sets the auth cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	h.setAuthCookies(c, response.Token)

	c.JSON(http.StatusOK, response)
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    user,
	})
}

// RefreshToken generates a new access token from a refresh token
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	response, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setAuthCookies(c, response.Token)

	c.JSON(http.StatusOK, response)
}

// Logout clears the auth cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.SetCookie("csrf_token", "", -1, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// setAuthCookies sets the auth cookie for the dashboard along with a fresh
// CSRF token. The token is also returned in the JSON body for API clients.
func (h *AuthHandler) setAuthCookies(c *gin.Context, token string) {
	c.SetCookie("auth_token", token, 24*3600, "/", "", false, true)

	// CSRF cookie is readable by the frontend so it can echo the value in
	// the X-CSRF-Token header.
	if csrfToken, err := auth.GenerateCSRFToken(); err == nil {
		c.SetCookie("csrf_token", csrfToken, 24*3600, "/", "", false, false)
	}
}
