package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sereci/sirepre/internal/application/identity"
	"github.com/sereci/sirepre/internal/interfaces/http/middleware"
)

// AuthHandler handles staff authentication requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the login body
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=128"`
}

// RefreshTokenRequest is the refresh body
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
		IP:       c.ClientIP(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RefreshToken rotates a refresh token into a new pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the access token of the request.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	userID, ok := middleware.GetJWTUserID(c)
	if claims == nil || !ok {
		h.Unauthorized(c, "Autenticación requerida")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Sesión cerrada"})
}

// Me returns the authenticated staff user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetJWTUserID(c)
	if !ok {
		h.Unauthorized(c, "Autenticación requerida")
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}
