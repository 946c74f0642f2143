package handler

import (
	"context"
	"errors"
	"io"

	appidentity "github.com/Charan2012-gif/Shopping-App/internal/application/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthService is the part of the identity service the auth endpoints use
type AuthService interface {
	Login(ctx context.Context, req appidentity.LoginRequest) (*appidentity.TokenResponse, error)
	Refresh(ctx context.Context, req appidentity.RefreshRequest) (*appidentity.TokenResponse, error)
	Logout(ctx context.Context, input appidentity.LogoutInput) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for an access and refresh token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=appidentity.TokenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Issue a new token pair from a refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body appidentity.RefreshRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=appidentity.TokenResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req appidentity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the presented access token, or every session of the caller
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} dto.Response{data=LogoutResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication token required")
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BindError(c, err)
		return
	}

	caller, err := claims.Identity()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	err = h.authService.Logout(c.Request.Context(), appidentity.LogoutInput{
		UserID:      caller.ID,
		TokenJTI:    claims.ID,
		TokenExpiry: claims.GetRemainingTTL(),
		AllSessions: req.AllSessions,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current caller
// @Description  Identity attached to this request
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=CurrentUserResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller, ok := middleware.GetIdentity(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}
	h.Success(c, CurrentUserResponse{
		ID:   caller.ID,
		Name: caller.Name,
		Role: caller.Role.String(),
	})
}
