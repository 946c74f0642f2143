package handler

import (
	"net/http"
	"testing"
	"time"

	appidentity "github.com/Charan2012-gif/Shopping-App/internal/application/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/auth"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/dto"
	"github.com/Charan2012-gif/Shopping-App/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authRouter(svc AuthService, claims *auth.Claims) *gin.Engine {
	h := NewAuthHandler(svc)
	r := newRouter(&customerCaller)
	if claims != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.JWTClaimsKey, claims)
			c.Next()
		})
	}
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", h.Me)
	return r
}

func customerClaims() *auth.Claims {
	return &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
		},
		UserID:    customerCaller.ID.String(),
		Name:      customerCaller.Name,
		Role:      "customer",
		TokenType: auth.TokenTypeAccess,
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(mockAuthService)
	req := appidentity.LoginRequest{Email: "asha@example.com", Password: "secret-pass"}
	svc.On("Login", mock.Anything, req).Return(&appidentity.TokenResponse{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		User:         &appidentity.UserInfo{ID: customerCaller.ID, Name: "Asha Rao", Role: "customer"},
	}, nil)

	w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/login", req)

	require.Equal(t, http.StatusOK, w.Code)
	var got appidentity.TokenResponse
	decodeData(t, w, &got)
	assert.Equal(t, "access", got.AccessToken)
	assert.Equal(t, "Bearer", got.TokenType)
	require.NotNil(t, got.User)
	assert.Equal(t, "customer", got.User.Role)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, mock.Anything).
		Return(nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password"))
	r := authRouter(svc, nil)

	w := doJSON(r, http.MethodPost, "/auth/login", map[string]string{"email": "not-an-email", "password": "x"})
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	assert.Equal(t, "email", decode(t, w).Error.Details[0].Field)

	w = doJSON(r, http.MethodPost, "/auth/login", `{"email":`)
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)

	w = doJSON(r, http.MethodPost, "/auth/login", map[string]string{"email": "a@b.co", "password": "wrong"})
	assertErrorCode(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Refresh", mock.Anything, appidentity.RefreshRequest{RefreshToken: "r1"}).
		Return(&appidentity.TokenResponse{AccessToken: "a2", RefreshToken: "r2", TokenType: "Bearer"}, nil)

	w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/refresh", map[string]string{"refresh_token": "r1"})

	var got appidentity.TokenResponse
	decodeData(t, w, &got)
	assert.Equal(t, "r2", got.RefreshToken)

	w = doJSON(authRouter(svc, nil), http.MethodPost, "/auth/refresh", map[string]string{})
	assertErrorCode(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Logout", mock.Anything, mock.MatchedBy(func(in appidentity.LogoutInput) bool {
		return in.UserID == customerCaller.ID && in.TokenJTI == "jti-1" && !in.AllSessions &&
			in.TokenExpiry > 9*time.Minute && in.TokenExpiry <= 10*time.Minute
	})).Return(nil).Once()
	svc.On("Logout", mock.Anything, mock.MatchedBy(func(in appidentity.LogoutInput) bool {
		return in.AllSessions
	})).Return(nil).Once()
	r := authRouter(svc, customerClaims())

	w := doJSON(r, http.MethodPost, "/auth/logout", nil)
	var got LogoutResponse
	decodeData(t, w, &got)
	assert.Equal(t, "Logged out successfully", got.Message)

	w = doJSON(r, http.MethodPost, "/auth/logout", map[string]bool{"all_sessions": true})
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestAuthHandler_Logout_WithoutToken(t *testing.T) {
	svc := new(mockAuthService)

	w := doJSON(authRouter(svc, nil), http.MethodPost, "/auth/logout", nil)

	assertErrorCode(t, w, http.StatusUnauthorized, dto.ErrCodeUnauthorized)
	svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestAuthHandler_Me(t *testing.T) {
	w := doJSON(authRouter(new(mockAuthService), nil), http.MethodGet, "/auth/me", nil)

	var got CurrentUserResponse
	decodeData(t, w, &got)
	assert.Equal(t, customerCaller.ID, got.ID)
	assert.Equal(t, "Asha Rao", got.Name)
	assert.Equal(t, "customer", got.Role)
}
