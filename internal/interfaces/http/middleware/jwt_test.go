package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/auth"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "test-issuer",
		MaxRefreshCount:        10,
	})
}

// jwtAuthenticator validates tokens with a JWTService and a set of revoked JTIs
type jwtAuthenticator struct {
	jwt     *auth.JWTService
	revoked map[string]bool
	err     error
}

func (a *jwtAuthenticator) Authenticate(_ context.Context, token string) (*auth.Claims, error) {
	if a.err != nil {
		return nil, a.err
	}
	claims, err := a.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if a.revoked[claims.ID] {
		return nil, auth.ErrTokenBlacklisted
	}
	return claims, nil
}

var ownerID = identity.Identity{ID: uuid.MustParse("7a0c4cf4-3f4c-4a53-9e5b-0c1f3d1f9a10"), Name: "Store Owner", Role: identity.RoleOwner}

func authRouter(cfg JWTMiddlewareConfig, extra ...gin.HandlerFunc) (*gin.Engine, *identity.Identity) {
	seen := &identity.Identity{}
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(cfg))
	handlers := append(extra, func(c *gin.Context) {
		if id, ok := identity.FromContext(c.Request.Context()); ok {
			*seen = id
		}
		c.Status(http.StatusOK)
	})
	router.GET("/api/v1/orders", handlers...)
	router.GET("/health", handlers...)
	return router, seen
}

func doGet(router http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(AuthHeaderKey, authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(ownerID)
	require.NoError(t, err)

	router, seen := authRouter(DefaultJWTConfig(&jwtAuthenticator{jwt: svc}))
	w := doGet(router, "/api/v1/orders", "Bearer "+pair.AccessToken)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ownerID, *seen)
}

func TestJWTAuth_AttachesCallerToLogContext(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(ownerID)
	require.NoError(t, err)

	var caller logger.Caller
	router := gin.New()
	router.Use(JWTAuthMiddlewareWithConfig(DefaultJWTConfig(&jwtAuthenticator{jwt: svc})))
	router.GET("/api/v1/me", func(c *gin.Context) {
		caller, _ = logger.GetCaller(c.Request.Context())
		assert.NotNil(t, GetJWTClaims(c))
		c.Status(http.StatusOK)
	})

	w := doGet(router, "/api/v1/me", "Bearer "+pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ownerID.ID.String(), caller.UserID)
	assert.Equal(t, "owner", caller.Role)
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(ownerID)
	require.NoError(t, err)
	accessClaims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		authn  *jwtAuthenticator
		status int
		code   string
	}{
		{"missing header", "", &jwtAuthenticator{jwt: svc}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"not bearer", "Basic abc", &jwtAuthenticator{jwt: svc}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"empty token", "Bearer ", &jwtAuthenticator{jwt: svc}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"garbage token", "Bearer not.a.jwt", &jwtAuthenticator{jwt: svc}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"refresh token as access", "Bearer " + pair.RefreshToken, &jwtAuthenticator{jwt: svc}, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"revoked", "Bearer " + pair.AccessToken, &jwtAuthenticator{jwt: svc, revoked: map[string]bool{accessClaims.ID: true}}, http.StatusUnauthorized, "TOKEN_REVOKED"},
		{"expired", "Bearer x", &jwtAuthenticator{err: auth.ErrExpiredToken}, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"store down", "Bearer x", &jwtAuthenticator{err: errors.New("redis: connection refused")}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := authRouter(DefaultJWTConfig(tt.authn))
			w := doGet(router, "/api/v1/orders", tt.header)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
			assert.NotContains(t, w.Body.String(), "redis")
		})
	}
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	router, _ := authRouter(DefaultJWTConfig(&jwtAuthenticator{err: errors.New("must not be called")}))
	w := doGet(router, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_DevIdentity(t *testing.T) {
	dev, err := DevIdentityFrom(config.AuthConfig{
		DevStubEnabled: true,
		DevStubID:      ownerID.ID.String(),
		DevStubName:    "Store Owner",
		DevStubRole:    "owner",
	})
	require.NoError(t, err)
	require.NotNil(t, dev)

	cfg := DefaultJWTConfig(&jwtAuthenticator{jwt: newTestJWTService()})
	cfg.DevIdentity = dev
	router, seen := authRouter(cfg)

	w := doGet(router, "/api/v1/orders", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ownerID, *seen)

	// a presented token is still validated
	w = doGet(router, "/api/v1/orders", "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDevIdentityFrom(t *testing.T) {
	id, err := DevIdentityFrom(config.AuthConfig{})
	assert.NoError(t, err)
	assert.Nil(t, id)

	_, err = DevIdentityFrom(config.AuthConfig{DevStubEnabled: true, DevStubID: "nope", DevStubRole: "owner"})
	assert.Error(t, err)

	_, err = DevIdentityFrom(config.AuthConfig{DevStubEnabled: true, DevStubID: uuid.NewString(), DevStubRole: "admin"})
	assert.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	svc := newTestJWTService()
	customer := identity.Identity{ID: uuid.New(), Name: "Asha", Role: identity.RoleCustomer}
	customerPair, err := svc.GenerateTokenPair(customer)
	require.NoError(t, err)
	ownerPair, err := svc.GenerateTokenPair(ownerID)
	require.NoError(t, err)

	router, _ := authRouter(DefaultJWTConfig(&jwtAuthenticator{jwt: svc}), OwnerOnly())

	w := doGet(router, "/api/v1/orders", "Bearer "+customerPair.AccessToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")

	w = doGet(router, "/api/v1/orders", "Bearer "+ownerPair.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)

	// role gate without the auth middleware in front
	bare := gin.New()
	bare.GET("/x", RequireRole(identity.RoleCustomer), func(c *gin.Context) { c.Status(http.StatusOK) })
	w = doGet(bare, "/x", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
