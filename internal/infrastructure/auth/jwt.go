// Package auth issues and verifies the bearer tokens carried by API callers.
package auth

import (
	"errors"
	"time"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/identity"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenType tells access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidTokenType   = errors.New("invalid token type")
	ErrInvalidClaims      = errors.New("invalid token claims")
	ErrTokenNotYetValid   = errors.New("token is not yet valid")
	ErrMissingUserID      = errors.New("missing user_id in claims")
	ErrInvalidRole        = errors.New("unknown role in claims")
	ErrMaxRefreshExceeded = errors.New("maximum refresh count exceeded")
	ErrTokenBlacklisted   = errors.New("token has been revoked")
)

// Claims is the token payload. Both token types carry the caller's name and
// role so neither needs a customer lookup.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string    `json:"user_id"`
	Name         string    `json:"name,omitempty"`
	Role         string    `json:"role"`
	TokenType    TokenType `json:"token_type"`
	RefreshCount int       `json:"refresh_count,omitempty"`
}

// Identity converts the claims into the request identity.
func (c *Claims) Identity() (identity.Identity, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return identity.Identity{}, ErrInvalidClaims
	}
	role := identity.Role(c.Role)
	if !role.IsValid() {
		return identity.Identity{}, ErrInvalidRole
	}
	return identity.Identity{ID: userID, Name: c.Name, Role: role}, nil
}

// GetIssuedAtTime is the zero time when the token has no iat claim.
func (c *Claims) GetIssuedAtTime() time.Time {
	if c.IssuedAt == nil {
		return time.Time{}
	}
	return c.IssuedAt.Time
}

// GetRemainingTTL is how long the token stays valid, never negative.
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return max(time.Until(c.ExpiresAt.Time), 0)
}

type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// signingKey is the HMAC secret and lifetime of one token type.
type signingKey struct {
	secret []byte
	ttl    time.Duration
}

// JWTService signs and verifies HS256 tokens. Refresh tokens use their own
// secret when one is configured.
type JWTService struct {
	keys            map[TokenType]signingKey
	issuer          string
	maxRefreshCount int
	now             func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := cfg.RefreshSecret
	if refreshSecret == "" {
		refreshSecret = cfg.Secret
	}
	return &JWTService{
		keys: map[TokenType]signingKey{
			TokenTypeAccess:  {secret: []byte(cfg.Secret), ttl: cfg.AccessTokenExpiration},
			TokenTypeRefresh: {secret: []byte(refreshSecret), ttl: cfg.RefreshTokenExpiration},
		},
		issuer:          cfg.Issuer,
		maxRefreshCount: cfg.MaxRefreshCount,
		now:             time.Now,
	}
}

// GenerateTokenPair signs a fresh access and refresh token for id.
func (s *JWTService) GenerateTokenPair(id identity.Identity) (*TokenPair, error) {
	return s.issue(id, 0)
}

// RefreshTokenPair trades a valid refresh token for a new pair, up to the
// configured number of refreshes.
func (s *JWTService) RefreshTokenPair(refreshToken string) (*TokenPair, *Claims, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, nil, err
	}
	if s.maxRefreshCount > 0 && claims.RefreshCount >= s.maxRefreshCount {
		return nil, nil, ErrMaxRefreshExceeded
	}
	id, err := claims.Identity()
	if err != nil {
		return nil, nil, err
	}
	pair, err := s.issue(id, claims.RefreshCount+1)
	if err != nil {
		return nil, nil, err
	}
	return pair, claims, nil
}

func (s *JWTService) ValidateAccessToken(token string) (*Claims, error) {
	return s.verify(token, TokenTypeAccess)
}

func (s *JWTService) ValidateRefreshToken(token string) (*Claims, error) {
	return s.verify(token, TokenTypeRefresh)
}

// GetRefreshTokenExpiration is the refresh token lifetime, which bounds how
// long a per-user revocation must be remembered.
func (s *JWTService) GetRefreshTokenExpiration() time.Duration {
	return s.keys[TokenTypeRefresh].ttl
}

func (s *JWTService) issue(id identity.Identity, refreshCount int) (*TokenPair, error) {
	if id.ID == uuid.Nil {
		return nil, ErrMissingUserID
	}
	if !id.Role.IsValid() {
		return nil, ErrInvalidRole
	}

	now := s.now()
	access, accessExp, err := s.sign(id, TokenTypeAccess, 0, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.sign(id, TokenTypeRefresh, refreshCount, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:           access,
		RefreshToken:          refresh,
		AccessTokenExpiresAt:  accessExp,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) sign(id identity.Identity, typ TokenType, refreshCount int, now time.Time) (string, time.Time, error) {
	key := s.keys[typ]
	expires := now.Add(key.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   id.ID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(expires),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:       id.ID.String(),
		Name:         id.Name,
		Role:         id.Role.String(),
		TokenType:    typ,
		RefreshCount: refreshCount,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key.secret)
	return signed, expires, err
}

func (s *JWTService) verify(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.keys[want].secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return nil, ErrTokenNotYetValid
	case err != nil:
		return nil, ErrInvalidToken
	case !parsed.Valid:
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != want {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}
	if !identity.Role(claims.Role).IsValid() {
		return nil, ErrInvalidRole
	}
	return claims, nil
}
