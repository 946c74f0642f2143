// Package identity authenticates customers and owners and issues their tokens.
package identity

import (
	"context"
	"errors"

	"github.com/Charan2012-gif/Shopping-App/internal/domain/partner"
	"github.com/Charan2012-gif/Shopping-App/internal/domain/shared"
	"github.com/Charan2012-gif/Shopping-App/internal/infrastructure/auth"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Account has been deactivated")
	ErrInvalidRefresh     = shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
)

// AuthService handles authentication operations
type AuthService struct {
	customerRepo partner.CustomerRepository
	jwtService   *auth.JWTService
	blacklist    auth.TokenBlacklist
	logger       *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	customerRepo partner.CustomerRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		customerRepo: customerRepo,
		jwtService:   jwtService,
		blacklist:    blacklist,
		logger:       logger,
	}
}

// Login verifies email and password and returns a token pair carrying {id, name, role}
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	email := partner.NormalizeEmail(req.Email)

	customer, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email", zap.String("email", email))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// An account without a password cannot log in; it gets the same answer as a wrong password
	if !customer.VerifyPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("customer_id", customer.ID.String()))
		return nil, ErrInvalidCredentials
	}
	if !customer.IsActive {
		s.logger.Warn("login attempt for deactivated account", zap.String("customer_id", customer.ID.String()))
		return nil, ErrAccountInactive
	}

	pair, err := s.jwtService.GenerateTokenPair(customer.Identity())
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer logged in",
		zap.String("customer_id", customer.ID.String()),
		zap.String("role", customer.Role.String()))

	resp := toTokenResponse(pair)
	resp.User = &UserInfo{
		ID:    customer.ID,
		Name:  customer.Name,
		Email: customer.Email,
		Role:  customer.Role.String(),
	}
	return resp, nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is revoked.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*TokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	id, err := claims.Identity()
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	customer, err := s.customerRepo.FindByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidRefresh
		}
		return nil, err
	}
	if !customer.IsActive {
		return nil, ErrAccountInactive
	}

	pair, _, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrMaxRefreshExceeded) {
			return nil, shared.NewDomainError("REFRESH_LIMIT", "Please log in again")
		}
		return nil, ErrInvalidRefresh
	}

	if s.blacklist != nil {
		if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
			s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
		}
	}
	return toTokenResponse(pair), nil
}

// Logout revokes the presented access token, or every session of the user
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil {
		return nil
	}
	if input.AllSessions {
		return s.blacklist.RevokeUser(ctx, input.UserID.String(), s.jwtService.GetRefreshTokenExpiration())
	}
	if input.TokenJTI == "" {
		return nil
	}
	return s.blacklist.Revoke(ctx, input.TokenJTI, input.TokenExpiry)
}

// Authenticate validates an access token and reports whether it is still usable
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *AuthService) checkRevoked(ctx context.Context, claims *auth.Claims) error {
	if s.blacklist == nil {
		return nil
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrTokenBlacklisted
	}
	revoked, err = s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrTokenBlacklisted
	}
	return nil
}

func toTokenResponse(pair *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

