package services

import (
	"context"
	"errors"
	"time"

	"github.com/deniz/teamup/internal/app/models"
	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/app/repositories"
	"github.com/deniz/teamup/internal/pkg/apperrors"
	"github.com/deniz/teamup/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID int64) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo         repositories.UserRepository
	refreshTokenRepo repositories.RefreshTokenRepository
	jwtService       *auth.JWTService
	logger           zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	refreshTokenRepo repositories.RefreshTokenRepository,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		jwtService:       jwtService,
		logger:           logger,
	}
}

// Register creates a new account and signs the user in
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	s.logger.Info().Int64("userId", id).Str("email", user.Email).Msg("User registered")

	return s.issueAuthResponse(ctx, user)
}

// Login verifies credentials and issues a token pair. Wrong email and wrong
// password produce the same error.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	s.logger.Info().Int64("userId", user.ID).Msg("User logged in")

	return s.issueAuthResponse(ctx, user)
}

// RefreshToken rotates a refresh token: the presented token is consumed and
// a fresh pair is issued. Expired tokens are deleted on sight.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	stored, err := s.refreshTokenRepo.FindByToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.refreshTokenRepo.Delete(ctx, stored.Token); err != nil {
			s.logger.Error().Err(err).Msg("Failed to delete expired refresh token")
		}
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.refreshTokenRepo.Delete(ctx, stored.Token); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// Logout invalidates all of the user's refresh tokens
func (s *authServiceImpl) Logout(ctx context.Context, userID int64) error {
	if err := s.refreshTokenRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Int64("userId", userID).Msg("User logged out")
	return nil
}

func (s *authServiceImpl) issueAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token: *tokens,
		User:  *toUserResponse(user),
	}, nil
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.refreshTokenRepo.Create(ctx, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: s.jwtService.GetRefreshTokenExpiry(),
	}); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		TokenType:        "Bearer",
	}, nil
}
