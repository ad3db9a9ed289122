package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/campusconnect/admin-api/internal/auth"
	"github.com/campusconnect/admin-api/internal/models"
	pkgauth "github.com/campusconnect/admin-api/pkg/auth"
)

// AdminRepository defines the interface for admin data access
type AdminRepository interface {
	GetByID(ctx context.Context, id string) (*models.Admin, error)
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) (*models.Admin, error)
}

// AuthService handles admin authentication
type AuthService struct {
	repo   AdminRepository
	tm     *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo AdminRepository, tm *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tm:     tm,
		logger: logger,
	}
}

// AdminResponse represents an admin in the HTTP response
type AdminResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse represents the response from auth operations
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Admin        *AdminResponse `json:"admin"`
}

// Login authenticates an admin and returns a token pair. Every credential
// failure collapses to the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email = strings.ToLower(strings.TrimSpace(email)); email == "" {
		s.logger.Warn("login attempt with empty email")
		return nil, models.ErrUnauthorized
	}

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get admin by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(admin.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials")
		return nil, models.ErrUnauthorized
	}

	accessToken, err := s.tm.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("admin_id", admin.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	refreshToken, err := s.tm.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.String("admin_id", admin.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("admin logged in", slog.String("admin_id", admin.ID))

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Admin:        &AdminResponse{ID: admin.ID, Email: admin.Email},
	}, nil
}

// RefreshToken generates a new token pair from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenString string) (*AuthResponse, error) {
	if refreshTokenString = strings.TrimSpace(refreshTokenString); refreshTokenString == "" {
		return nil, models.ErrUnauthorized
	}

	claims, err := s.tm.ValidateToken(refreshTokenString)
	if err != nil {
		s.logger.Info("refresh token validation failed", slog.Any("error", err))
		return nil, models.ErrUnauthorized
	}

	if claims.Type != "refresh" {
		s.logger.Warn("refresh attempt with non-refresh token", slog.String("admin_id", claims.AdminID))
		return nil, models.ErrUnauthorized
	}

	admin, err := s.repo.GetByID(ctx, claims.AdminID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("admin not found for token refresh", slog.String("admin_id", claims.AdminID))
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get admin for token refresh", slog.String("admin_id", claims.AdminID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	accessToken, err := s.tm.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("admin_id", admin.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	newRefreshToken, err := s.tm.GenerateRefreshToken(admin.ID, admin.Email)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.String("admin_id", admin.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("token refreshed", slog.String("admin_id", admin.ID))

	return &AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		Admin:        &AdminResponse{ID: admin.ID, Email: admin.Email},
	}, nil
}

// EnsureAdmin creates the admin account if it does not already
// exist. Called once at startup from the bootstrap credentials.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check for existing admin", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := pkgauth.ValidatePassword(password); err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash admin password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	admin, err := s.repo.Create(ctx, &models.Admin{Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil
		}
		s.logger.Error("failed to create admin", slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("admin account created", slog.String("admin_id", admin.ID))
	return nil
}
