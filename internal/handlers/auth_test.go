package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	mockService := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			assert.Equal(t, "admin@example.com", email)
			return &services.AuthResponse{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				Admin:        &services.AdminResponse{ID: "admin123", Email: email},
			}, nil
		},
	}
	handler := NewAuthHandler(mockService)

	body := LoginRequest{Email: "Admin@Example.com", Password: "CorrectHorse1"}
	req := NewTestRequest(t, "POST", "/auth/login", body)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	var resp services.AuthResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "admin123", resp.Admin.ID)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockService := &MockAuthService{
		LoginFunc: func(ctx context.Context, email, password string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewAuthHandler(mockService)

	body := LoginRequest{Email: "admin@example.com", Password: "wrong"}
	req := NewTestRequest(t, "POST", "/auth/login", body)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAuthHandler_Login_MissingEmail(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})

	body := LoginRequest{Password: "CorrectHorse1"}
	req := NewTestRequest(t, "POST", "/auth/login", body)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})

	req := httptest.NewRequest("POST", "/auth/login", nil)
	w := httptest.NewRecorder()
	handler.Login(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestAuthHandler_Me_Success(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})

	req := NewTestRequest(t, "GET", "/auth/me", nil)
	req = WithAdminContext(req, "admin123", "admin@example.com")
	w := httptest.NewRecorder()
	handler.Me(w, req)

	var resp services.AdminResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "admin123", resp.ID)
	assert.Equal(t, "admin@example.com", resp.Email)
}

func TestAuthHandler_Me_NoClaims(t *testing.T) {
	handler := NewAuthHandler(&MockAuthService{})

	req := NewTestRequest(t, "GET", "/auth/me", nil)
	w := httptest.NewRecorder()
	handler.Me(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}

func TestAuthHandler_RefreshToken_Success(t *testing.T) {
	mockService := &MockAuthService{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
			return &services.AuthResponse{
				AccessToken:  "new-access-token",
				RefreshToken: "new-refresh-token",
				Admin:        &services.AdminResponse{ID: "admin123", Email: "admin@example.com"},
			}, nil
		},
	}
	handler := NewAuthHandler(mockService)

	body := RefreshTokenRequest{RefreshToken: "old-refresh-token"}
	req := NewTestRequest(t, "POST", "/auth/refresh", body)
	w := httptest.NewRecorder()
	handler.RefreshToken(w, req)

	var resp services.AuthResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, "new-access-token", resp.AccessToken)
}

func TestAuthHandler_RefreshToken_Invalid(t *testing.T) {
	mockService := &MockAuthService{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
			return nil, models.ErrUnauthorized
		},
	}
	handler := NewAuthHandler(mockService)

	body := RefreshTokenRequest{RefreshToken: "bad-token"}
	req := NewTestRequest(t, "POST", "/auth/refresh", body)
	w := httptest.NewRecorder()
	handler.RefreshToken(w, req)

	AssertErrorResponse(t, w, http.StatusUnauthorized, "unauthorized")
}
