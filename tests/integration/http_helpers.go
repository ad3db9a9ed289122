package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/campusconnect/admin-api/internal/auth"
	"github.com/campusconnect/admin-api/internal/background"
	"github.com/campusconnect/admin-api/internal/config"
	"github.com/campusconnect/admin-api/internal/database"
	"github.com/campusconnect/admin-api/internal/handlers"
	middlewareCustom "github.com/campusconnect/admin-api/internal/middleware"
	"github.com/campusconnect/admin-api/internal/routes"
	"github.com/campusconnect/admin-api/internal/services"
)

// SentEmail represents a captured ban status email
type SentEmail struct {
	To     string
	Name   string
	Banned bool
}

// MockEmailService captures sent emails for test assertions
type MockEmailService struct {
	mu         sync.Mutex
	SentEmails []SentEmail
}

// SendBanStatusEmail records the email
func (m *MockEmailService) SendBanStatusEmail(ctx context.Context, email, name string, banned bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SentEmails = append(m.SentEmails, SentEmail{To: email, Name: name, Banned: banned})
	return nil
}

// GetLastEmail returns the most recent email sent
func (m *MockEmailService) GetLastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.SentEmails) == 0 {
		return nil
	}
	return &m.SentEmails[len(m.SentEmails)-1]
}

// EmailCount returns the number of captured emails
func (m *MockEmailService) EmailCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentEmails)
}

// TestServer wraps httptest.Server with database and all dependencies
type TestServer struct {
	Server       *httptest.Server
	DB           *database.DB
	EmailService *MockEmailService
	TokenManager *auth.TokenManager

	notifier       *background.Notifier
	notifierCancel context.CancelFunc
}

// NewTestServer initializes a complete HTTP server with real database + mocked email
func NewTestServer(db *database.DB) *TestServer {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret-32-characters-long-for-testing",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Server: config.ServerConfig{
			Port:           "0",
			Env:            "test",
			AllowedOrigins: []string{},
		},
		Notifier: config.NotifierConfig{
			QueueSize:    16,
			SendTimeout:  time.Second,
			DrainTimeout: 2 * time.Second,
		},
	}

	studentRepo, universityRepo, adminRepo := InitializeRepositories(db)

	mockEmail := &MockEmailService{}

	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	notifier := background.NewNotifier(
		mockEmail,
		logger,
		cfg.Notifier.QueueSize,
		cfg.Notifier.SendTimeout,
		cfg.Notifier.DrainTimeout,
	)
	notifierCtx, notifierCancel := context.WithCancel(context.Background())
	go notifier.Start(notifierCtx)

	authService := services.NewAuthService(adminRepo, tokenManager, logger)
	moderationService := services.NewModerationService(studentRepo, notifier, logger)
	universityService := services.NewUniversityService(universityRepo, logger)
	dashboardService := services.NewDashboardService(studentRepo, universityRepo, logger)

	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(moderationService)
	universityHandler := handlers.NewUniversityHandler(universityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(r, authHandler, studentHandler, universityHandler, dashboardHandler, tokenManager)

	server := httptest.NewServer(r)

	return &TestServer{
		Server:         server,
		DB:             db,
		EmailService:   mockEmail,
		TokenManager:   tokenManager,
		notifier:       notifier,
		notifierCancel: notifierCancel,
	}
}

// Close shuts down the test server and the notifier
func (ts *TestServer) Close() {
	if ts.Server != nil {
		ts.Server.Close()
	}
	if ts.notifier != nil {
		ts.notifier.Stop()
	}
	if ts.notifierCancel != nil {
		ts.notifierCancel()
	}
}

// AccessTokenFor issues a valid access token for the given admin
func (ts *TestServer) AccessTokenFor(adminID, email string) (string, error) {
	return ts.TokenManager.GenerateAccessToken(adminID, email)
}

// Request makes an HTTP request to the test server
func (ts *TestServer) Request(method, path string, body interface{}, headers map[string]string) (*http.Response, error) {
	url := ts.Server.URL + path

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return http.DefaultClient.Do(req)
}

// RequestWithAuth makes an authenticated HTTP request with access token
func (ts *TestServer) RequestWithAuth(method, path, accessToken string, body interface{}) (*http.Response, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + accessToken,
	}
	return ts.Request(method, path, body, headers)
}

// ParseJSONResponse parses JSON response body into target struct
func ParseJSONResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()
	return json.NewDecoder(resp.Body).Decode(target)
}
