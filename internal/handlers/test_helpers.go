package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campusconnect/admin-api/internal/auth"
	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/campusconnect/admin-api/internal/services"
	pkghttp "github.com/campusconnect/admin-api/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAdminContext adds admin claims to request context for testing protected endpoints
func WithAdminContext(req *http.Request, adminID, email string) *http.Request {
	claims := &models.TokenClaims{
		AdminID: adminID,
		Email:   email,
		Type:    "access",
	}
	ctx := context.WithValue(req.Context(), auth.AdminContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to request context for testing
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response is a valid error response
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// MockModerationService implements ModerationServiceInterface for testing
type MockModerationService struct {
	GetStudentFunc   func(ctx context.Context, id string) (*models.Student, error)
	ListStudentsFunc func(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, int64, error)
	ApproveModFunc   func(ctx context.Context, id string) (*models.Student, error)
	RejectModFunc    func(ctx context.Context, id string) (*models.Student, error)
	RevokeModFunc    func(ctx context.Context, id string) (*models.Student, error)
	ToggleBanFunc    func(ctx context.Context, id string) (*models.Student, error)
}

func (m *MockModerationService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	if m.GetStudentFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetStudentFunc(ctx, id)
}

func (m *MockModerationService) ListStudents(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, int64, error) {
	if m.ListStudentsFunc == nil {
		return []*models.Student{}, 0, nil
	}
	return m.ListStudentsFunc(ctx, filter, limit, offset)
}

func (m *MockModerationService) ApproveMod(ctx context.Context, id string) (*models.Student, error) {
	if m.ApproveModFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ApproveModFunc(ctx, id)
}

func (m *MockModerationService) RejectMod(ctx context.Context, id string) (*models.Student, error) {
	if m.RejectModFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.RejectModFunc(ctx, id)
}

func (m *MockModerationService) RevokeMod(ctx context.Context, id string) (*models.Student, error) {
	if m.RevokeModFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.RevokeModFunc(ctx, id)
}

func (m *MockModerationService) ToggleBan(ctx context.Context, id string) (*models.Student, error) {
	if m.ToggleBanFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ToggleBanFunc(ctx, id)
}

// MockUniversityService implements UniversityServiceInterface for testing
type MockUniversityService struct {
	CreateUniversityFunc func(ctx context.Context, university *models.University, approved bool) (*models.University, error)
	GetUniversityFunc    func(ctx context.Context, regNumber string) (*models.University, error)
	ListUniversitiesFunc func(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, int64, error)
	ListRequestsFunc     func(ctx context.Context, limit, offset int) ([]*models.University, int64, error)
	UpdateUniversityFunc func(ctx context.Context, regNumber string, update *services.UniversityUpdate) (*models.University, error)
	DeleteUniversityFunc func(ctx context.Context, regNumber string) error
	DecideRequestFunc    func(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error)
	ToggleBlockFunc      func(ctx context.Context, regNumber string) (*models.University, error)
}

func (m *MockUniversityService) CreateUniversity(ctx context.Context, university *models.University, approved bool) (*models.University, error) {
	if m.CreateUniversityFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateUniversityFunc(ctx, university, approved)
}

func (m *MockUniversityService) GetUniversity(ctx context.Context, regNumber string) (*models.University, error) {
	if m.GetUniversityFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUniversityFunc(ctx, regNumber)
}

func (m *MockUniversityService) ListUniversities(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, int64, error) {
	if m.ListUniversitiesFunc == nil {
		return []*models.University{}, 0, nil
	}
	return m.ListUniversitiesFunc(ctx, filter, limit, offset)
}

func (m *MockUniversityService) ListRequests(ctx context.Context, limit, offset int) ([]*models.University, int64, error) {
	if m.ListRequestsFunc == nil {
		return []*models.University{}, 0, nil
	}
	return m.ListRequestsFunc(ctx, limit, offset)
}

func (m *MockUniversityService) UpdateUniversity(ctx context.Context, regNumber string, update *services.UniversityUpdate) (*models.University, error) {
	if m.UpdateUniversityFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateUniversityFunc(ctx, regNumber, update)
}

func (m *MockUniversityService) DeleteUniversity(ctx context.Context, regNumber string) error {
	if m.DeleteUniversityFunc == nil {
		return nil
	}
	return m.DeleteUniversityFunc(ctx, regNumber)
}

func (m *MockUniversityService) DecideRequest(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error) {
	if m.DecideRequestFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.DecideRequestFunc(ctx, regNumber, status)
}

func (m *MockUniversityService) ToggleBlock(ctx context.Context, regNumber string) (*models.University, error) {
	if m.ToggleBlockFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.ToggleBlockFunc(ctx, regNumber)
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc        func(ctx context.Context, email, password string) (*services.AuthResponse, error)
	RefreshTokenFunc func(ctx context.Context, refreshToken string) (*services.AuthResponse, error)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*services.AuthResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*services.AuthResponse, error) {
	if m.RefreshTokenFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.RefreshTokenFunc(ctx, refreshToken)
}

// MockDashboardService implements DashboardServiceInterface for testing
type MockDashboardService struct {
	GetStatsFunc func(ctx context.Context) (*services.DashboardStats, error)
}

func (m *MockDashboardService) GetStats(ctx context.Context) (*services.DashboardStats, error) {
	if m.GetStatsFunc == nil {
		return &services.DashboardStats{}, nil
	}
	return m.GetStatsFunc(ctx)
}

// newHandlerTestStudent creates a student with fixed timestamps for handler tests
func newHandlerTestStudent(id string) *models.Student {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.Student{
		ID:         id,
		Name:       "Test Student",
		Email:      "student@example.com",
		University: "Test University",
		RollNumber: "CS-2021-001",
		Session:    "2021-2025",
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
}

// newHandlerTestUniversity creates a university with fixed timestamps for handler tests
func newHandlerTestUniversity(regNumber string, status models.UniversityStatus) *models.University {
	ts := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.University{
		ID:        "uni123",
		RegNumber: regNumber,
		Name:      "Test University",
		Location:  "Test City",
		Estd:      1985,
		Email:     "admin@testuniversity.edu",
		Type:      "public",
		Status:    status,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}
