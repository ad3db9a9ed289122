package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/stretchr/testify/assert"
)

const (
	testStudentID        = "3f1b6a0e-7c5d-4b2a-9e8f-1d4c6b2a7e50"
	testMissingStudentID = "9c2e4d6a-1f3b-4a5c-8d7e-0b9a8c7d6e5f"
)

func TestStudentHandler_ListStudents_Success(t *testing.T) {
	students := []*models.Student{
		newHandlerTestStudent("student1"),
		newHandlerTestStudent("student2"),
	}

	var gotFilter repositories.StudentFilter
	mockService := &MockModerationService{
		ListStudentsFunc: func(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, int64, error) {
			gotFilter = filter
			return students, 2, nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "GET", "/students?filter=pending&search=test", nil)
	w := httptest.NewRecorder()
	handler.ListStudents(w, req)

	var resp ListStudentsResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Len(t, resp.Students, 2)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, models.BucketPending, gotFilter.Bucket)
	assert.Equal(t, "test", gotFilter.Search)
}

func TestStudentHandler_ListStudents_InvalidFilter(t *testing.T) {
	handler := NewStudentHandler(&MockModerationService{})

	req := NewTestRequest(t, "GET", "/students?filter=bogus", nil)
	w := httptest.NewRecorder()
	handler.ListStudents(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestStudentHandler_ListStudents_InvalidLimit(t *testing.T) {
	handler := NewStudentHandler(&MockModerationService{})

	req := NewTestRequest(t, "GET", "/students?limit=9999", nil)
	w := httptest.NewRecorder()
	handler.ListStudents(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestStudentHandler_GetStudent_Success(t *testing.T) {
	mockService := &MockModerationService{
		GetStudentFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return newHandlerTestStudent(id), nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "GET", "/students/"+testStudentID, nil)
	req = WithChiRouteContext(req, map[string]string{"id": testStudentID})
	w := httptest.NewRecorder()
	handler.GetStudent(w, req)

	var resp StudentResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.Equal(t, testStudentID, resp.ID)
	assert.Equal(t, "student@example.com", resp.Email)
}

func TestStudentHandler_GetStudent_NotFound(t *testing.T) {
	mockService := &MockModerationService{
		GetStudentFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "GET", "/students/"+testMissingStudentID, nil)
	req = WithChiRouteContext(req, map[string]string{"id": testMissingStudentID})
	w := httptest.NewRecorder()
	handler.GetStudent(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestStudentHandler_GetStudent_MalformedID(t *testing.T) {
	mockService := &MockModerationService{
		GetStudentFunc: func(ctx context.Context, id string) (*models.Student, error) {
			t.Fatal("service should not be called for a malformed ID")
			return nil, nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "GET", "/students/not-a-uuid", nil)
	req = WithChiRouteContext(req, map[string]string{"id": "not-a-uuid"})
	w := httptest.NewRecorder()
	handler.GetStudent(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestStudentHandler_ToggleBan_MalformedID(t *testing.T) {
	mockService := &MockModerationService{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			t.Fatal("service should not be called for a malformed ID")
			return nil, nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/123/block", nil)
	req = WithChiRouteContext(req, map[string]string{"id": "123"})
	w := httptest.NewRecorder()
	handler.ToggleBan(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestStudentHandler_ApproveMod_Success(t *testing.T) {
	mockService := &MockModerationService{
		ApproveModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := newHandlerTestStudent(id)
			student.IsMod = true
			return student, nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/"+testStudentID+"/mod", nil)
	req = WithChiRouteContext(req, map[string]string{"id": testStudentID})
	w := httptest.NewRecorder()
	handler.ApproveMod(w, req)

	var resp StudentResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.True(t, resp.IsMod)
	assert.False(t, resp.HasRequestedMod)
}

func TestStudentHandler_RejectMod_NoPendingRequest(t *testing.T) {
	mockService := &MockModerationService{
		RejectModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNoPendingRequest
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/"+testStudentID+"/reject-mod", nil)
	req = WithChiRouteContext(req, map[string]string{"id": testStudentID})
	w := httptest.NewRecorder()
	handler.RejectMod(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "invalid_state")
}

func TestStudentHandler_RevokeMod_Success(t *testing.T) {
	mockService := &MockModerationService{
		RevokeModFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return newHandlerTestStudent(id), nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/"+testStudentID+"/revoke-mod", nil)
	req = WithChiRouteContext(req, map[string]string{"id": testStudentID})
	w := httptest.NewRecorder()
	handler.RevokeMod(w, req)

	var resp StudentResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.False(t, resp.IsMod)
}

func TestStudentHandler_ToggleBan_Success(t *testing.T) {
	mockService := &MockModerationService{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			student := newHandlerTestStudent(id)
			student.IsBanned = true
			return student, nil
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/"+testStudentID+"/block", nil)
	req = WithChiRouteContext(req, map[string]string{"id": testStudentID})
	w := httptest.NewRecorder()
	handler.ToggleBan(w, req)

	var resp StudentResponse
	AssertJSONResponse(t, w, http.StatusOK, &resp)
	assert.True(t, resp.IsBanned)
}

func TestStudentHandler_ToggleBan_NotFound(t *testing.T) {
	mockService := &MockModerationService{
		ToggleBanFunc: func(ctx context.Context, id string) (*models.Student, error) {
			return nil, models.ErrNotFound
		},
	}
	handler := NewStudentHandler(mockService)

	req := NewTestRequest(t, "PATCH", "/students/"+testMissingStudentID+"/block", nil)
	req = WithChiRouteContext(req, map[string]string{"id": testMissingStudentID})
	w := httptest.NewRecorder()
	handler.ToggleBan(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}
