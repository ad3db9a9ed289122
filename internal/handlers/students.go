package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	pkghttp "github.com/campusconnect/admin-api/pkg/http"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ModerationServiceInterface defines the interface for student moderation logic
type ModerationServiceInterface interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, filter repositories.StudentFilter, limit, offset int) ([]*models.Student, int64, error)
	ApproveMod(ctx context.Context, id string) (*models.Student, error)
	RejectMod(ctx context.Context, id string) (*models.Student, error)
	RevokeMod(ctx context.Context, id string) (*models.Student, error)
	ToggleBan(ctx context.Context, id string) (*models.Student, error)
}

// StudentHandler handles student moderation HTTP requests
type StudentHandler struct {
	service ModerationServiceInterface
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(service ModerationServiceInterface) *StudentHandler {
	return &StudentHandler{
		service: service,
	}
}

// StudentResponse represents a student in the HTTP response
type StudentResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	University       string `json:"university"`
	ProfilePhoto     string `json:"profile_photo,omitempty"`
	RollNumber       string `json:"roll_number"`
	Session          string `json:"session"`
	Bio              string `json:"bio,omitempty"`
	IsBanned         bool   `json:"is_banned"`
	IsMod            bool   `json:"is_mod"`
	HasRequestedMod  bool   `json:"has_requested_mod"`
	MotivationForMod string `json:"motivation_for_mod,omitempty"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// ListStudentsResponse represents a page of students
type ListStudentsResponse struct {
	Students []*StudentResponse `json:"students"`
	Total    int64              `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

// studentModelToResponse converts a student model to a response DTO
func studentModelToResponse(student *models.Student) *StudentResponse {
	return &StudentResponse{
		ID:               student.ID,
		Name:             student.Name,
		Email:            student.Email,
		University:       student.University,
		ProfilePhoto:     student.ProfilePhoto,
		RollNumber:       student.RollNumber,
		Session:          student.Session,
		Bio:              student.Bio,
		IsBanned:         student.IsBanned,
		IsMod:            student.IsMod,
		HasRequestedMod:  student.HasRequestedMod,
		MotivationForMod: student.MotivationForMod,
		CreatedAt:        student.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:        student.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterRoutes registers all student routes with the chi router
func (h *StudentHandler) RegisterRoutes(router chi.Router) {
	router.Route("/students", func(r chi.Router) {
		r.Get("/", h.ListStudents)                  // GET /students
		r.Get("/{id}", h.GetStudent)                // GET /students/{id}
		r.Patch("/{id}/mod", h.ApproveMod)          // PATCH /students/{id}/mod
		r.Patch("/{id}/reject-mod", h.RejectMod)    // PATCH /students/{id}/reject-mod
		r.Patch("/{id}/revoke-mod", h.RevokeMod)    // PATCH /students/{id}/revoke-mod
		r.Patch("/{id}/block", h.ToggleBan)         // PATCH /students/{id}/block
	})
}

// ListStudents retrieves students filtered by moderation bucket and search term
func (h *StudentHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if _, err := parseIntParam(l, &limit, 1, 100); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if _, err := parseIntParam(o, &offset, 0, 100000); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid offset parameter")
			return
		}
	}

	filter := repositories.StudentFilter{
		Bucket: models.BucketAll,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	if f := r.URL.Query().Get("filter"); f != "" {
		if !models.ValidBucket(f) {
			pkghttp.WriteBadRequest(w, "Invalid filter parameter")
			return
		}
		filter.Bucket = models.ModerationBucket(f)
	}

	students, total, err := h.service.ListStudents(r.Context(), filter, limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := &ListStudentsResponse{
		Students: make([]*StudentResponse, len(students)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for i, student := range students {
		response.Students[i] = studentModelToResponse(student)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetStudent retrieves a student by ID
func (h *StudentHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.studentIDParam(w, r)
	if !ok {
		return
	}

	student, err := h.service.GetStudent(r.Context(), studentID)
	if err != nil {
		h.writeStudentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(studentModelToResponse(student))
}

// ApproveMod grants moderator status to a student
func (h *StudentHandler) ApproveMod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ApproveMod)
}

// RejectMod rejects a pending moderator request
func (h *StudentHandler) RejectMod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.RejectMod)
}

// RevokeMod removes moderator status from a student
func (h *StudentHandler) RevokeMod(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.RevokeMod)
}

// ToggleBan flips a student's ban status
func (h *StudentHandler) ToggleBan(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ToggleBan)
}

// transition runs a single-student state change and writes the updated student
func (h *StudentHandler) transition(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (*models.Student, error)) {
	studentID, ok := h.studentIDParam(w, r)
	if !ok {
		return
	}

	student, err := op(r.Context(), studentID)
	if err != nil {
		h.writeStudentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(studentModelToResponse(student))
}

// studentIDParam extracts and validates the student ID path parameter.
// Student IDs are UUIDs; rejecting malformed input here keeps encoding
// errors out of the database layer.
func (h *StudentHandler) studentIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	studentID := chi.URLParam(r, "id")
	if studentID == "" {
		pkghttp.WriteBadRequest(w, "Student ID is required")
		return "", false
	}
	if _, err := uuid.Parse(studentID); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid student ID")
		return "", false
	}
	return studentID, true
}

func (h *StudentHandler) writeStudentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "Student not found")
	case errors.Is(err, models.ErrNoPendingRequest):
		pkghttp.WriteInvalidState(w, "Student has no pending moderator request")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}

// parseIntParam parses and validates an integer parameter
func parseIntParam(value string, dest *int, min, max int) (int, error) {
	n := 0
	if err := json.Unmarshal([]byte(value), &n); err != nil {
		return 0, err
	}

	if n < min || n > max {
		return 0, errors.New("parameter out of range")
	}

	*dest = n
	return n, nil
}
