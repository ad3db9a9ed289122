package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campusconnect/admin-api/internal/models"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/campusconnect/admin-api/internal/services"
	pkghttp "github.com/campusconnect/admin-api/pkg/http"
	"github.com/go-chi/chi/v5"
)

// UniversityServiceInterface defines the interface for university registry logic
type UniversityServiceInterface interface {
	CreateUniversity(ctx context.Context, university *models.University, approved bool) (*models.University, error)
	GetUniversity(ctx context.Context, regNumber string) (*models.University, error)
	ListUniversities(ctx context.Context, filter repositories.UniversityFilter, limit, offset int) ([]*models.University, int64, error)
	ListRequests(ctx context.Context, limit, offset int) ([]*models.University, int64, error)
	UpdateUniversity(ctx context.Context, regNumber string, update *services.UniversityUpdate) (*models.University, error)
	DeleteUniversity(ctx context.Context, regNumber string) error
	DecideRequest(ctx context.Context, regNumber string, status models.UniversityStatus) (*models.University, error)
	ToggleBlock(ctx context.Context, regNumber string) (*models.University, error)
}

// UniversityHandler handles university registry HTTP requests
type UniversityHandler struct {
	service UniversityServiceInterface
}

// NewUniversityHandler creates a new UniversityHandler
func NewUniversityHandler(service UniversityServiceInterface) *UniversityHandler {
	return &UniversityHandler{
		service: service,
	}
}

// CreateUniversityRequest represents the request body for registering a university
type CreateUniversityRequest struct {
	RegNumber     string `json:"reg_number" validate:"required,min=1,max=100"`
	Name          string `json:"name" validate:"required,min=1,max=255"`
	Logo          string `json:"logo" validate:"omitempty,url"`
	CoverImage    string `json:"cover_image" validate:"omitempty,url"`
	Location      string `json:"location" validate:"omitempty,max=255"`
	Bio           string `json:"bio" validate:"omitempty,max=2000"`
	Website       string `json:"website" validate:"omitempty,url"`
	Estd          int    `json:"estd" validate:"omitempty,gte=1000,lte=2100"`
	Email         string `json:"email" validate:"omitempty,email"`
	Type          string `json:"type" validate:"omitempty,oneof=public private"`
	TotalStudents int    `json:"total_students" validate:"omitempty,gte=0"`
	RequestedBy   string `json:"requested_by" validate:"omitempty,email"`
	Status        string `json:"status" validate:"omitempty,oneof=pending approved"`
}

// UpdateUniversityRequest represents the request body for updating a university.
// Absent fields are left unchanged.
type UpdateUniversityRequest struct {
	RegNumber     *string `json:"reg_number" validate:"omitempty,min=1,max=100"`
	Name          *string `json:"name" validate:"omitempty,min=1,max=255"`
	Logo          *string `json:"logo" validate:"omitempty,url"`
	CoverImage    *string `json:"cover_image" validate:"omitempty,url"`
	Location      *string `json:"location" validate:"omitempty,max=255"`
	Bio           *string `json:"bio" validate:"omitempty,max=2000"`
	Website       *string `json:"website" validate:"omitempty,url"`
	Estd          *int    `json:"estd" validate:"omitempty,gte=1000,lte=2100"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Type          *string `json:"type" validate:"omitempty,oneof=public private"`
	TotalStudents *int    `json:"total_students" validate:"omitempty,gte=0"`
}

// DecideRequestRequest represents the request body for deciding a registration request
type DecideRequestRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// UniversityResponse represents a university in the HTTP response
type UniversityResponse struct {
	ID            string `json:"id"`
	RegNumber     string `json:"reg_number"`
	Name          string `json:"name"`
	Logo          string `json:"logo,omitempty"`
	CoverImage    string `json:"cover_image,omitempty"`
	Location      string `json:"location,omitempty"`
	Bio           string `json:"bio,omitempty"`
	Website       string `json:"website,omitempty"`
	Estd          int    `json:"estd,omitempty"`
	Email         string `json:"email,omitempty"`
	Type          string `json:"type,omitempty"`
	TotalStudents int    `json:"total_students"`
	RequestedBy   string `json:"requested_by,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ListUniversitiesResponse represents a page of universities
type ListUniversitiesResponse struct {
	Universities []*UniversityResponse `json:"universities"`
	Total        int64                 `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// universityModelToResponse converts a university model to a response DTO
func universityModelToResponse(university *models.University) *UniversityResponse {
	return &UniversityResponse{
		ID:            university.ID,
		RegNumber:     university.RegNumber,
		Name:          university.Name,
		Logo:          university.Logo,
		CoverImage:    university.CoverImage,
		Location:      university.Location,
		Bio:           university.Bio,
		Website:       university.Website,
		Estd:          university.Estd,
		Email:         university.Email,
		Type:          university.Type,
		TotalStudents: university.TotalStudents,
		RequestedBy:   university.RequestedBy,
		Status:        string(university.Status),
		CreatedAt:     university.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     university.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterRoutes registers all university routes with the chi router
func (h *UniversityHandler) RegisterRoutes(router chi.Router) {
	router.Route("/universities", func(r chi.Router) {
		r.Get("/", h.ListUniversities)                    // GET /universities
		r.Post("/", h.CreateUniversity)                   // POST /universities
		r.Get("/requests", h.ListRequests)                // GET /universities/requests
		r.Get("/{regNumber}", h.GetUniversity)            // GET /universities/{regNumber}
		r.Put("/{regNumber}", h.UpdateUniversity)         // PUT /universities/{regNumber}
		r.Delete("/{regNumber}", h.DeleteUniversity)      // DELETE /universities/{regNumber}
		r.Patch("/{regNumber}/block", h.ToggleBlock)      // PATCH /universities/{regNumber}/block
		r.Patch("/{regNumber}/status", h.DecideRequest)   // PATCH /universities/{regNumber}/status
	})
}

// ListUniversities retrieves universities filtered by status and search term
func (h *UniversityHandler) ListUniversities(w http.ResponseWriter, r *http.Request) {
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

	filter := repositories.UniversityFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		if !models.ValidUniversityStatus(s) {
			pkghttp.WriteBadRequest(w, "Invalid status parameter")
			return
		}
		filter.Status = models.UniversityStatus(s)
	}

	universities, total, err := h.service.ListUniversities(r.Context(), filter, limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	h.writeList(w, universities, total, limit, offset)
}

// ListRequests retrieves pending registration requests
func (h *UniversityHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
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

	universities, total, err := h.service.ListRequests(r.Context(), limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	h.writeList(w, universities, total, limit, offset)
}

// CreateUniversity registers a new university
func (h *UniversityHandler) CreateUniversity(w http.ResponseWriter, r *http.Request) {
	var req CreateUniversityRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	university := &models.University{
		RegNumber:     req.RegNumber,
		Name:          strings.TrimSpace(req.Name),
		Logo:          req.Logo,
		CoverImage:    req.CoverImage,
		Location:      req.Location,
		Bio:           req.Bio,
		Website:       req.Website,
		Estd:          req.Estd,
		Email:         req.Email,
		Type:          req.Type,
		TotalStudents: req.TotalStudents,
		RequestedBy:   req.RequestedBy,
	}

	// Entries created by an admin go live immediately unless explicitly
	// submitted as a pending request.
	approved := req.Status != string(models.UniStatusPending)

	created, err := h.service.CreateUniversity(r.Context(), university, approved)
	if err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(universityModelToResponse(created))
}

// GetUniversity retrieves a university by registration number
func (h *UniversityHandler) GetUniversity(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "regNumber")
	if regNumber == "" {
		pkghttp.WriteBadRequest(w, "Registration number is required")
		return
	}

	university, err := h.service.GetUniversity(r.Context(), regNumber)
	if err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(universityModelToResponse(university))
}

// UpdateUniversity applies a partial update to a university
func (h *UniversityHandler) UpdateUniversity(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "regNumber")
	if regNumber == "" {
		pkghttp.WriteBadRequest(w, "Registration number is required")
		return
	}

	var req UpdateUniversityRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	update := &services.UniversityUpdate{
		RegNumber:     req.RegNumber,
		Name:          req.Name,
		Logo:          req.Logo,
		CoverImage:    req.CoverImage,
		Location:      req.Location,
		Bio:           req.Bio,
		Website:       req.Website,
		Estd:          req.Estd,
		Email:         req.Email,
		Type:          req.Type,
		TotalStudents: req.TotalStudents,
	}

	updated, err := h.service.UpdateUniversity(r.Context(), regNumber, update)
	if err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(universityModelToResponse(updated))
}

// DeleteUniversity permanently removes a university
func (h *UniversityHandler) DeleteUniversity(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "regNumber")
	if regNumber == "" {
		pkghttp.WriteBadRequest(w, "Registration number is required")
		return
	}

	if err := h.service.DeleteUniversity(r.Context(), regNumber); err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DecideRequest approves or rejects a pending registration request
func (h *UniversityHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "regNumber")
	if regNumber == "" {
		pkghttp.WriteBadRequest(w, "Registration number is required")
		return
	}

	var req DecideRequestRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.DecideRequest(r.Context(), regNumber, models.UniversityStatus(req.Status))
	if err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(universityModelToResponse(updated))
}

// ToggleBlock swaps a university between approved and blocked
func (h *UniversityHandler) ToggleBlock(w http.ResponseWriter, r *http.Request) {
	regNumber := chi.URLParam(r, "regNumber")
	if regNumber == "" {
		pkghttp.WriteBadRequest(w, "Registration number is required")
		return
	}

	updated, err := h.service.ToggleBlock(r.Context(), regNumber)
	if err != nil {
		h.writeUniversityError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(universityModelToResponse(updated))
}

func (h *UniversityHandler) writeList(w http.ResponseWriter, universities []*models.University, total int64, limit, offset int) {
	response := &ListUniversitiesResponse{
		Universities: make([]*UniversityResponse, len(universities)),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	}
	for i, university := range universities {
		response.Universities[i] = universityModelToResponse(university)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *UniversityHandler) writeUniversityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		pkghttp.WriteNotFound(w, "University not found")
	case errors.Is(err, models.ErrEmailInUse):
		pkghttp.WriteConflict(w, "Email is already in use by another university")
	case errors.Is(err, models.ErrConflict):
		pkghttp.WriteConflict(w, "University already registered")
	case errors.Is(err, models.ErrImmutableField):
		pkghttp.WriteBadRequest(w, "Registration number cannot be changed")
	case errors.Is(err, models.ErrInvalidStatus):
		pkghttp.WriteInvalidState(w, "University status does not allow this transition")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
