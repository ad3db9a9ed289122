package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campusconnect/admin-api/internal/services"
	pkghttp "github.com/campusconnect/admin-api/pkg/http"
	"github.com/go-chi/chi/v5"
)

// DashboardServiceInterface defines the interface for dashboard aggregation
type DashboardServiceInterface interface {
	GetStats(ctx context.Context) (*services.DashboardStats, error)
}

// DashboardHandler handles admin dashboard HTTP requests
type DashboardHandler struct {
	service DashboardServiceInterface
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(service DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// RegisterRoutes registers all dashboard routes with the chi router
func (h *DashboardHandler) RegisterRoutes(router chi.Router) {
	router.Get("/dashboard/stats", h.GetStats)
}

// GetStats returns platform-wide counters for the admin home screen
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
