package routes

import (
	"github.com/campusconnect/admin-api/internal/auth"
	"github.com/campusconnect/admin-api/internal/handlers"
	"github.com/campusconnect/admin-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	studentHandler *handlers.StudentHandler,
	universityHandler *handlers.UniversityHandler,
	dashboardHandler *handlers.DashboardHandler,
	tokenManager *auth.TokenManager,
) {
	// Rate limiting config for auth endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()

	// Public routes - no authentication required
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/login", authHandler.Login)
	router.With(middleware.RateLimitByIP(rateLimitConfig)).Post("/auth/refresh", authHandler.RefreshToken)

	// Protected routes - admin authentication required
	router.Group(func(r chi.Router) {
		r.Use(auth.RequireAdmin(tokenManager))

		r.Get("/auth/me", authHandler.Me)

		studentHandler.RegisterRoutes(r)
		universityHandler.RegisterRoutes(r)
		dashboardHandler.RegisterRoutes(r)
	})
}
