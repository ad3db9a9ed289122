package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusconnect/admin-api/internal/auth"
	"github.com/campusconnect/admin-api/internal/background"
	"github.com/campusconnect/admin-api/internal/config"
	"github.com/campusconnect/admin-api/internal/database"
	"github.com/campusconnect/admin-api/internal/handlers"
	middlewareCustom "github.com/campusconnect/admin-api/internal/middleware"
	"github.com/campusconnect/admin-api/internal/repositories"
	"github.com/campusconnect/admin-api/internal/routes"
	"github.com/campusconnect/admin-api/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Run schema migrations before opening the pool
	if err := database.Migrate(&cfg.Database, logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Initialize repositories
	studentRepo := repositories.NewStudentRepository(db)
	universityRepo := repositories.NewUniversityRepository(db)
	adminRepo := repositories.NewAdminRepository(db)

	// Initialize token manager
	tokenManager := auth.NewTokenManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenExpiry,
		cfg.Auth.RefreshTokenExpiry,
	)

	// AWS SES email service
	emailService, err := services.NewAWSSESEmailService(
		cfg.Email.AWSRegion,
		cfg.Email.FromAddress,
		cfg.Email.SupportEmail,
		cfg.Email.AppURL,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize email service", slog.Any("error", err))
		os.Exit(1)
	}

	// Ban status notifications run off the request path
	notifier := background.NewNotifier(
		emailService,
		logger,
		cfg.Notifier.QueueSize,
		cfg.Notifier.SendTimeout,
		cfg.Notifier.DrainTimeout,
	)

	// Initialize services
	authService := services.NewAuthService(adminRepo, tokenManager, logger)
	moderationService := services.NewModerationService(studentRepo, notifier, logger)
	universityService := services.NewUniversityService(universityRepo, logger)
	dashboardService := services.NewDashboardService(studentRepo, universityRepo, logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	studentHandler := handlers.NewStudentHandler(moderationService)
	universityHandler := handlers.NewUniversityHandler(universityService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Bootstrap the admin account if configured
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(ctx, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logger.Error("failed to ensure admin account", slog.Any("error", err))
	}
	cancel()

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.AllowedOrigins)

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, authHandler, studentHandler, universityHandler, dashboardHandler, tokenManager)

	// Health check with database
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		stats := db.Stats()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","database":"up","pool":{"total_conns":%d,"idle_conns":%d,"acquired_conns":%d}}`,
			stats.TotalConns(), stats.IdleConns(), stats.AcquiredConns())
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the notifier
	notifierCtx, notifierCancel := context.WithCancel(context.Background())
	defer notifierCancel()

	go notifier.Start(notifierCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	// Drain queued notifications after in-flight requests finish
	notifier.Stop()

	logger.Info("server stopped gracefully")
}
