// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/relivo/orgportal/internal/auth"
	"github.com/relivo/orgportal/internal/config"
	"github.com/relivo/orgportal/internal/db"
	"github.com/relivo/orgportal/internal/email"
	"github.com/relivo/orgportal/internal/handler"
	"github.com/relivo/orgportal/internal/middleware"
	"github.com/relivo/orgportal/internal/otp"
	"github.com/relivo/orgportal/internal/repository"
	"github.com/relivo/orgportal/internal/service"
	"github.com/relivo/orgportal/internal/task"
)

var rootCmd = &cobra.Command{
	Use:   "orgportal",
	Short: "Organization portal API server",
	Long:  `Backend for the organization portal: registration, email verification, sessions and grant listings.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Ensure the database schema is up to date",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		gdb, err := db.Open(cfg)
		if err != nil {
			return fmt.Errorf("setting up database: %w", err)
		}

		if err := db.EnsureSchema(gdb); err != nil {
			return err
		}

		slog.Info("schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "startup error: %v\n", err)
		os.Exit(1)
	}
}

func serve() error {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{
					Key:   a.Key,
					Value: slog.StringValue(a.Value.Time().Format(time.RFC3339)),
				}
			}
			return a
		},
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	// Initialize database
	gdb, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("setting up database: %w", err)
	}

	if err := db.EnsureSchema(gdb); err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gdb)
	orgRepo := repository.NewOrganizationRepository(gdb)
	grantRepo := repository.NewGrantRepository(gdb)

	// Initialize auth services
	passwordHasher := auth.NewPasswordHasher()
	tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)

	// Initialize email service; SendGrid when a key is configured,
	// plain SMTP otherwise.
	provider := email.ProviderSMTP
	if cfg.Sendgrid.APIKey != "" {
		provider = email.ProviderSendgrid
	}
	emailService, err := email.NewEmailService(cfg, provider)
	if err != nil {
		return fmt.Errorf("initializing email service: %w", err)
	}

	// Background task queue for fire-and-forget email delivery.
	tasks := task.NewDispatcher(128, 2)
	defer tasks.Close()

	// Initialize services
	otpEngine := otp.NewEngine()
	registrationService := service.NewRegistrationService(userRepo, orgRepo, passwordHasher, otpEngine, emailService, tasks)
	sessionService := service.NewSessionService(userRepo, orgRepo, passwordHasher, tokenManager, emailService, tasks)
	grantService := service.NewGrantService(grantRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(registrationService, sessionService, cfg.JWT.ExpiryPeriod)
	grantHandler := handler.NewGrantHandler(grantService)
	healthHandler := handler.NewHealthHandler(gdb)

	requireOrg := middleware.RequireOrg(tokenManager, orgRepo)

	// Create router
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(loggingMiddleware(logger))
	r.Use(recoveryMiddleware(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check endpoint
	r.Get("/health", healthHandler.Handle)

	// Public auth routes
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.RegisterHandler)
		r.Post("/resend-otp", authHandler.ResendOTPHandler)
		r.Post("/verify", authHandler.VerifyHandler)
		r.Post("/login", authHandler.LoginHandler)
		r.Get("/logout", authHandler.LogoutHandler)
		r.Post("/forgot-password/request", authHandler.ForgotPasswordRequestHandler)
		r.Post("/forgot-password/reset", authHandler.ForgotPasswordResetHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireOrg)
			r.Post("/change-password", authHandler.ChangePasswordHandler)
		})
	})

	// Grant lifecycle routes
	r.Route("/org/grants", func(r chi.Router) {
		r.Use(requireOrg)
		r.Post("/create", grantHandler.CreateHandler)
		r.Post("/{id}/edit", grantHandler.EditHandler)
		r.Post("/{id}/delete", grantHandler.DeleteHandler)
		r.Post("/{id}/permanent-delete", grantHandler.PermanentDeleteHandler)
		r.Post("/{id}/restore", grantHandler.RestoreHandler)
	})

	// Read views
	r.Route("/api", func(r chi.Router) {
		r.Use(requireOrg)
		r.Get("/dashboard_data", grantHandler.DashboardHandler)
		r.Get("/grants/{id}", grantHandler.GetHandler)
	})

	// Create server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	// Start server
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Shutdown channel
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt)

	// Wait for shutdown or error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Gracefully shutdown the server
		if err := srv.Shutdown(ctx); err != nil {
			// If shutdown times out, forcefully close
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("request completed",
					"method", r.Method,
					"path", r.URL.Path,
					"duration", time.Since(start),
					"status", ww.Status(),
					"size", ww.BytesWritten(),
					"requestID", chimw.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func recoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					err := errors.New("panic recovered")
					logger.Error("panic recovered",
						"error", err,
						"panic", rvr,
						"stack", string(debug.Stack()),
						"requestID", chimw.GetReqID(r.Context()),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"detail":"Internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
