package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wcac/timecards-backend/internal/timecards/auth"
	"github.com/wcac/timecards-backend/internal/timecards/events"
	"github.com/wcac/timecards-backend/internal/timecards/handler"
	"github.com/wcac/timecards-backend/internal/timecards/repository"
	"github.com/wcac/timecards-backend/internal/timecards/service"
	"github.com/wcac/timecards-backend/pkg/config"
	"github.com/wcac/timecards-backend/pkg/database"
	"github.com/wcac/timecards-backend/pkg/httputil"
	"github.com/wcac/timecards-backend/pkg/logger"
	"github.com/wcac/timecards-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("timecard-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("timecard-service", cfg.Server.Environment)
	log.Info().Msg("starting Timecard Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Connect to RabbitMQ when enabled. The service runs fine without a
	// broker; publishers are nil-safe and simply skip publishing.
	var rmq *messaging.RabbitMQ
	var timecardPublisher *events.TimecardEventPublisher
	var employeePublisher *events.EmployeeEventPublisher
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()

		timecardPublisher, err = events.NewTimecardEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create timecard event publisher")
		}
		employeePublisher, err = events.NewEmployeeEventPublisher(rmq, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create employee event publisher")
		}
	} else {
		log.Info().Msg("RabbitMQ disabled, event publishing off")
	}

	// Initialize repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	timecardRepo := repository.NewTimecardRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	employeeService := service.NewEmployeeService(employeeRepo, employeePublisher, log)
	timecardService := service.NewTimecardService(timecardRepo, employeeRepo, timecardPublisher, log)
	reportService := service.NewReportService(reportRepo, log)
	reportExporter := service.NewReportExporter(reportService, log)

	// Initialize handlers
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	timecardHandler := handler.NewTimecardHandler(timecardService, log)
	reportHandler := handler.NewReportHandler(reportService, reportExporter, log)

	verifier := auth.NewVerifier(&cfg.Auth, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":   "healthy",
			"service":  "timecard-service",
			"database": db.Health(r.Context()),
		}
		if rmq != nil {
			health["rabbitmq"] = rmq.Health()
		}
		httputil.JSON(w, http.StatusOK, health)
	})

	// API routes
	r.Group(func(r chi.Router) {
		r.Use(verifier.Middleware)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)
			r.Get("/auth/{uid}", employeeHandler.GetByAuthUID)
			r.Get("/{id}", employeeHandler.Get)
			r.Put("/{id}", employeeHandler.Update)
			r.Delete("/{id}", employeeHandler.Delete)
		})

		r.Route("/timecards", func(r chi.Router) {
			r.Get("/", timecardHandler.List)
			r.Post("/", timecardHandler.Create)
			r.Get("/employee/{id}", timecardHandler.ListByEmployee)
			r.Get("/employee/{id}/range/{start}/{end}", timecardHandler.ListByEmployeeAndRange)
			r.Get("/{id}", timecardHandler.Get)
			r.Put("/{id}", timecardHandler.Update)
			r.Delete("/{id}", timecardHandler.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/all/range/{start}/{end}", reportHandler.RangeTotalsAll)
			r.Get("/all/employee-summary", reportHandler.SummaryAll)
			r.Get("/detailed/{employeeId}", reportHandler.Detailed)
			r.Get("/employee-summary/{employeeId}", reportHandler.Summary)
			r.Get("/export", reportHandler.ExportSummary)
			r.Get("/{employeeId}", reportHandler.RangeTotals)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
