package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	api "fleetride-backend/internal/api/http"
	"fleetride-backend/internal/config"
	"fleetride-backend/internal/directory"
	"fleetride-backend/internal/geo"
	"fleetride-backend/internal/logger"
	"fleetride-backend/internal/pricing"
	"fleetride-backend/internal/repository/postgres"
	"fleetride-backend/internal/security"
	"fleetride-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Fleetride Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// External collaborators
	collaboratorTimeout := time.Duration(cfg.Collaborators.TimeoutSeconds) * time.Second
	distanceClient := geo.NewClient(cfg.Collaborators.DistanceEstimatorURL, collaboratorTimeout)
	userDirectory := directory.NewClient(cfg.Collaborators.UserDirectoryURL, collaboratorTimeout)

	// Fee Engine
	pricer := pricing.NewEngine(store.FeeScheduleRepository, distanceClient, pricing.Config{
		FreeDeliveryRadiusKm:     cfg.Pricing.FreeDeliveryRadiusKm,
		DeliveryRatePerKmCents:   cfg.Pricing.DeliveryRatePerKmCents,
		GraceMinutes:             cfg.Pricing.GraceMinutes,
		OvertimeRatePerHourCents: cfg.Pricing.OvertimeRatePerHourCents,
		DamageFeeCents:           cfg.Pricing.DamageFeeCents,
		CleaningFeeCents:         cfg.Pricing.CleaningFeeCents,
	})

	// Initialize Services
	emailService := service.NewEmailService(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromEmail, cfg.Sendgrid.FromName)
	bookingService := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.InspectionRepository,
		store.TripRepository,
		store.NotificationRepository,
		store,
		pricer,
		userDirectory,
		emailService,
	)
	assignmentService := service.NewAssignmentService(
		store.BookingRepository,
		store.PersonnelRepository,
		store.TripRepository,
		store,
		cfg.Assignment.MaxConcurrentPerPerson,
	)
	inspectionService := service.NewInspectionService(store.BookingRepository, store.InspectionRepository)
	tripService := service.NewTripService(store.BookingRepository, store.TripRepository, store)
	notificationService := service.NewNotificationService(store.NotificationRepository)

	// Initialize HTTP surface
	router := api.NewRouter(
		tokenManager,
		api.NewBookingHandler(bookingService, inspectionService),
		api.NewAssignmentHandler(assignmentService),
		api.NewTripHandler(tripService),
		api.NewNotificationHandler(notificationService),
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		log.Fatalf("Server failed: %v", err)
	}
}
