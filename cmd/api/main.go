package main

import (
	"log"

	"yardflow/internal/core/cache"
	"yardflow/internal/core/config"
	"yardflow/internal/core/locker"
	"yardflow/internal/core/logger"
	"yardflow/internal/core/metrics"
	"yardflow/internal/core/server"
	"yardflow/internal/yard/adapters"
	"yardflow/internal/yard/handler"
	"yardflow/internal/yard/service"

	"go.uber.org/zap"
)

// @title Yardflow API
// @version 1.0
// @description Yard state orchestration: gate transactions, trailer moves, door occupancy and detention.
// @contact.name API Support
// @contact.email support@yardflow.io
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Storage
	store, err := adapters.NewStore(cfg.Database.DSN())
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	l.Info("Database connection verified")

	// Cache
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis connection failed", zap.Error(err))
	}
	defer redisCache.Close()

	// Repositories
	trailerRepo := adapters.NewGormTrailerRepository(store)
	appointmentRepo := adapters.NewGormAppointmentRepository(store)
	moveRepo := adapters.NewGormMoveRequestRepository(store)
	siteRepo := adapters.NewGormSiteRepository(store)
	gateRepo := adapters.NewGormGateRepository(store)
	carrierRepo := adapters.NewGormCarrierRepository(store)
	userRepo := adapters.NewGormUserRepository(store)
	dockRepo := adapters.NewGormDockRepository(store)
	doorRepo := adapters.NewGormDoorRepository(store)
	locationRepo := adapters.NewGormYardLocationRepository(store)

	activeCache := adapters.NewRedisActiveAppointmentCache(redisCache)
	tx := adapters.NewGormTxManager(store)

	locks := locker.New()
	m := metrics.New("yardflow")

	// Services
	registry := service.NewSlotRegistry(doorRepo, locationRepo)
	appointmentSvc := service.NewAppointmentService(
		appointmentRepo, siteRepo, trailerRepo, carrierRepo, gateRepo,
		registry, activeCache, tx, locks, m,
	)
	moveSvc := service.NewMoveRequestService(
		moveRepo, trailerRepo, userRepo, appointmentRepo, tx, locks, m,
	)
	trailerSvc := service.NewTrailerService(
		trailerRepo, doorRepo, dockRepo, locationRepo, carrierRepo,
		appointmentRepo, registry, tx, locks, m,
	)
	carrierSvc := service.NewCarrierService(carrierRepo, siteRepo, trailerRepo)

	// Handlers
	appointmentHdl := handler.NewAppointmentHandler(appointmentSvc)
	moveHdl := handler.NewMoveHandler(moveSvc)
	trailerHdl := handler.NewTrailerHandler(trailerSvc)
	carrierHdl := handler.NewCarrierHandler(carrierSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/appointments/check-in", appointmentHdl.CheckIn)
	srv.App.Post("/appointments/check-out", appointmentHdl.CheckOut)
	srv.App.Post("/appointments", appointmentHdl.Schedule)
	srv.App.Get("/appointments", appointmentHdl.GetByDateRange)
	srv.App.Get("/appointments/:id", appointmentHdl.GetByID)
	srv.App.Post("/appointments/:id/start", appointmentHdl.Start)
	srv.App.Post("/appointments/:id/cancel", appointmentHdl.Cancel)

	srv.App.Post("/moves", moveHdl.Create)
	srv.App.Get("/moves", moveHdl.List)
	srv.App.Get("/moves/:id", moveHdl.GetByID)
	srv.App.Post("/moves/:id/assign", moveHdl.Assign)
	srv.App.Post("/moves/:id/start", moveHdl.Start)
	srv.App.Post("/moves/:id/complete", moveHdl.Complete)
	srv.App.Post("/moves/:id/cancel", moveHdl.Cancel)
	srv.App.Post("/moves/:id/notes", moveHdl.AddNotes)
	srv.App.Get("/spotters/:id/moves", moveHdl.GetBySpotter)

	srv.App.Get("/trailers", trailerHdl.List)
	srv.App.Get("/trailers/:id", trailerHdl.GetByID)
	srv.App.Put("/trailers/:id/process-status", trailerHdl.UpdateProcessStatus)
	srv.App.Put("/trailers/:id/door", trailerHdl.AssignDoor)
	srv.App.Put("/trailers/:id/yard-location", trailerHdl.AssignYardLocation)
	srv.App.Post("/trailers/:id/detention/refresh", trailerHdl.UpdateDetention)
	srv.App.Get("/trailers/:id/detention/charge", trailerHdl.GetDetentionCharge)
	srv.App.Get("/trailers/:id/appointments", appointmentHdl.GetByTrailer)
	srv.App.Get("/trailers/:id/moves", moveHdl.GetByTrailer)

	srv.App.Get("/sites/:siteId/appointments", appointmentHdl.GetBySite)
	srv.App.Get("/sites/:siteId/appointments/active", appointmentHdl.GetActiveBySite)
	srv.App.Get("/sites/:siteId/moves", moveHdl.GetBySite)
	srv.App.Get("/sites/:siteId/trailers", trailerHdl.GetBySite)

	srv.App.Get("/gates/:id/appointments", appointmentHdl.GetByGate)

	srv.App.Post("/carriers", carrierHdl.Create)
	srv.App.Get("/carriers", carrierHdl.List)
	srv.App.Get("/carriers/:id", carrierHdl.GetByID)
	srv.App.Put("/carriers/:id", carrierHdl.Update)
	srv.App.Put("/carriers/:id/sites", carrierHdl.UpdateSiteEligibility)
	srv.App.Delete("/carriers/:id", carrierHdl.Delete)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
