package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joshbaje/drively-backend/internal/api"
	"github.com/joshbaje/drively-backend/internal/config"
	"github.com/joshbaje/drively-backend/internal/jobs"
	"github.com/joshbaje/drively-backend/internal/logger"
	"github.com/joshbaje/drively-backend/internal/repository/postgres"
	"github.com/joshbaje/drively-backend/internal/scheduler"
	"github.com/joshbaje/drively-backend/internal/security"
	"github.com/joshbaje/drively-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	log := logger.Get()

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	log.Info("connected to database", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)

	emailSvc := service.NewEmailService(cfg.SendGrid)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		store.VehicleRepository,
		store.BlackoutRepository,
		store.UserRepository,
		emailSvc,
		cfg.Pricing,
	)
	vehicleSvc := service.NewVehicleService(store.VehicleRepository, store.BlackoutRepository)

	verifier := security.NewTokenVerifier(cfg.Auth.JWTSecret)
	router := api.NewRouter(bookingSvc, vehicleSvc, verifier)

	sched := scheduler.New(jobs.NewBookingJobs(db, cfg.Pricing), cfg.Scheduler)
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
