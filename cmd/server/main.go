// Command server runs the graduation certificate request gateway.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wathiq/internal/appointments"
	"wathiq/internal/certificate"
	"wathiq/internal/identity/ocr"
	"wathiq/internal/intake"
	intakeMetrics "wathiq/internal/intake/metrics"
	"wathiq/internal/platform/config"
	"wathiq/internal/platform/database"
	"wathiq/internal/platform/httpserver"
	"wathiq/internal/platform/logger"
	platformRedis "wathiq/internal/platform/redis"
	"wathiq/internal/roster"
	rosterMetrics "wathiq/internal/roster/metrics"
	"wathiq/internal/staff"
	"wathiq/internal/storage"
	httptransport "wathiq/internal/transport/http"
	"wathiq/pkg/platform/audit"
	"wathiq/pkg/platform/audit/publisher"
	auditKafka "wathiq/pkg/platform/audit/store/kafka"
	auditMemory "wathiq/pkg/platform/audit/store/memory"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := platformRedis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var auditStore audit.Store
	if len(cfg.Audit.Brokers) > 0 {
		kafkaStore, err := auditKafka.New(ctx, cfg.Audit.Brokers, cfg.Audit.Topic)
		if err != nil {
			log.Error("kafka connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
	} else {
		log.Warn("no audit brokers configured, audit trail is in-memory only")
		auditStore = auditMemory.NewInMemoryStore()
	}
	auditPub := publisher.NewPublisher(auditStore,
		publisher.WithLogger(log),
		publisher.WithAsyncBuffer(256))
	defer auditPub.Close()

	artifacts, err := storage.NewFileStore(cfg.Artifacts.Root, storage.WithLogger(log))
	if err != nil {
		log.Error("artifact store init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rosterOpts := []roster.Option{
		roster.WithLogger(log),
		roster.WithMetrics(rosterMetrics.New()),
	}
	if redisClient != nil {
		rosterOpts = append(rosterOpts,
			roster.WithSnapshotCache(roster.NewSnapshotCache(redisClient.Client, cfg.Roster.CacheTTL)))
	}
	rosterService := roster.New(
		roster.NewPostgresStore(pool),
		cfg.Roster.MatchThreshold,
		cfg.Roster.CacheTTL,
		rosterOpts...)

	allocator := appointments.New(
		appointments.NewPostgresLedger(pool),
		appointments.DefaultCatalog(),
		cfg.Appointments.MaxPerSlot,
		cfg.Appointments.MaxPerDay,
		cfg.Appointments.HorizonDays,
		appointments.WithLogger(log))

	renderer := certificate.NewDocxRenderer(cfg.Templates.MalePath, cfg.Templates.FemalePath)

	intakeService := intake.New(
		ocr.New(cfg.OCR),
		rosterService,
		allocator,
		renderer,
		artifacts,
		intake.WithLogger(log),
		intake.WithMetrics(intakeMetrics.New()),
		intake.WithAuditPublisher(auditPub))

	staffTokens := staff.NewTokenService(cfg.Staff.JWTSigningKey, cfg.Staff.TokenTTL)
	staffService := staff.NewService(cfg.Staff.PasswordHash, staffTokens,
		staff.WithLogger(log),
		staff.WithAuditPublisher(auditPub))

	router := httptransport.NewRouter(httptransport.Deps{
		Intake: intake.NewHandler(intakeService, log),
		Staff:  staff.NewHandler(staffService, staffTokens, artifacts, log),
		Logger: log,
		Health: func() error {
			healthCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := pool.Ping(healthCtx); err != nil {
				return err
			}
			if redisClient != nil {
				return redisClient.Health(healthCtx)
			}
			return nil
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server starting", slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}
