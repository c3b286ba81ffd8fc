package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"treatment-scoring-service/internal/adapters/primary/http/handlers"
	"treatment-scoring-service/internal/adapters/primary/http/middleware"
	"treatment-scoring-service/internal/adapters/secondary/artifact"
	"treatment-scoring-service/internal/adapters/secondary/metrics"
	"treatment-scoring-service/internal/adapters/secondary/postgres"
	"treatment-scoring-service/internal/adapters/secondary/schemafile"
	"treatment-scoring-service/internal/config"
	ports "treatment-scoring-service/internal/core/ports/output"
	"treatment-scoring-service/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Schema contract. Fatal: without it neither validator can run.
	registry, err := schemafile.Load(cfg.Schema.Path)
	if err != nil {
		log.Fatalf("load schema: %v", err)
	}
	log.WithField("path", cfg.Schema.Path).Info("schema contract loaded")

	// Model artifact. Fatal: do not start in a zombie state, let the
	// orchestrator restart the process instead.
	store := artifact.NewStore()
	loaded, err := store.Load(cfg.Artifacts.ModelPath, cfg.Artifacts.TransformPath)
	if err != nil {
		log.Fatalf("load model artifact: %v", err)
	}

	recorder := metrics.NewRecorder()
	recorder.SetModelInfo(loaded.Version)

	// Prediction audit log (optional, based on config)
	var auditRepo ports.PredictionLogRepository
	var pool *pgxpool.Pool
	if cfg.Audit.Enabled {
		poolCfg, err := pgxpool.ParseConfig(cfg.Audit.DSN())
		if err != nil {
			log.Fatalf("parse audit db config: %v", err)
		}
		poolCfg.MaxConns = int32(cfg.Audit.MaxOpenConns)
		poolCfg.MinConns = int32(cfg.Audit.MaxIdleConns)
		poolCfg.MaxConnLifetime = cfg.Audit.ConnMaxLifetime

		pool, err = pgxpool.NewWithConfig(context.Background(), poolCfg)
		if err != nil {
			log.Fatalf("create audit db pool: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("ping audit db: %v", err)
		}
		auditRepo = postgres.NewPredictionLogRepository(pool)
		log.Info("prediction audit log enabled")
	} else {
		log.Info("prediction audit log disabled")
	}

	// Core services
	requestValidator := services.NewRequestValidator(registry)
	predictionSvc := services.NewPredictionService(store, requestValidator, auditRepo)

	// Primary adapter (HTTP)
	h := handlers.New(registry, predictionSvc, store, recorder, recorder.Handler())

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Metrics(recorder),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		gin.Recovery(),
	)
	h.RegisterRoutes(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
