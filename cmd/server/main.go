package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/roommatefinder/room-service/internal/adapter/http"
	"github.com/roommatefinder/room-service/internal/adapter/messaging/nats"
	"github.com/roommatefinder/room-service/internal/adapter/repository/cache"
	"github.com/roommatefinder/room-service/internal/adapter/repository/mongodb"
	"github.com/roommatefinder/room-service/internal/adapter/storage/s3"
	"github.com/roommatefinder/room-service/internal/config"
	"github.com/roommatefinder/room-service/internal/mailer"
	"github.com/roommatefinder/room-service/internal/platform/metrics"
	"github.com/roommatefinder/room-service/internal/platform/tracer"
	"github.com/roommatefinder/room-service/internal/room/domain"
	"github.com/roommatefinder/room-service/internal/room/usecase"
	"go.uber.org/zap"
)

const serviceName = "room_service"

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapConfig := zap.NewProductionConfig()
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	if cfg.Otel.Enabled {
		tp, err := tracer.Init(ctx, cfg.Otel.Endpoint, serviceName)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Error("Failed to shut down tracer", zap.Error(err))
			}
		}()
	}

	mongoClient, err := mongodb.NewConnection(&cfg.Mongo)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	logger.Info("Successfully connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)
	roomRepo := mongodb.NewRoomRepository(db, logger)
	likeRepo := mongodb.NewLikeRepository(db, logger)
	userRepo := mongodb.NewUserRepository(db, logger)

	// The unique (room_id, user_id) index is what makes duplicate likes a
	// storage-level conflict instead of a race.
	if err := likeRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to ensure like indexes", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	roomCache := cache.NewRoomCache(redisClient, logger)

	publisher, err := nats.NewPublisher(&cfg.NATS, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer publisher.Close()

	photoStorage, err := s3.NewPhotoStorage(cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket, cfg.S3.UseSSL, logger)
	if err != nil {
		logger.Fatal("Failed to initialize photo storage", zap.Error(err))
	}

	var notifier domain.LikeNotifier
	if cfg.SMTP.Enabled {
		notifier = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password)
	}

	roomUC := usecase.NewRoomUsecase(roomRepo, likeRepo, roomCache, publisher, photoStorage, logger)
	likeUC := usecase.NewLikeUsecase(roomRepo, likeRepo, roomCache, publisher, notifier, logger)
	queryUC := usecase.NewLikeQueryUsecase(roomRepo, likeRepo, userRepo, logger)

	if cfg.ReconcileOnStart {
		reconcileUC := usecase.NewReconcileUsecase(roomRepo, likeRepo, roomCache, logger)
		corrected, err := reconcileUC.ReconcileLikeCounts(ctx)
		if err != nil {
			logger.Error("Like counter reconciliation failed", zap.Error(err))
		} else {
			logger.Info("Like counter reconciliation complete", zap.Int("corrected", corrected))
		}
	}

	metricsManager := metrics.NewManager(serviceName)
	go func() {
		if err := metrics.StartServer(cfg.Metrics.Port, logger, metricsManager.Registry); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", zap.Error(err))
		}
	}()

	roomHandler := httpadapter.NewRoomHandler(roomUC, metricsManager, logger)
	likeHandler := httpadapter.NewLikeHandler(likeUC, queryUC, metricsManager, logger)
	router := httpadapter.NewRouter(roomHandler, likeHandler, cfg.JWT.Secret, metricsManager, logger)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
