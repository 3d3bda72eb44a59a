package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/airgo3d/panorama-api/internal/blob"
	"github.com/airgo3d/panorama-api/internal/config"
	"github.com/airgo3d/panorama-api/internal/logger"
	"github.com/airgo3d/panorama-api/internal/metrics"
	"github.com/airgo3d/panorama-api/internal/panorama"
	"github.com/airgo3d/panorama-api/internal/server"
	"github.com/airgo3d/panorama-api/internal/storage"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logg, err := logger.Init()
	if err != nil {
		panic("init logger: " + err.Error())
	}
	defer logg.Sync()

	cfg, err := config.Load()
	if err != nil {
		logg.Fatal("load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := storage.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logg.Fatal("connect postgres", zap.Error(err))
	}
	defer dbPool.Close()

	if err := storage.EnsureSchema(ctx, dbPool); err != nil {
		logg.Fatal("ensure schema", zap.Error(err))
	}

	blobStore, err := buildBlobStore(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("init blob store", zap.Error(err))
	}

	metrics.InitMetrics()

	panoramaRepo := panorama.NewRepository(dbPool)
	panoramaService := panorama.NewService(panoramaRepo, blobStore, panorama.ServiceOptions{
		MaxUploadBytes:  cfg.Storage.MaxUploadBytes,
		PublicBaseURL:   cfg.Storage.PublicBaseURL,
		PresignLocators: cfg.Storage.Locators == config.LocatorsPresigned,
	}, logg)

	router := server.NewRouter(server.Dependencies{
		Config:          cfg,
		DB:              dbPool,
		Blobs:           blobStore,
		PanoramaService: panoramaService,
		Logger:          logg,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logg.Info("AirGo3D API listening",
			zap.String("address", cfg.Server.Address()),
			zap.String("storage_backend", cfg.Storage.Backend))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logg.Info("shutting down gracefully")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", zap.Error(err))
	}
}

func buildBlobStore(ctx context.Context, cfg config.Config, logg *zap.Logger) (blob.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendDisk:
		logg.Info("using disk blob store", zap.String("dir", cfg.Storage.UploadDir))
		return blob.NewDiskStore(cfg.Storage.UploadDir)
	default:
		minioClient, err := storage.NewMinIOClient(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := storage.EnsureBucket(ctx, minioClient, cfg.MinIO.Bucket, cfg.MinIO.Region); err != nil {
			return nil, err
		}
		logg.Info("using minio blob store",
			zap.String("endpoint", cfg.MinIO.Endpoint),
			zap.String("bucket", cfg.MinIO.Bucket))
		return blob.NewMinIOStore(minioClient, cfg.MinIO.Bucket, cfg.Storage.PresignTTL), nil
	}
}
