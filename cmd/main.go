package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"talent-horizon/internal/applications"
	"talent-horizon/internal/clients"
	"talent-horizon/internal/config"
	"talent-horizon/internal/logger"
	"talent-horizon/internal/profile"
	"talent-horizon/internal/service"
	"talent-horizon/internal/storage"
	"talent-horizon/internal/transport/rest"
	"talent-horizon/internal/transport/websocket"
	"talent-horizon/pkg/database/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// logger settings come from the same config
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init error:", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if envErr != nil {
		log.Info("no .env file found, using system env or defaults")
	}

	// top-level context which we can cancel on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exportFiles, err := clients.NewLocalStorage(cfg.Files.Dir, cfg.Files.PublicPrefix, cfg.Files.ExternalURL)
	if err != nil {
		log.Fatal("export storage init error", zap.Error(err))
	}

	var redisClient *clients.RedisClient
	if cfg.NeedsRedis() {
		redisClient = mustInitRedis(ctx, log, cfg.Redis)
		defer redisClient.Close()
	}

	var s3Client *clients.S3Client
	if cfg.NeedsS3() {
		s3Client = mustInitS3(ctx, log, cfg.S3)
	}

	kv, db := mustInitStorage(ctx, log, cfg, redisClient, s3Client)
	if db != nil {
		defer postgres.Close(db)
	}

	wsHub := websocket.NewHub(log.Named("ws"))
	go wsHub.Run(ctx)
	wsClient := clients.NewWebSocketClient(wsHub)

	appRegistry := applications.NewRegistry(kv, log.Named("applications"), wsClient, nil)
	profileRegistry := profile.NewRegistry(kv, log.Named("profile"), nil)

	var exportS3 *clients.S3Client
	if cfg.S3.Enabled {
		exportS3 = s3Client
	}
	exportSvc := service.NewExportService(service.ExportOptions{
		Files:    exportFiles,
		S3:       exportS3,
		Redis:    redisClient,
		Notifier: wsClient,
		Logger:   log.Named("export"),
	})

	handler := rest.NewHandler(rest.Options{
		Applications:   appRegistry,
		Profiles:       profileRegistry,
		Exports:        exportSvc,
		Files:          exportFiles,
		Hub:            wsHub,
		Logger:         log.Named("http"),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     withCORS(handler.InitRouter(), cfg.AllowedOrigins),
		ReadTimeout: 30 * time.Second,
		// exports are written synchronously; leave room beyond the request timeout
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run HTTP server in goroutine so we can listen for shutdown signals
	srvErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.String("storage_backend", cfg.Storage.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
			return
		}
		srvErr <- nil
	}()

	go cleanupExports(ctx, log, exportFiles, cfg.Files.Retention)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-srvErr:
		if err != nil {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	case sig := <-stop:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP server shutdown error", zap.Error(err))
		}

		// stops the websocket hub and the cleanup loop
		cancel()

		log.Info("shutdown complete")
	}
}

// mustInitStorage opens the backend that holds client state. The returned
// *sql.DB is non-nil only for the postgres backend.
func mustInitStorage(
	ctx context.Context,
	log *zap.Logger,
	cfg config.AppConfig,
	redisClient *clients.RedisClient,
	s3Client *clients.S3Client,
) (storage.KeyValue, *sql.DB) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn("memory storage backend: client state is lost on restart")
		return storage.NewMemory(), nil

	case config.BackendRedis:
		return storage.NewRedis(redisClient), nil

	case config.BackendS3:
		return storage.NewS3(s3Client), nil

	case config.BackendPostgres:
		db, err := postgres.NewPostgresConnection(ctx, postgres.ConnectionInfo{
			Host:         cfg.Postgres.Host,
			Port:         cfg.Postgres.Port,
			Username:     cfg.Postgres.User,
			DBName:       cfg.Postgres.DBName,
			SSLMode:      cfg.Postgres.SSLMode,
			Password:     cfg.Postgres.Password,
			MaxOpenConns: cfg.Postgres.MaxOpenConns,
		})
		if err != nil {
			log.Fatal("postgres init error", zap.Error(err))
		}
		pg := storage.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal("postgres migrate error", zap.Error(err))
		}
		return pg, db

	default:
		files, err := clients.NewLocalStorage(cfg.Storage.Dir, "", "")
		if err != nil {
			log.Fatal("state storage init error", zap.Error(err))
		}
		return storage.NewFile(files), nil
	}
}

func mustInitRedis(ctx context.Context, log *zap.Logger, cfg config.RedisConfig) *clients.RedisClient {
	client, err := clients.NewRedisClient(ctx, clients.RedisConfig{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		MaxRetries:  cfg.MaxRetries,
		DialTimeout: cfg.DialTimeout,
		Timeout:     cfg.Timeout,
		Prefix:      cfg.Prefix,
	})
	if err != nil {
		log.Fatal("redis init error", zap.Error(err))
	}
	return client
}

func mustInitS3(ctx context.Context, log *zap.Logger, cfg config.S3Config) *clients.S3Client {
	client, err := clients.NewS3Client(ctx, clients.S3Config{
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		Bucket:          cfg.Bucket,
		UseSSL:          cfg.UseSSL,
		Region:          cfg.Region,
		Prefix:          cfg.Prefix,
	})
	if err != nil {
		log.Fatal("s3 init error", zap.Error(err))
	}
	return client
}

// cleanupExports deletes generated workbooks once they outlive retention.
func cleanupExports(ctx context.Context, log *zap.Logger, files *clients.StorageClient, retention time.Duration) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := files.CleanupOlderThan("*.xlsx", retention); err != nil {
				log.Warn("export cleanup error", zap.Error(err))
			}
		}
	}
}

func withCORS(next http.Handler, allowed string) http.Handler {
	var origins []string
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	anyOrigin := slices.Contains(origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (anyOrigin || slices.Contains(origins, origin)) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PATCH,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Client-ID, X-Requested-With")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
