package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/six-cities-api/config"
	"github.com/oksasatya/six-cities-api/internal/container"
	"github.com/oksasatya/six-cities-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/six-cities-api/internal/infrastructure/storage"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/internal/router"
	"github.com/oksasatya/six-cities-api/pkg/helpers"
	"github.com/oksasatya/six-cities-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// MongoDB
	client, err := mongodb.NewClient(ctx, cfg.MongoURI(), cfg.MongoTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.RunMigrations(client, cfg.MongoDB, cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	// Redis
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if cfg.RateLimitEnabled {
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			helpers.LogWarn(logger, "redis unavailable, rate limits fail open", err, nil)
		}
	}

	files, cleanup := initFileStore(ctx, cfg, logger)
	defer cleanup()

	// Elasticsearch (optional)
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch client: %v", err)
	}

	// RabbitMQ publisher for welcome emails (optional)
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			helpers.LogWarn(logger, "rabbitmq unavailable, emails disabled", err, nil)
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetMongo(client, client.Database(cfg.MongoDB))
	container.SetRedis(rdb)
	container.SetFileStore(files)
	container.SetTokens(helpers.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetES(es)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP())
	r.Use(middleware.Recovery(logger), middleware.ErrorHandler(logger))
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}
	if cfg.GCSBucket == "" {
		r.Static(cfg.UploadURLPrefix, cfg.UploadDir)
	}

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r, cfg.APIPrefix)
	router.InitModules(reg, router.DepsFromContainer())
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// initFileStore picks GCS when a bucket is configured and local disk otherwise.
func initFileStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (storage.Store, func()) {
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		container.SetGCS(gcsClient)
		logger.WithField("bucket", cfg.GCSBucket).Info("avatars stored in GCS")
		return storage.NewGCSStore(gcsClient, cfg.GCSBucket, "avatars"), func() { _ = gcsClient.Close() }
	}
	local, err := storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPrefix)
	if err != nil {
		log.Fatalf("failed to prepare upload dir: %v", err)
	}
	logger.WithField("dir", cfg.UploadDir).Info("avatars stored on local disk")
	return local, func() {}
}
