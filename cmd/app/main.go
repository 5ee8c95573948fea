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

	dbadapter "blogpost/internal/adapters/database"
	"blogpost/internal/adapters/httpapi"
	redisadapter "blogpost/internal/adapters/redis"
	"blogpost/internal/config"
	postapp "blogpost/internal/core/post/service"
	profileapp "blogpost/internal/core/profile/service"
	userapp "blogpost/internal/core/user/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Init()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.InitLogger(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = config.Logger.Sync() }()
	logger := config.Logger

	db, err := config.InitDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	if err := dbadapter.AutoMigrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	ctx := context.Background()
	redisClient, err := config.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	defer closeResources(logger, db, redisClient)

	userRepo := dbadapter.NewUserRepositoryDatabase(db, nil)
	postRepo := dbadapter.NewPostRepositoryDatabase(db, nil)
	profileRepo := dbadapter.NewProfileRepositoryDatabase(db)
	sessions := redisadapter.NewSessionRepositoryRedis(redisClient)

	userSvc := userapp.NewUserService(userRepo, sessions, []byte(cfg.JWTSecret), cfg.SessionTTL)
	postSvc := postapp.NewPostService(postRepo)
	profileSvc := profileapp.NewProfileService(profileRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := httpapi.SetupRoutes(userSvc, postSvc, profileSvc, httpapi.RouterConfig{
		MediaDir:     cfg.MediaDir,
		SecureCookie: cfg.AppEnv == "production",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", zap.Error(err))
		}
	}()

	logger.Info("App is running", zap.String("port", cfg.AppPort))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to start", zap.Error(err))
	}
}

// closeResources closes the Redis and database connections.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if err := redisClient.Close(); err != nil {
		logger.Error("Error closing Redis connection", zap.Error(err))
	}
	if err := config.CloseDB(db); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
