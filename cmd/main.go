package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/StephanNaro/id-registry/internal/cache"
	"github.com/StephanNaro/id-registry/internal/config"
	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/internal/generator"
	"github.com/StephanNaro/id-registry/internal/handler"
	"github.com/StephanNaro/id-registry/internal/repository"
	"github.com/StephanNaro/id-registry/internal/service"
	"github.com/StephanNaro/id-registry/internal/suspend"
	"github.com/StephanNaro/id-registry/pkg/database"
	pkglog "github.com/StephanNaro/id-registry/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "id-registry",
	})
	logger := pkglog.L()

	// Connect to database using GORM
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate
	if err := database.AutoMigrate(db, &domain.IdentifierModel{}, &domain.SettingModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories and seed default settings
	idRepo := repository.NewGormIdentifierRepository(db)
	settingsRepo := repository.NewGormSettingsRepository(db)
	if err := settingsRepo.Seed(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed default settings")
	}

	// Initialize generator and suspend gate
	gen := generator.NewCharsetGenerator()
	gate := suspend.NewGate(idRepo)

	// Initialize Redis cache (optional)
	var idCache cache.IdentifierCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisIdentifierCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		idCache = redisCache
		logger.Info().Msg("redis cache connected")
	}

	// Initialize service
	registryService := service.NewRegistryService(
		idRepo,
		settingsRepo,
		gen,
		gate,
		idCache,
		time.Duration(cfg.Cache.TTL)*time.Second,
		cfg.Registry.MaxGenerateAttempts,
	)

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(registryService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str(pkglog.FieldDriver, cfg.Database.Driver).Msg("id-registry starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
