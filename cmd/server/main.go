package main

import (
	"log"
	"net/http"

	"projman/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"projman/internal/access"
	"projman/internal/auth"
	"projman/internal/cache"
	"projman/internal/config"
	"projman/internal/db"
	"projman/internal/handler"
	"projman/internal/model"
	"projman/internal/repository"
	"projman/internal/router"
	"projman/internal/service"
	"projman/internal/storage"
)

// @title Project Manager API
// @version 1.0
// @description Project management backend with JWT authentication, invited participants and S3-backed document storage.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Participant{},
		&model.Document{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	store, err := storage.NewMinio(storage.Config{
		Endpoint:   cfg.S3Endpoint,
		Region:     cfg.S3Region,
		Bucket:     cfg.S3Bucket,
		AccessKey:  cfg.S3AccessKey,
		SecretKey:  cfg.S3SecretKey,
		UseSSL:     cfg.S3UseSSL,
		PublicHost: cfg.S3PublicHost,
		PresignTTL: cfg.PresignTTL,
	})
	if err != nil {
		log.Fatalf("object store init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	documentRepo := repository.NewDocumentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	userCache := auth.NewUserCache(cacheClient)

	// Initialize services
	evaluator := access.NewEvaluator(projectRepo)
	authService := service.NewAuthService(userRepo, jwtService, userCache)
	projectService := service.NewProjectService(projectRepo, documentRepo, userRepo, evaluator, store)
	documentService := service.NewDocumentService(documentRepo, evaluator, store)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler()
	projectHandler := handler.NewProjectHandler(projectService)
	documentHandler := handler.NewDocumentHandler(documentService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		authHandler,
		userHandler,
		projectHandler,
		documentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
