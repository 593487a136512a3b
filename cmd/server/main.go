package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"kivutrips/docs"
	"kivutrips/internal/auth"
	"kivutrips/internal/cache"
	"kivutrips/internal/config"
	"kivutrips/internal/db"
	"kivutrips/internal/handler"
	"kivutrips/internal/model"
	"kivutrips/internal/repository"
	"kivutrips/internal/router"
	"kivutrips/internal/service"
)

// @title Kivutrips API
// @version 1.0
// @description Tourism-listing catalog with admin CRUD and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Local .env support; absence is fine in deployed environments.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	userRepo, activityRepo, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	log.Printf("using %s store driver", cfg.StoreDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	presence := cache.NewPresenceTracker(cacheClient)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, presence)
	userService := service.NewUserService(userRepo, presence)
	activityService := service.NewActivityService(activityRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	activityHandler := handler.NewActivityHandler(activityService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		activityHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

// buildRepositories selects the store adapters for the configured driver.
func buildRepositories(cfg *config.Config) (repository.UserRepository, repository.ActivityRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		gormDB, err := db.NewMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := gormDB.AutoMigrate(&model.User{}, &model.Activity{}); err != nil {
			return nil, nil, err
		}
		return repository.NewUserRepository(gormDB), repository.NewActivityRepository(gormDB), nil

	case config.DriverMongo:
		client, err := db.NewMongo(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		database := client.Database(cfg.MongoDB)
		if err := repository.EnsureMongoIndexes(context.Background(), database); err != nil {
			return nil, nil, err
		}
		return repository.NewMongoUserRepository(database), repository.NewMongoActivityRepository(database), nil

	default:
		return repository.NewMemoryUserRepository(), repository.NewMemoryActivityRepository(), nil
	}
}
