package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"kivutrips/internal/auth"
	"kivutrips/internal/config"
	"kivutrips/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	activityHandler *handler.ActivityHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/activities", activityHandler.List)
	api.GET("/activities/featured", activityHandler.ListFeatured)
	api.GET("/activities/:id", activityHandler.Get)

	// Routes requiring a valid session
	guard := auth.Guard(cfg.JWTSecret)

	users := api.Group("/users", guard)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/profile", userHandler.UpdateProfile)
	users.PUT("/activity", userHandler.TouchActivity)

	// Mutating catalog routes require the admin role
	admin := api.Group("/activities", guard, auth.RequireAdmin)
	admin.POST("", activityHandler.Create)
	admin.PUT("/:id", activityHandler.Update)
	admin.DELETE("/:id", activityHandler.Delete)
	admin.PUT("/:id/featured", activityHandler.ToggleFeatured)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
