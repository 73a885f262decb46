package router

import (
	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blizzint/internal/auth"
	"blizzint/internal/config"
	"blizzint/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	resortHandler *handler.ResortHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Root-level health check for load balancers
	e.GET("/health", healthHandler.Health)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	api.GET("/health", healthHandler.Health)

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/resorts", resortHandler.ListResorts)
	api.GET("/resorts/search", resortHandler.SearchResorts)
	api.GET("/resorts/nearby", resortHandler.NearbyResorts)
	api.GET("/resorts/:idOrSlug", resortHandler.GetResort)

	// Secured routes (require JWT authentication)
	jwtMiddleware := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	})

	secured := api.Group("", jwtMiddleware)
	secured.GET("/auth/profile", authHandler.GetProfile)

	// Admin routes: token first, then the explicit role gate
	admin := api.Group("", jwtMiddleware, auth.AdminOnly)

	admin.POST("/resorts", resortHandler.CreateResort)
	admin.PUT("/resorts/:id", resortHandler.UpdateResort)
	admin.DELETE("/resorts/:id", resortHandler.DeleteResort)

	admin.GET("/users", userHandler.ListUsers)
	admin.POST("/users", userHandler.CreateUser)
	admin.PUT("/users/:id", userHandler.UpdateUser)
	admin.DELETE("/users/:id", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
