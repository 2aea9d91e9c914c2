package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"projman/internal/config"
	"projman/internal/handler"
	"projman/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	projectHandler *handler.ProjectHandler,
	documentHandler *handler.DocumentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/auth", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Secured routes (require JWT authentication)
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}), resolveUser(authService))

	secured.GET("/users/me", userHandler.Me)

	// Project routes
	secured.POST("/projects", projectHandler.Create)
	secured.GET("/projects", projectHandler.List)
	secured.GET("/projects/:id", projectHandler.Get)
	secured.PUT("/projects/:id", projectHandler.Update)
	secured.DELETE("/projects/:id", projectHandler.Delete)
	secured.POST("/projects/:id/invite", projectHandler.Invite)

	// Document routes
	secured.POST("/projects/:id/documents", documentHandler.Upload)
	secured.GET("/projects/:id/documents", documentHandler.List)
	secured.GET("/documents/:id/download", documentHandler.Download)
	secured.PUT("/documents/:id", documentHandler.Replace)
	secured.DELETE("/documents/:id", documentHandler.Delete)
}

// resolveUser turns the validated token subject into a User in the request
// context. Every failure is a plain 401 so the routes never leak whether a
// given resource exists to unauthenticated callers.
func resolveUser(authService service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			login, err := token.Claims.GetSubject()
			if err != nil || login == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			user, err := authService.ResolveUser(c.Request().Context(), login)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
			}
			c.Set(handler.ContextUserKey, user)
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
