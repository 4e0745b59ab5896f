package api

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/user-service/docs"
	"github.com/99minutos/user-service/internal/api/handler"
	"github.com/99minutos/user-service/internal/api/middleware"
	"github.com/99minutos/user-service/internal/core/ports"
)

const metricsPath = "/metrics"

// Server groups everything the HTTP layer needs. It is built once in main.
type Server struct {
	Users  ports.UserService
	Files  ports.FileService
	Logger zerolog.Logger

	// HealthChecks are probed by GET /health/ready, keyed by dependency name.
	HealthChecks map[string]handler.DependencyCheck

	// UploadLimitMB caps the request body of POST /upload. Zero disables the cap.
	UploadLimitMB int
	AllowOrigins  []string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(s Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(s.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(s.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins(s.AllowOrigins),
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: s.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))

	// --- Dependencies ---
	userHandler := handler.NewUserHandler(s.Users)
	fileHandler := handler.NewFileHandler(s.Files)
	healthHandler := handler.NewHealthHandler(s.HealthChecks)

	// --- User routes ---
	users := e.Group("/users")
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- File routes ---
	var uploadMiddleware []echo.MiddlewareFunc
	if s.UploadLimitMB > 0 {
		uploadMiddleware = append(uploadMiddleware, echomiddleware.BodyLimit(fmt.Sprintf("%dM", s.UploadLimitMB)))
	}
	e.POST("/upload", fileHandler.Upload, uploadMiddleware...)
	e.GET("/file/:filename", fileHandler.Retrieve)

	// --- Operational routes ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: s.Gatherer,
	}))
	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	return e
}

func allowOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
