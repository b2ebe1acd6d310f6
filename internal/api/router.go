package api

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/beerlist/beerlist/docs"
	"github.com/beerlist/beerlist/internal/api/handler"
	"github.com/beerlist/beerlist/internal/api/middleware"
	"github.com/beerlist/beerlist/internal/api/session"
	"github.com/beerlist/beerlist/internal/core/ports"
	"github.com/beerlist/beerlist/internal/core/service"
	"github.com/beerlist/beerlist/pkg/logger"
)

// Deps carries everything the router needs. Nothing is read from package
// state: handlers only see what is passed here.
type Deps struct {
	Beers ports.BeerRepository
	Users ports.UserRepository

	Sessions    sessions.Store
	SessionName string

	Logger zerolog.Logger

	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.Check

	// Registerer and Gatherer enable HTTP metrics and GET /metrics when set.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	// PublicDir, when set, is served as static files.
	PublicDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	if deps.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "beerlist",
			Registerer: deps.Registerer,
		}))
	}
	e.Use(session.Middleware(deps.Sessions))

	// --- Dependencies ---
	sessionManager := session.NewManager(deps.SessionName)
	requireSession := middleware.RequireSession(sessionManager)

	beerService := service.NewBeerService(deps.Beers, logger.Named(deps.Logger, "beers"))
	authService := service.NewAuthService(deps.Users, logger.Named(deps.Logger, "auth"))

	beerHandler := handler.NewBeerHandler(beerService, deps.Logger)
	authHandler := handler.NewAuthHandler(authService, sessionManager)

	// --- Beer routes (writes require a session) ---
	e.GET("/beers", beerHandler.List)
	e.POST("/beers", beerHandler.Create, requireSession)
	e.PUT("/beers/:id", beerHandler.Update, requireSession)
	e.DELETE("/beers/:id", beerHandler.Delete, requireSession)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/register", authHandler.Register)
	e.GET("/checkIfAuthenticated", authHandler.CheckIfAuthenticated)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	if deps.Gatherer != nil {
		e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
			Gatherer: deps.Gatherer,
		}))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if deps.PublicDir != "" {
		e.Static("/", deps.PublicDir)
	}

	return e
}

// requestLogger logs one line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Warn().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
