package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/hireboard/job-portal/docs"
	"github.com/hireboard/job-portal/internal/api/handler"
	"github.com/hireboard/job-portal/internal/api/middleware"
	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
)

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Backend *mockapi.Backend
	// Health lists the dependencies checked by the readiness probe.
	Health map[string]ports.Pinger
	// Registry receives the HTTP metrics. Nil means the default registry.
	Registry *prometheus.Registry
	Logger   zerolog.Logger
}

// NewRouter builds the Echo instance serving every registered backend
// operation at its path template.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobboard",
		Registerer: registerer,
	}))

	// --- Backend operations ---
	backendHandler := handler.NewBackendHandler(d.Backend)
	routes := backendHandler.Routes()
	auth := middleware.Auth(d.Backend.Tokens())
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	for _, op := range mockapi.Names() {
		ep, _ := mockapi.Lookup(op)
		h, ok := routes[op]
		if !ok {
			h = backendHandler.Passthrough(op)
		}

		var mws []echo.MiddlewareFunc
		if ep.Auth {
			mws = append(mws, auth)
		}
		if ep.Admin {
			mws = append(mws, adminOnly)
		}
		e.Add(ep.Method, ep.Path, h, mws...).Name = op
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(d.Health)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

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
