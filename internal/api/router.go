package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shoplist/shopping-api/docs"
	"github.com/shoplist/shopping-api/internal/api/handler"
	"github.com/shoplist/shopping-api/internal/api/middleware"
	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Authn    ports.Authenticator
	Users    ports.UserService
	Products ports.ProductService
	Cart     ports.CartService
	Data     ports.DataService

	// Ready lists the dependencies checked by /health/ready.
	Ready map[string]handler.Pinger

	// Registry receives the HTTP metrics. Nil means the default Prometheus
	// registry, which also carries the domain counters.
	Registry *prometheus.Registry

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.CORS())
	e.Use(metricsMiddleware(d.Registry))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Authn)
	userHandler := handler.NewUserHandler(d.Users, d.Authn)
	productHandler := handler.NewProductHandler(d.Products)
	cartHandler := handler.NewCartHandler(d.Cart)
	statsHandler := handler.NewStatsHandler(d.Data)

	authenticated := middleware.Authenticate(d.Authn)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authenticated)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.GET("/users", userHandler.List, authenticated, adminOnly)
	e.GET("/users/:id", userHandler.Get, authenticated)
	e.PUT("/users/:id", userHandler.Update, authenticated)
	e.DELETE("/users/:id", userHandler.Delete, authenticated, adminOnly)

	// --- Products ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, authenticated, adminOnly)
	e.PUT("/products/:id", productHandler.Update, authenticated, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authenticated, adminOnly)

	// --- Cart (public) ---
	e.GET("/cart", cartHandler.Get)
	e.POST("/cart", cartHandler.Add)
	e.PUT("/cart/:id", cartHandler.Update)
	e.DELETE("/cart/:id", cartHandler.Remove)

	// --- Admin ---
	e.GET("/stats", statsHandler.Get, authenticated, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readyHandler := handler.NewReadinessHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readyHandler.Readiness)

	// --- Ops ---
	e.GET("/metrics", metricsHandler(d.Registry))
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
			var evt *zerolog.Event
			if v.Error != nil || v.Status >= 500 {
				evt = log.Error().Err(v.Error)
			} else {
				evt = log.Info()
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

func metricsMiddleware(reg *prometheus.Registry) echo.MiddlewareFunc {
	cfg := echoprometheus.MiddlewareConfig{
		Subsystem: "shoplist",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	if reg != nil {
		cfg.Registerer = reg
	}
	return echoprometheus.NewMiddlewareWithConfig(cfg)
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
