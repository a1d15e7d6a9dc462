package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/driveway/rental-system/internal/api/handler"
	"github.com/driveway/rental-system/internal/api/middleware"
	"github.com/driveway/rental-system/internal/core/domain"
	"github.com/driveway/rental-system/internal/core/ports"
	"github.com/driveway/rental-system/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	Identity  ports.IdentityService
	Inventory ports.InventoryService
	Bookings  ports.BookingService
	Dashboard ports.DashboardService

	// Ready lists the backends checked by /health/ready, keyed by name.
	Ready map[string]handlers.Pinger

	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(middleware.Metrics())

	authHandler := handler.NewAuthHandler(deps.Identity)
	carHandler := handler.NewCarHandler(deps.Inventory)
	bookingHandler := handler.NewBookingHandler(deps.Bookings)
	adminHandler := handler.NewAdminHandler(deps.Dashboard)

	requireAuth := middleware.Auth(deps.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	userOnly := middleware.RBAC(domain.RoleUser)

	// --- Auth ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, requireAuth)
	auth.GET("/me", authHandler.Me, requireAuth)

	v1 := e.Group("/v1")

	// --- Cars ---
	cars := v1.Group("/cars")
	cars.GET("", carHandler.List)
	cars.GET("/popular", carHandler.Popular)
	cars.GET("/brands", carHandler.Brands)
	cars.GET("/:id", carHandler.Get)
	cars.POST("", carHandler.Create, requireAuth, adminOnly)
	cars.PATCH("/:id", carHandler.Update, requireAuth, adminOnly)
	cars.DELETE("/:id", carHandler.Delete, requireAuth, adminOnly)

	// --- Bookings ---
	bookings := v1.Group("/bookings", requireAuth)
	bookings.POST("", bookingHandler.Create, userOnly)
	bookings.GET("/mine", bookingHandler.Mine, userOnly)
	bookings.POST("/:id/cancel", bookingHandler.Cancel, userOnly)
	bookings.GET("", bookingHandler.List, adminOnly)
	bookings.POST("/:id/approve", bookingHandler.Approve, adminOnly)
	bookings.POST("/:id/reject", bookingHandler.Reject, adminOnly)
	bookings.POST("/:id/complete", bookingHandler.Complete, adminOnly)

	// --- Admin ---
	v1.GET("/admin/stats", adminHandler.Stats, requireAuth, adminOnly)

	// --- Probes ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewReadinessHandler(deps.Ready).Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
