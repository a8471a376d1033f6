package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/blanca/commerce-api/internal/api/handler"
	"github.com/blanca/commerce-api/internal/api/middleware"
	"github.com/blanca/commerce-api/internal/core/domain"
)

// Handlers groups the HTTP handlers the router mounts. All fields are
// required.
type Handlers struct {
	Auth       *handler.AuthHandler
	Country    *handler.CountryHandler
	User       *handler.UserHandler
	Product    *handler.ProductHandler
	Order      *handler.OrderHandler
	Health     *handler.HealthHandler
	HealthDeps *handler.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(h Handlers, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("commerce"))

	auth := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)

	// --- Public routes ---
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)

	e.GET("/health", h.Health.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", h.HealthDeps.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Countries ---
	countries := e.Group("/api/countries", auth)
	countries.GET("", h.Country.List, anyRole)
	countries.GET("/:code", h.Country.Get, anyRole)
	countries.POST("", h.Country.Create, adminOnly)
	countries.PUT("/:code", h.Country.Update, adminOnly)
	countries.DELETE("/:code", h.Country.Delete, adminOnly)

	// --- Products ---
	products := e.Group("/api/products", auth)
	products.GET("", h.Product.List, anyRole)
	products.GET("/:id", h.Product.Get, anyRole)
	products.POST("", h.Product.Create, adminOnly)
	products.PUT("/:id", h.Product.Update, adminOnly)
	products.DELETE("/:id", h.Product.Delete, adminOnly)

	// --- Users (admin surface, except country assignment) ---
	users := e.Group("/api/users", auth)
	users.GET("", h.User.List, adminOnly)
	users.GET("/:id", h.User.Get, adminOnly)
	users.POST("", h.User.Create, adminOnly)
	users.PUT("/:id", h.User.Update, adminOnly)
	users.DELETE("/:id", h.User.Delete, adminOnly)
	users.PATCH("/:id/country", h.User.AssignCountry, anyRole)

	// --- Orders ---
	orders := e.Group("/api/orders", auth)
	orders.GET("", h.Order.List, anyRole)
	orders.GET("/:id", h.Order.Get, anyRole)
	orders.POST("", h.Order.Create, anyRole)
	orders.PUT("/:id", h.Order.Update, adminOnly)
	orders.DELETE("/:id", h.Order.Delete, adminOnly)

	return e
}
