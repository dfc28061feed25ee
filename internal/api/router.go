package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/igilife/insurance-portal/docs"
	"github.com/igilife/insurance-portal/internal/api/handler"
	"github.com/igilife/insurance-portal/internal/api/middleware"
	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// Dependencies carries everything the router needs; the composition root in
// cmd/server owns construction.
type Dependencies struct {
	Manager      ports.SessionManager
	Engine       ports.AccessEngine
	Switcher     ports.RoleSwitcher
	Clients      ports.ClientService
	Store        ports.KVStore
	StoreBackend string
	JWTSecret    string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("portal"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Manager, deps.Engine, deps.Switcher, deps.JWTSecret)
	userHandler := handler.NewUserHandler(deps.Manager)
	clientHandler := handler.NewClientHandler(deps.Clients)
	roleHandler := handler.NewRoleHandler(deps.Engine)

	authMW := middleware.Auth(deps.JWTSecret)

	// --- Auth & session routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session, authMW)
	e.PUT("/auth/profile", authHandler.UpdateProfile, authMW)
	e.PUT("/auth/role", authHandler.SwitchRole, authMW)

	// --- Role & access queries ---
	e.GET("/v1/roles", roleHandler.List, authMW)
	e.GET("/v1/access/services/:id", roleHandler.CheckService, authMW)
	e.GET("/v1/access/permissions/:name", roleHandler.CheckPermission, authMW)

	// --- User administration (canManageUsers) ---
	users := e.Group("/v1/users", authMW, middleware.RequirePermission(deps.Engine, domain.PermManageUsers))
	users.POST("", userHandler.Create)
	users.GET("", userHandler.List)
	users.DELETE("/:id", userHandler.Delete)

	// --- Client records (clients service allow-list) ---
	clients := e.Group("/v1/clients", authMW, middleware.RequireService(deps.Engine, domain.ServiceClients))
	clients.POST("", clientHandler.Create)
	clients.GET("", clientHandler.List)
	clients.PUT("/:id", clientHandler.Update)
	clients.DELETE("/:id", clientHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Store, deps.StoreBackend)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – is the store up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
