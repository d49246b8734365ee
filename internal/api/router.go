package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chirper/social-system/internal/api/handler"
	"github.com/chirper/social-system/internal/api/middleware"
	"github.com/chirper/social-system/internal/core/domain"
	"github.com/chirper/social-system/internal/core/ports"
)

// RouterConfig carries everything the router needs wired in by main.
type RouterConfig struct {
	Account ports.AccountService
	Users   ports.UsersService
	Tweets  ports.TweetsService

	// Auth backs the token-validation middleware.
	Auth ports.AuthClient

	// Redis backs rate limiting on the public auth routes. Nil disables
	// the limiter (tests, local runs without Redis).
	Redis      *redis.Client
	RateLimit  int
	RateWindow time.Duration

	// Backends maps service name to base URL for the readiness probe.
	Backends map[string]string

	Log zerolog.Logger
}

// route is one entry of the explicit route table. Protection is data, not
// decorator metadata: public routes skip the auth guard entirely, and a
// nil role list admits any authenticated caller.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	public  bool
	roles   []string
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("gateway"))

	accountHandler := handler.NewAccountHandler(cfg.Account)
	usersHandler := handler.NewUsersHandler(cfg.Users)
	tweetsHandler := handler.NewTweetsHandler(cfg.Tweets)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Redis, cfg.Backends)

	authGuard := middleware.Auth(cfg.Auth, cfg.Log)

	var publicGuards []echo.MiddlewareFunc
	if cfg.Redis != nil && cfg.RateLimit > 0 {
		publicGuards = append(publicGuards,
			middleware.RateLimit(cfg.Redis, cfg.RateLimit, cfg.RateWindow, cfg.Log))
	}

	routes := []route{
		{method: echo.POST, path: "/register", handler: accountHandler.Register, public: true},
		{method: echo.POST, path: "/login", handler: accountHandler.Login, public: true},

		{method: echo.GET, path: "/users", handler: usersHandler.List, roles: []string{domain.RoleAdmin}},
		{method: echo.GET, path: "/users/:idHash", handler: usersHandler.Get},
		{method: echo.PUT, path: "/users/:idHash", handler: usersHandler.Update},
		{method: echo.DELETE, path: "/users/:idHash", handler: usersHandler.Delete, roles: []string{domain.RoleAdmin}},

		{method: echo.GET, path: "/tweets", handler: tweetsHandler.List},
		{method: echo.GET, path: "/tweets/:id", handler: tweetsHandler.Get},
		{method: echo.POST, path: "/tweets", handler: tweetsHandler.Create},
		{method: echo.PUT, path: "/tweets/:id", handler: tweetsHandler.Update},
		{method: echo.DELETE, path: "/tweets/:id", handler: tweetsHandler.Delete},
	}

	for _, r := range routes {
		if r.public {
			e.Add(r.method, r.path, r.handler, publicGuards...)
			continue
		}
		e.Add(r.method, r.path, r.handler, authGuard, middleware.RBAC(r.roles...))
	}

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
