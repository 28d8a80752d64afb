package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"content-gate/internal/auth"
	"content-gate/internal/config"
	"content-gate/internal/domain/apikey"
	"content-gate/internal/gate"
	"content-gate/internal/http/handler"
	"content-gate/internal/http/middleware"
	"content-gate/internal/repository/postgres"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "1M"
)

type ServerDependencies struct {
	Config         *config.Config
	ContentRepo    *postgres.ContentRepository
	UserRepo       *postgres.UserRepository
	APIKeyRepo     *postgres.APIKeyRepository
	Gate           *gate.Gate
	Signer         handler.AttachmentSigner
	JWTService     *auth.JWTService
	APIKeyService  *auth.APIKeyService
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for credential endpoints
	strictRateLimiter := middleware.NewStrictRateLimiter()

	cookieName := deps.Config.Gate.CookieName
	cookiePath := deps.Config.Gate.CookiePath
	pageSize := deps.Config.App.PageSize

	contentHandler := handler.NewContentHandler(deps.ContentRepo, deps.Gate, deps.Signer, cookieName, pageSize)
	gateHandler := handler.NewGateHandler(deps.ContentRepo, deps.Gate, cookieName, cookiePath)
	authHandler := handler.NewAuthHandler(deps.UserRepo, deps.JWTService)
	apiKeyHandler := handler.NewAPIKeyHandler(deps.APIKeyRepo, deps.APIKeyService)
	adminHandler := handler.NewAdminContentHandler(deps.ContentRepo, deps.ContentRepo)

	e.GET("/health", healthCheck)

	// Public read surface. The gate redacts; the routes themselves are open.
	e.GET("/contents", contentHandler.List)
	e.GET("/contents/lookup", contentHandler.Lookup)
	e.GET("/contents/:id", contentHandler.Get)

	// Credential endpoints get the strict limiter against brute forcing.
	e.POST("/gate/unlock", gateHandler.Unlock, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())

	api := e.Group("/api")

	// Keyed reads for server-side front-ends. The gate still applies; an API
	// key authenticates the caller, it never unlocks entries.
	apiKeyRead := api.Group("/key")
	apiKeyRead.Use(deps.AuthMiddleware.RequireAPIKey(apikey.PermissionRead))
	apiKeyRead.GET("/contents", contentHandler.List)
	apiKeyRead.GET("/contents/lookup", contentHandler.Lookup)
	apiKeyRead.GET("/contents/:id", contentHandler.Get)

	// Editor surface
	jwtAPI := api.Group("")
	jwtAPI.Use(deps.AuthMiddleware.RequireJWT())
	jwtAPI.POST("/contents", adminHandler.Create)
	jwtAPI.GET("/contents/:id", adminHandler.Get)
	jwtAPI.PUT("/contents/:id", adminHandler.Update)
	jwtAPI.DELETE("/contents/:id", adminHandler.Delete)

	jwtAPI.POST("/api-keys", apiKeyHandler.Create)
	jwtAPI.GET("/api-keys", apiKeyHandler.List)
	jwtAPI.DELETE("/api-keys/:id", apiKeyHandler.Revoke)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
