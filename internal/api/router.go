package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bourgeon/platform-gateway/internal/api/handler"
	"github.com/bourgeon/platform-gateway/internal/api/middleware"
	"github.com/bourgeon/platform-gateway/internal/core/domain"
	"github.com/bourgeon/platform-gateway/internal/core/ports"
	"github.com/bourgeon/platform-gateway/internal/core/service"
	"github.com/bourgeon/platform-gateway/internal/infrastructure/config"
	"github.com/bourgeon/platform-gateway/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The redis client may be nil when the gateway runs on in-memory stores.
func NewRouter(cfg *config.Config, rdb *redis.Client, sessions ports.SessionStore, wizards ports.WizardStore, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bourgeon"))
	e.Use(middleware.ClientID())

	// --- Dependencies ---
	codec, err := middleware.NewCookieCodec(cfg.Session.CookieName, cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		return nil, err
	}

	client := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	notifier := service.NewNotificationCenter(log)

	authService := service.NewAuthService(client, sessions, notifier, log)
	wizardEngine := service.NewWizardEngine(client, wizards, sessions, notifier, log)
	catalogService := service.NewCatalogService(client, notifier, log)
	subscriptionService := service.NewSubscriptionService(client, notifier, log)

	authHandler := handler.NewAuthHandler(authService, sessions, codec)
	registrationHandler := handler.NewWizardHandler(wizardEngine, domain.FlowRegistration, codec)
	resetHandler := handler.NewWizardHandler(wizardEngine, domain.FlowPasswordReset, codec)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	notificationHandler := handler.NewNotificationHandler(notifier)
	adminHandler := handler.NewAdminHandler(catalogService, subscriptionService)

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, sessions, codec)

	sessionGuard := middleware.Session(sessions, codec)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1")

	// --- Public routes (anonymous clients included) ---
	v1.POST("/auth/login", authHandler.Login)
	v1.GET("/session", authHandler.Session)
	v1.GET("/notifications", notificationHandler.List)
	v1.DELETE("/notifications/:id", notificationHandler.Dismiss)

	for flow, h := range map[string]*handler.WizardHandler{
		"/register":       registrationHandler,
		"/password-reset": resetHandler,
	} {
		g := v1.Group(flow)
		g.GET("/state", h.State)
		g.POST("/request-otp", h.RequestOTP)
		g.POST("/verify-otp", h.VerifyOTP)
		g.POST("/resend-otp", h.ResendOTP)
		g.POST("/complete", h.Complete)
		g.POST("/reset", h.Reset)
		g.POST("/back", h.Back)
	}

	// --- Authenticated routes ---
	authed := v1.Group("", sessionGuard)
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/subjects", catalogHandler.ListSubjects)
	authed.GET("/subjects/:subjectID/questions", catalogHandler.ListQuestions)
	authed.GET("/tarifs", subscriptionHandler.ListTarifs)
	authed.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
	authed.POST("/subscriptions", subscriptionHandler.CreateSubscription)
	authed.DELETE("/subscriptions/:id", subscriptionHandler.CancelSubscription)
	authed.POST("/payments/simulate", subscriptionHandler.SimulatePayment)

	// --- Admin routes ---
	admin := v1.Group("/admin", sessionGuard, adminOnly)
	admin.POST("/subjects", adminHandler.CreateSubject)
	admin.POST("/tarifs", adminHandler.CreateTarif)
	admin.PUT("/tarifs/:id", adminHandler.UpdateTarif)
	admin.DELETE("/tarifs/:id", adminHandler.DeleteTarif)

	// --- Operational endpoints (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
