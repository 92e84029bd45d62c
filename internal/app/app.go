package app

import (
	"bluecarbon-backend/internal/auth"
	"bluecarbon-backend/internal/config"
	"bluecarbon-backend/internal/constants"
	"bluecarbon-backend/internal/credits"
	"bluecarbon-backend/internal/database"
	"bluecarbon-backend/internal/health"
	"bluecarbon-backend/internal/intake"
	"bluecarbon-backend/internal/issuance"
	"bluecarbon-backend/internal/middleware"
	"bluecarbon-backend/internal/registry"
	"bluecarbon-backend/internal/stats"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis clients so main can verify
// connections at startup.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Session (Redis); the Redis client also feeds the health marker
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// Health routes (no auth)
	healthHandlers := &health.Handlers{Rdb: rdb, HealthAdminKey: cfg.HealthAdminKey}
	app.Get("/", healthHandlers.JSON)
	app.Get("/reset", healthHandlers.Reset)
	app.Get("/health/json", healthHandlers.JSON)

	// Auth routes (no auth middleware)
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{UserFinder: userFinder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Post("/logout", middleware.RequireAuth(), authHandlers.Logout)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil && rdb != nil {
		policy := credits.Policy{CreditsPerHectare: cfg.CreditsPerHectare}

		// Evidence intake
		intakeService := &intake.Service{
			Provider: &intake.GeminiClient{APIKey: cfg.GeminiAPIKey},
			Policy:   policy,
		}
		intakeHandlers := &intake.Handlers{Service: intakeService}
		intakeGroup := app.Group("/api/v1/intake", middleware.RequireAuth())
		intakeGroup.Post("/analyze-image", middleware.AuthorizePermission(constants.SubmitProject), intakeHandlers.AnalyzeImage)

		// Project registry
		registryService := &registry.Service{DB: db, Policy: policy}
		registryHandlers := &registry.Handlers{Service: registryService}
		projectsGroup := app.Group("/api/v1/projects", middleware.RequireAuth())
		projectsGroup.Post("/create-project", middleware.AuthorizePermission(constants.SubmitProject), registryHandlers.CreateProject)
		projectsGroup.Get("/get-project/:project_id", middleware.AuthorizePermission(constants.ViewData), registryHandlers.GetProject)
		projectsGroup.Get("/get-all-projects", middleware.AuthorizePermission(constants.ViewData), registryHandlers.GetAllProjects)

		// Issuance
		var minter issuance.Minter
		if cfg.LedgerBridgeURL != "" {
			minter = &issuance.LedgerHTTPMinter{BaseURL: cfg.LedgerBridgeURL, APIKey: cfg.LedgerAPIKey}
		} else {
			log.Warn().Msg("LEDGER_BRIDGE_URL not set; using sandbox minter")
			minter = issuance.SandboxMinter{}
		}
		issuanceService := &issuance.Service{Registry: registryService, Minter: minter}
		issuanceHandlers := &issuance.Handlers{Service: issuanceService}
		issuanceGroup := app.Group("/api/v1/issuance", middleware.RequireAuth())
		issuanceGroup.Post("/approve-project", middleware.AuthorizePermission(constants.ApproveProject), issuanceHandlers.ApproveProject)

		// Stats
		statsService := &stats.Service{DB: db}
		statsHandlers := &stats.Handlers{Service: statsService}
		statsGroup := app.Group("/api/v1/stats", middleware.RequireAuth())
		statsGroup.Get("/get-summary", middleware.AuthorizePermission(constants.ViewData), statsHandlers.GetSummary)
	}

	return app, db, rdb, nil
}
