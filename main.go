package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gunceblog/gunce-backend/backend/config"
	"github.com/gunceblog/gunce-backend/backend/handlers"
	"github.com/gunceblog/gunce-backend/backend/middleware"
	webmodels "github.com/gunceblog/gunce-backend/backend/models"
	webservices "github.com/gunceblog/gunce-backend/backend/services"
	"github.com/gunceblog/gunce-backend/cmd"
	"github.com/gunceblog/gunce-backend/gunce"
	"github.com/gunceblog/gunce-backend/gunce/database"
	"github.com/gunceblog/gunce-backend/gunce/database/repositories"
	"github.com/gunceblog/gunce-backend/gunce/economy"
	"github.com/gunceblog/gunce-backend/gunce/economy/badges"
	"github.com/gunceblog/gunce-backend/gunce/economy/crates"
	"github.com/gunceblog/gunce-backend/gunce/economy/daily"
	"github.com/gunceblog/gunce-backend/gunce/economy/leveling"
	economyutils "github.com/gunceblog/gunce-backend/gunce/economy/utils"
	"github.com/gunceblog/gunce-backend/gunce/logger"
	"github.com/gunceblog/gunce-backend/gunce/services"
	"github.com/gunceblog/gunce-backend/internal/domain/profile"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	// Subcommands (migrate) run through cobra; the bare binary is the server
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		cmd.Execute()
		return
	}

	customHandler := logger.NewHandler("Gunce")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting Gunce Economy Service",
		slog.String("version", version),
		slog.String("commit", commit))

	debug := flag.Bool("debug", false, "enable debug mode")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := gunce.LoadConfig(*path)
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(-1)
	}
	slog.Info("Configuration loaded successfully")

	webCfg := config.NewWebAppConfig(cfg, *debug)

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbConfig := database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	}

	db, err := database.New(ctx, dbConfig)
	if err != nil {
		logger.LogError("Database connection failed", err,
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize database schema", err)
		os.Exit(-1)
	}
	slog.Info("Database schema initialized successfully")

	// Repositories
	profileRepo := repositories.NewProfileRepository(db.BunDB())
	openingRepo := repositories.NewCrateOpeningRepository(db.BunDB())
	repos := webmodels.NewRepositories(profileRepo, openingRepo)

	// Economy core
	txManager := economyutils.NewEconomicTransactionManager(db.BunDB())
	calculator := leveling.NewCalculator(nil)
	awarder := badges.NewAwarder(txManager, calculator)

	// Daily rewards reset on the local calendar day of the user base
	istanbul, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		slog.Warn("Failed to load Europe/Istanbul, falling back to UTC",
			slog.String("error", err.Error()))
		istanbul = time.UTC
	}
	dailyService := daily.NewService(txManager, istanbul)

	profileService := profile.NewService(profileRepo, calculator)

	crateManager := crates.NewManager(txManager, openingRepo)
	crateManager.Locks().StartCleanupRoutine(context.Background())

	// Frame artwork on DigitalOcean Spaces
	var spacesService *services.SpacesService
	if cfg.Spaces.Key != "" {
		spacesService = services.NewSpacesService(
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.FrameRoot,
		)
	} else {
		slog.Warn("Spaces not configured, frame image URLs will be empty")
	}

	// Economy monitor
	monitorCtx, monitorCancel := context.WithCancel(context.Background())
	defer monitorCancel()
	monitor := economy.NewMonitor(txManager.GetDB(), profileRepo, openingRepo)
	monitor.Start(monitorCtx)

	sessionService := webservices.NewSessionService(webCfg)

	app := fiber.New(fiber.Config{
		AppName:      "Gunce Economy Service",
		ServerHeader: "Gunce",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000,https://gunce.blog",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:         webCfg,
		DB:             db,
		Repos:          repos,
		SpacesService:  spacesService,
		SessionService: sessionService,
		Calculator:     calculator,
		BadgeAwarder:   awarder,
		DailyService:   dailyService,
		CrateManager:   crateManager,
		Monitor:        monitor,
		ProfileService: profileService,
		Version:        version,
		Commit:         commit,
	}

	setupRoutes(app, webApp, sessionService)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	slog.Info("Server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp, sessionService *webservices.SessionService) {
	// Health check endpoint
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Gunce Economy Service",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Public catalog and leaderboard
	api.Get("/catalog", handlers.Catalog(webApp))
	api.Get("/leaderboard", handlers.Leaderboard(webApp))

	// Profile routes
	profiles := api.Group("/profiles")
	profiles.Use(middleware.AuthRequired(sessionService))

	profiles.Post("/", middleware.AdminRequired(), handlers.CreateProfile(webApp))
	profiles.Get("/:id", handlers.GetProfile(webApp))
	profiles.Get("/:id/summary", handlers.ProfileSummary(webApp))
	profiles.Get("/:id/openings", middleware.SelfOrAdminRequired(), handlers.RecentOpenings(webApp))

	// Economy mutations
	profiles.Post("/:id/badges",
		middleware.AdminRequired(),
		middleware.AuditLogMiddleware("award_badge"),
		handlers.AwardBadge(webApp))
	profiles.Post("/:id/daily/claim",
		middleware.SelfOrAdminRequired(),
		middleware.EconomyRateLimit(),
		middleware.AuditLogMiddleware("daily_claim"),
		handlers.ClaimDaily(webApp))
	profiles.Post("/:id/crates/open",
		middleware.SelfOrAdminRequired(),
		middleware.EconomyRateLimit(),
		middleware.AuditLogMiddleware("open_crate"),
		handlers.OpenCrate(webApp))

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(sessionService))
	admin.Use(middleware.AdminRequired())
	admin.Get("/economy/stats", handlers.EconomyStats(webApp))

	// Fallback for unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		slog.Warn("No route matched for request",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		return c.Status(404).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})
}
