package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/deckhubapp/deckhub/backend/config"
	"github.com/deckhubapp/deckhub/backend/handlers"
	"github.com/deckhubapp/deckhub/backend/middleware"
	webmodels "github.com/deckhubapp/deckhub/backend/models"
	webservices "github.com/deckhubapp/deckhub/backend/services"
	"github.com/deckhubapp/deckhub/deckhub"
	"github.com/deckhubapp/deckhub/deckhub/catalog"
	"github.com/deckhubapp/deckhub/deckhub/database"
	"github.com/deckhubapp/deckhub/deckhub/database/repositories"
	"github.com/deckhubapp/deckhub/deckhub/deck"
	"github.com/deckhubapp/deckhub/deckhub/engagement"
	"github.com/deckhubapp/deckhub/deckhub/logger"
	"github.com/deckhubapp/deckhub/deckhub/services"
	"github.com/deckhubapp/deckhub/deckhub/social"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := "../config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	customHandler := logger.NewHandler("DeckHub-Backend")
	slog.SetDefault(slog.New(customHandler))

	slog.Info("Starting DeckHub Backend API",
		slog.String("version", version),
		slog.String("commit", commit),
		slog.String("type", "backend"))

	cfg, err := deckhub.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	webCfg := config.NewWebAppConfig(cfg, cfg.Web.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	slog.Info("Connecting to database...")
	db, err := database.New(ctx, database.DBConfig{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Database,
		PoolSize: cfg.DB.PoolSize,
	})
	if err != nil {
		slog.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize schema", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("Database connected successfully")

	repos := webmodels.NewRepositories(
		repositories.NewUserRepository(db.BunDB()),
		repositories.NewCardRepository(db.BunDB()),
		repositories.NewDeckRepository(db.BunDB()),
		repositories.NewCommentRepository(db.BunDB()),
		repositories.NewNotificationRepository(db.BunDB()),
		repositories.NewEventRepository(db.BunDB()),
	)

	// Domain services share one catalog so every lookup hits the same cache
	cardCatalog := catalog.NewService(repos.Card)
	deckService := deck.NewService(repos.Deck, cardCatalog)
	emitter := social.NewEmitter(repos.Notification)
	engagementService := engagement.NewService(repos.Deck, repos.User, repos.Comment, cardCatalog, emitter)
	commentService := social.NewCommentService(repos.Comment, social.NewOwners(repos.Deck), emitter)

	var spaces *services.SpacesService
	if cfg.Spaces.Key != "" {
		spaces, err = services.NewSpacesService(
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.CardRoot,
		)
		if err != nil {
			slog.Error("Failed to initialize Spaces", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}
	cardImport := services.NewCardImportService(repos.Card, cardCatalog, spaces)

	sessionService := webservices.NewSessionService(webCfg)

	app := fiber.New(fiber.Config{
		AppName:      "DeckHub Backend API",
		ServerHeader: "DeckHub-Backend",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.SecurityHeaders())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Web.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization,X-Requested-With,Cookie",
		AllowCredentials: true,
	}))
	app.Use(middleware.LoggingMiddleware())

	webApp := &handlers.WebApp{
		Config:         webCfg,
		DB:             db,
		Repos:          repos,
		Catalog:        cardCatalog,
		DeckService:    deckService,
		Engagement:     engagementService,
		Comments:       commentService,
		CardImport:     cardImport,
		SessionService: sessionService,
		Version:        version,
		Commit:         commit,
	}

	setupRoutes(app, webApp, sessionService)

	address := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	slog.Info("Starting backend server", slog.String("address", address))

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
		}
	}()

	<-c
	slog.Info("Shutting down backend server...")

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		slog.Error("Server shutdown error", slog.String("error", err.Error()))
	}

	db.Close()

	slog.Info("Backend server shutdown complete")
}

// setupRoutes configures all application routes
func setupRoutes(app *fiber.App, webApp *handlers.WebApp, sessions *webservices.SessionService) {
	app.Get("/health", handlers.HealthCheck(webApp))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DeckHub Backend API",
			"version": webApp.Version,
			"status":  "running",
		})
	})

	// Authentication routes
	auth := app.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimit(), handlers.Login(webApp))
	auth.Post("/logout", handlers.Logout(webApp))
	app.Get("/api/auth/validate", handlers.ValidateSession(webApp))

	api := app.Group("/api")
	api.Use(middleware.APIRateLimit())

	// Public read routes
	cards := api.Group("/cards")
	cards.Get("/", handlers.CardsSearch(webApp))
	cards.Get("/suggest", handlers.CardsSuggest(webApp))
	cards.Get("/:id", handlers.CardsDetail(webApp))

	decks := api.Group("/decks")
	decks.Get("/", handlers.DecksBrowse(webApp))
	decks.Get("/:id", handlers.DecksDetail(webApp))

	events := api.Group("/events")
	events.Get("/", handlers.EventsUpcoming(webApp))
	events.Get("/:id", handlers.EventsDetail(webApp))

	api.Get("/comments/:targetType/:targetId", handlers.CommentsByTarget(webApp))

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthRequired(sessions))

	authed.Get("/me/decks", handlers.DecksMine(webApp))

	write := authed.Group("")
	write.Use(middleware.WriteRateLimit())

	write.Post("/decks", handlers.DecksCreate(webApp))
	write.Put("/decks/:id", handlers.DecksUpdate(webApp))
	write.Delete("/decks/:id", handlers.DecksDelete(webApp))
	write.Post("/decks/:id/clone", handlers.DecksClone(webApp))

	write.Post("/decks/:id/like", handlers.DeckLikeToggle(webApp))
	write.Post("/cards/:id/favorite", handlers.CardFavoriteToggle(webApp))
	write.Post("/comments/:id/like", handlers.CommentLikeToggle(webApp))

	write.Post("/comments", handlers.CommentsCreate(webApp))

	notifications := authed.Group("/notifications")
	notifications.Get("/", handlers.NotificationsList(webApp))
	notifications.Get("/unread", handlers.NotificationsUnreadCount(webApp))
	notifications.Post("/:id/read", handlers.NotificationsMarkRead(webApp))
	notifications.Post("/read-all", handlers.NotificationsMarkAllRead(webApp))

	// Protected admin routes
	admin := app.Group("/admin")
	admin.Use(middleware.AuthRequired(sessions))
	admin.Use(middleware.AdminRequired())
	admin.Get("/api/dashboard/stats", handlers.DashboardStatsAPI(webApp))
	admin.Post("/cards", handlers.AdminCardsCreate(webApp))
	admin.Put("/cards/:id", handlers.AdminCardsUpdate(webApp))
	admin.Delete("/cards/:id", handlers.AdminCardsDelete(webApp))
	admin.Post("/cards/import", handlers.AdminCardsImport(webApp))
	admin.Post("/events", handlers.EventsCreate(webApp))
	admin.Delete("/events/:id", handlers.EventsDelete(webApp))

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
