package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/olegbarsukov/fitness-helper/internal/bot"
	"github.com/olegbarsukov/fitness-helper/internal/bot/handlers"
	"github.com/olegbarsukov/fitness-helper/internal/catalog"
	"github.com/olegbarsukov/fitness-helper/internal/config"
	"github.com/olegbarsukov/fitness-helper/internal/dialogue"
	"github.com/olegbarsukov/fitness-helper/internal/domain"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
	"github.com/olegbarsukov/fitness-helper/internal/services"
	"github.com/olegbarsukov/fitness-helper/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		logger.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("Configuration loaded")

	activities, err := catalog.Load(cfg.ActivitiesFile)
	if err != nil {
		logger.Fatalf("Failed to load activity catalog: %v", err)
	}
	logger.Info("Activity catalog loaded", "activities", len(activities.Names()))

	var profiles domain.ProfileRepository
	switch cfg.Storage.Backend {
	case "postgres":
		profiles, err = storage.NewPostgresRepository(cfg.Storage.DB)
	default:
		profiles, err = storage.NewFileRepository(cfg.Storage.FilePath)
	}
	if err != nil {
		logger.Fatalf("Failed to open profile store: %v", err)
	}
	logger.Info("Profile store ready", "backend", cfg.Storage.Backend)

	var sessions dialogue.SessionStore
	if cfg.Sessions.Backend == "redis" {
		sessions, err = dialogue.NewRedisStore(cfg.Sessions.RedisHost, cfg.Sessions.RedisPort, cfg.Sessions.TTL)
		if err != nil {
			logger.Fatalf("Failed to connect session store: %v", err)
		}
	} else {
		sessions = dialogue.NewMemoryStore()
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	weather := services.NewWeatherClient(cfg.WeatherAPIKey, httpClient)
	food := services.NewFoodClient(httpClient)

	engine := dialogue.NewEngine(sessions, profiles, weather, food, activities)

	telegramBot, err := bot.NewBot(cfg.BotToken, handlers.Dependencies{
		Engine:  engine,
		Catalog: activities,
	})
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := telegramBot.Start(ctx); err != nil && ctx.Err() == nil {
		logger.Fatalf("Bot stopped with error: %v", err)
	}
	logger.Info("Bot stopped")
}
