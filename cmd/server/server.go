package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/faizxmak/latilong/internal/config"
	"github.com/faizxmak/latilong/internal/domain/chat"
	"github.com/faizxmak/latilong/internal/domain/travel"
	"github.com/faizxmak/latilong/internal/domain/user"
	"github.com/faizxmak/latilong/internal/infrastructure/auth"
	"github.com/faizxmak/latilong/internal/infrastructure/completion"
	"github.com/faizxmak/latilong/internal/infrastructure/database"
	"github.com/faizxmak/latilong/internal/infrastructure/logger"
	"github.com/faizxmak/latilong/internal/infrastructure/oauth"
	"github.com/faizxmak/latilong/internal/infrastructure/observability"
	"github.com/faizxmak/latilong/internal/infrastructure/repository/chatrepo"
	"github.com/faizxmak/latilong/internal/infrastructure/repository/travelrepo"
	"github.com/faizxmak/latilong/internal/infrastructure/repository/userrepo"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

// Application bundles the long-running pieces of the service.
type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(ctx, database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	conversationRepository := chatrepo.NewRepository(db)
	messageRepository := chatrepo.NewMessageRepository(db)
	userRepository := userrepo.NewRepository(db)
	travelRepository := travelrepo.NewRepository(db)

	conversationService := chat.NewConversationService(conversationRepository, messageRepository, log)
	accountService := user.NewService(userRepository, log)
	catalogService := travel.NewCatalogService(travelRepository, log)

	if cfg.SeedCatalog {
		if err := catalogService.Seed(ctx); err != nil {
			log.Fatal().Err(err).Msg("seed travel catalog")
		}
	}

	completionClient := completion.NewClient(completion.Config{
		BaseURL:   cfg.CompletionAPIURL,
		APIKey:    cfg.CompletionAPIKey,
		Model:     cfg.CompletionModel,
		MaxTokens: cfg.MaxOutputTokens,
		Timeout:   cfg.CompletionTimeout,
	})
	turnRunner := chat.NewTurnRunner(conversationService, completionClient, log)

	tokenManager := auth.NewTokenManager(cfg.SessionSecret, cfg.ServiceName, cfg.TokenTTL)
	exchanger := oauth.NewExchanger(cfg, log)

	handlerProvider := handlers.NewProvider(
		cfg,
		accountService,
		conversationService,
		turnRunner,
		catalogService,
		tokenManager,
		exchanger,
		log,
	)

	httpServer := httpserver.New(cfg, log, handlerProvider, tokenManager, db)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
