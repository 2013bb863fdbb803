//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
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
	"github.com/faizxmak/latilong/internal/infrastructure/repository/chatrepo"
	"github.com/faizxmak/latilong/internal/infrastructure/repository/travelrepo"
	"github.com/faizxmak/latilong/internal/infrastructure/repository/userrepo"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver"
	"github.com/faizxmak/latilong/internal/interfaces/httpserver/handlers"
)

var domainSet = wire.NewSet(
	chatrepo.NewRepository,
	wire.Bind(new(chat.Repository), new(*chatrepo.Repository)),
	chatrepo.NewMessageRepository,
	wire.Bind(new(chat.MessageRepository), new(*chatrepo.MessageRepository)),
	userrepo.NewRepository,
	wire.Bind(new(user.Repository), new(*userrepo.Repository)),
	travelrepo.NewRepository,
	wire.Bind(new(travel.Repository), new(*travelrepo.Repository)),
	chat.NewConversationService,
	user.NewService,
	travel.NewCatalogService,
	newCompletionClient,
	wire.Bind(new(chat.Provider), new(*completion.Client)),
	chat.NewTurnRunner,
)

var httpSet = wire.NewSet(
	newTokenManager,
	oauth.NewExchanger,
	newHandlerProvider,
	httpserver.New,
)

// BuildApplication assembles the full service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		domainSet,
		httpSet,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newCompletionClient(cfg *config.Config) *completion.Client {
	return completion.NewClient(completion.Config{
		BaseURL:   cfg.CompletionAPIURL,
		APIKey:    cfg.CompletionAPIKey,
		Model:     cfg.CompletionModel,
		MaxTokens: cfg.MaxOutputTokens,
		Timeout:   cfg.CompletionTimeout,
	})
}

func newTokenManager(cfg *config.Config) *auth.TokenManager {
	return auth.NewTokenManager(cfg.SessionSecret, cfg.ServiceName, cfg.TokenTTL)
}

func newHandlerProvider(
	cfg *config.Config,
	accounts *user.Service,
	conversations *chat.ConversationService,
	turns *chat.TurnRunner,
	catalog *travel.CatalogService,
	tokens *auth.TokenManager,
	exchanger *oauth.Exchanger,
	log zerolog.Logger,
) *handlers.Provider {
	return handlers.NewProvider(cfg, accounts, conversations, turns, catalog, tokens, exchanger, log)
}
