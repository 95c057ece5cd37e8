package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/olegbarsukov/fitness-helper/internal/bot/handlers"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
)

// Bot runs the telegram long-polling loop.
type Bot struct {
	api           *tgbotapi.BotAPI
	updateHandler *handlers.UpdateHandler
}

func NewBot(token string, deps handlers.Dependencies) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Bot authorized", "account", api.Self.UserName)
	return &Bot{
		api:           api,
		updateHandler: handlers.NewUpdateHandler(api, deps),
	}, nil
}

// Start polls for updates until the context is cancelled. Each update is
// handled in its own goroutine; the stores serialize shared mutations.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	logger.Info("Bot is now listening for updates")

	for {
		select {
		case <-ctx.Done():
			logger.Info("Bot is shutting down")
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			go func(update tgbotapi.Update) {
				if err := b.updateHandler.Handle(ctx, update); err != nil {
					logger.Error("Error handling update", "error", err)
				}
			}(update)
		}
	}
}
