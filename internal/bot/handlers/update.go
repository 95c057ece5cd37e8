package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// UpdateHandler routes telegram updates to the command and text handlers.
type UpdateHandler struct {
	commandHandler *CommandHandler
	textHandler    *TextHandler
}

// NewUpdateHandler creates a new update handler.
func NewUpdateHandler(api *tgbotapi.BotAPI, deps Dependencies) *UpdateHandler {
	return &UpdateHandler{
		commandHandler: NewCommandHandler(api, deps),
		textHandler:    NewTextHandler(api, deps),
	}
}

// Handle processes a telegram update.
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message)
	}

	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message)
	}

	return nil
}
