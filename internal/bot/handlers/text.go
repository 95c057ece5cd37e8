package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/olegbarsukov/fitness-helper/internal/bot/keyboards"
	"github.com/olegbarsukov/fitness-helper/internal/catalog"
	"github.com/olegbarsukov/fitness-helper/internal/dialogue"
)

const noSessionText = "Я вас не понял. Введите /help для списка команд."

// TextHandler routes plain text into the user's active dialogue flow.
type TextHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

func NewTextHandler(api *tgbotapi.BotAPI, deps Dependencies) *TextHandler {
	return &TextHandler{api: api, deps: deps}
}

// Handle processes a non-command text message.
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	reply, handled, err := h.deps.Engine.HandleInput(ctx, message.From.ID, message.Text)
	if err != nil {
		return err
	}
	if !handled {
		_, err := h.api.Send(tgbotapi.NewMessage(message.Chat.ID, noSessionText))
		return err
	}
	return sendReply(h.api, h.deps.Catalog, message.Chat.ID, reply)
}

// sendReply sends an engine reply, attaching the activity keyboard when the
// prompt asks for an activity type.
func sendReply(api *tgbotapi.BotAPI, cat *catalog.Catalog, chatID int64, reply dialogue.Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.ActivityKeyboard {
		msg.ReplyMarkup = keyboards.Activities(cat.ButtonRows())
	}
	_, err := api.Send(msg)
	return err
}
