package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/olegbarsukov/fitness-helper/internal/dialogue"
	"github.com/olegbarsukov/fitness-helper/internal/logger"
	"github.com/olegbarsukov/fitness-helper/internal/progress"
)

const welcomeText = "Добро пожаловать! Я помогу вам выполнять ежедневную норму по калориям и воде.\nВведите /help для списка команд."

const helpText = `Доступные команды:
/start - Начало работы
/set_profile - Настройка профиля
/log_water <количество> - Логирование воды
/log_food <название продукта> - Логирование еды
/log_workout - Логирование тренировок
/check_progress - Прогресс по воде и калориям`

const unknownCommandText = "Неизвестная команда. Используйте /help для просмотра доступных команд."

// CommandHandler handles slash commands.
type CommandHandler struct {
	api  *tgbotapi.BotAPI
	deps Dependencies
}

func NewCommandHandler(api *tgbotapi.BotAPI, deps Dependencies) *CommandHandler {
	return &CommandHandler{api: api, deps: deps}
}

// Handle processes a command message.
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID
	logger.Info("Handling command", "command", message.Command(), "user_id", userID)

	switch message.Command() {
	case "start":
		if err := h.deps.Engine.Register(ctx, userID); err != nil {
			return err
		}
		return h.sendText(chatID, welcomeText)

	case "help":
		return h.sendText(chatID, helpText)

	case "set_profile":
		reply, err := h.deps.Engine.StartProfileSetup(ctx, userID)
		if err != nil {
			return err
		}
		return h.sendReply(chatID, reply)

	case "log_water":
		reply, err := h.deps.Engine.LogWater(ctx, userID, message.CommandArguments())
		if err != nil {
			return err
		}
		return h.sendReply(chatID, reply)

	case "log_food":
		reply, err := h.deps.Engine.StartLogFood(ctx, userID, message.CommandArguments())
		if err != nil {
			return err
		}
		return h.sendReply(chatID, reply)

	case "log_workout":
		reply, err := h.deps.Engine.StartLogWorkout(ctx, userID)
		if err != nil {
			return err
		}
		return h.sendReply(chatID, reply)

	case "check_progress":
		return h.handleCheckProgress(ctx, userID, chatID)

	default:
		return h.sendText(chatID, unknownCommandText)
	}
}

func (h *CommandHandler) handleCheckProgress(ctx context.Context, userID, chatID int64) error {
	profile, guard, err := h.deps.Engine.Progress(ctx, userID)
	if err != nil {
		return err
	}
	if guard != nil {
		return h.sendReply(chatID, *guard)
	}

	report := progress.Build(profile)
	if err := h.sendText(chatID, report.Text()); err != nil {
		return err
	}

	if h.deps.Renderer == nil {
		return nil
	}
	png, err := h.deps.Renderer.Render(ctx, progress.BuildChartRequest(profile))
	if err != nil {
		logger.Warn("Chart rendering failed", "user_id", userID, "error", err)
		return nil
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "progress.png", Bytes: png})
	_, err = h.api.Send(photo)
	return err
}

func (h *CommandHandler) sendText(chatID int64, text string) error {
	_, err := h.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (h *CommandHandler) sendReply(chatID int64, reply dialogue.Reply) error {
	return sendReply(h.api, h.deps.Catalog, chatID, reply)
}
