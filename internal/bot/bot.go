// Package bot implements the Telegram surface: commands, inline keyboards,
// and the multi-step input flows driven by the conversation state machine.
package bot

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/billionaire-caller/btcaller/internal/conversation"
	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

// telegramAPI is the slice of the Telegram Bot API the handlers use.
// *tgbot.Bot satisfies it; tests substitute a recorder.
type telegramAPI interface {
	SendMessage(ctx context.Context, params *tgbot.SendMessageParams) (*tgModels.Message, error)
	EditMessageText(ctx context.Context, params *tgbot.EditMessageTextParams) (*tgModels.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *tgbot.AnswerCallbackQueryParams) (bool, error)
	SetMyCommands(ctx context.Context, params *tgbot.SetMyCommandsParams) (bool, error)
}

type Bot struct {
	logger *logger.Logger

	api telegramAPI
	tg  *tgbot.Bot

	repo     models.Repository
	balances models.BalanceService
	states   *conversation.Manager
}

// NewBot builds the bot and registers all command and callback handlers.
func NewBot(token string, repo models.Repository, balances models.BalanceService, logger *logger.Logger) (*Bot, error) {
	b := &Bot{
		logger:   logger,
		repo:     repo,
		balances: balances,
		states:   conversation.NewManager(),
	}

	tg, err := tgbot.New(token, tgbot.WithDefaultHandler(b.onText))
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.tg = tg
	b.api = tg

	tg.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, b.onStart)
	tg.RegisterHandler(tgbot.HandlerTypeMessageText, "/edit_tag", tgbot.MatchTypePrefix, b.onEditTag)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "create_group", tgbot.MatchTypeExact, b.onCreateGroup)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "list_groups", tgbot.MatchTypeExact, b.onListGroups)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "main_menu", tgbot.MatchTypeExact, b.onMainMenu)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "view_group_", tgbot.MatchTypePrefix, b.onViewGroup)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "delete_group_", tgbot.MatchTypePrefix, b.onDeleteGroup)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "add_wallet_", tgbot.MatchTypePrefix, b.onAddWallet)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "remove_wallet_", tgbot.MatchTypePrefix, b.onRemoveWallet)
	tg.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "toggle_notifications_", tgbot.MatchTypePrefix, b.onToggleNotifications)

	return b, nil
}

// Run registers the bot commands and serves updates via long polling until
// the context is cancelled.
func (b *Bot) Run(ctx context.Context) {
	if _, err := b.api.SetMyCommands(ctx, &tgbot.SetMyCommandsParams{
		Commands: []tgModels.BotCommand{
			{Command: "start", Description: "Show the main menu"},
			{Command: "edit_tag", Description: "Edit the tag of a wallet"},
		},
	}); err != nil {
		b.logger.Warn("Failed to register bot commands ", "error ", err)
	}

	b.logger.Info("Telegram bot started")
	b.tg.Start(ctx)
}

// SendNotification implements models.NotificationService for the monitor.
func (b *Bot) SendNotification(ctx context.Context, chatID int64, text string) {
	b.send(ctx, chatID, text, nil)
}

func (b *Bot) send(ctx context.Context, chatID int64, text string, keyboard *tgModels.InlineKeyboardMarkup) {
	params := &tgbot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: tgModels.ParseModeMarkdownV1,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.api.SendMessage(ctx, params); err != nil {
		b.logger.Error("Failed to send message ", "chat ", chatID, "error ", err)
	}
}

func (b *Bot) edit(ctx context.Context, chatID int64, messageID int, text string, keyboard *tgModels.InlineKeyboardMarkup) {
	params := &tgbot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: tgModels.ParseModeMarkdownV1,
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}
	if _, err := b.api.EditMessageText(ctx, params); err != nil {
		b.logger.Error("Failed to edit message ", "chat ", chatID, "error ", err)
	}
}

func (b *Bot) answer(ctx context.Context, callbackID, text string) {
	params := &tgbot.AnswerCallbackQueryParams{CallbackQueryID: callbackID}
	if text != "" {
		params.Text = text
	}
	if _, err := b.api.AnswerCallbackQuery(ctx, params); err != nil {
		b.logger.Error("Failed to answer callback query ", "error ", err)
	}
}

// answerError reports a failure to the user without leaking internals.
func (b *Bot) answerError(ctx context.Context, callbackID string) {
	if _, err := b.api.AnswerCallbackQuery(ctx, &tgbot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            "An error occurred. Please try again later.",
		ShowAlert:       true,
	}); err != nil {
		b.logger.Error("Failed to answer callback query ", "error ", err)
	}
}

// callback unpacks the chat and message a button press refers to. The
// second return is false for inaccessible messages (e.g. too old).
func callback(update *tgModels.Update) (chatID int64, messageID int, ok bool) {
	if update.CallbackQuery == nil || update.CallbackQuery.Message.Message == nil {
		return 0, 0, false
	}
	msg := update.CallbackQuery.Message.Message
	return msg.Chat.ID, msg.ID, true
}
