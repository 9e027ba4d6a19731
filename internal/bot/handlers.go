package bot

import (
	"context"
	"errors"
	"strings"

	tgbot "github.com/go-telegram/bot"
	tgModels "github.com/go-telegram/bot/models"

	"github.com/billionaire-caller/btcaller/internal/conversation"
	"github.com/billionaire-caller/btcaller/internal/models"
)

func (b *Bot) onStart(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	if update.Message == nil {
		return
	}
	b.send(ctx, update.Message.Chat.ID, welcomeText, mainMenuKeyboard())
}

func (b *Bot) onMainMenu(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	b.answer(ctx, update.CallbackQuery.ID, "")
	b.edit(ctx, chatID, messageID, welcomeText, mainMenuKeyboard())
}

func (b *Bot) onCreateGroup(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	b.answer(ctx, update.CallbackQuery.ID, "")
	b.edit(ctx, chatID, messageID, "Send the name of the group you want to create.", nil)
	b.states.Set(chatID, conversation.State{Kind: conversation.AwaitingGroupName})
}

func (b *Bot) onListGroups(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}

	groups, err := b.repo.ListGroups(chatID)
	if err != nil {
		b.logger.Error("Failed to list groups ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}

	b.answer(ctx, update.CallbackQuery.ID, "")
	text, keyboard := groupListView(groups)
	b.edit(ctx, chatID, messageID, text, keyboard)
}

func (b *Bot) onViewGroup(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	group := strings.TrimPrefix(update.CallbackQuery.Data, "view_group_")

	exists, err := b.repo.GroupExists(chatID, group)
	if err != nil {
		b.logger.Error("Failed to check group ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}
	if !exists {
		// Stale button: the group was deleted after the list was rendered.
		b.answer(ctx, update.CallbackQuery.ID, "The group no longer exists.")
		b.edit(ctx, chatID, messageID, "⚠️ The group no longer exists.", nil)
		return
	}

	wallets, err := b.repo.ListWallets(chatID, group)
	if err != nil {
		b.logger.Error("Failed to list wallets ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}

	b.answer(ctx, update.CallbackQuery.ID, "")
	text, keyboard := groupWalletsView(group, wallets)
	b.edit(ctx, chatID, messageID, text, keyboard)
}

func (b *Bot) onDeleteGroup(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	group := strings.TrimPrefix(update.CallbackQuery.Data, "delete_group_")

	if err := b.repo.DeleteGroup(chatID, group); err != nil {
		b.logger.Error("Failed to delete group ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}

	b.answer(ctx, update.CallbackQuery.ID, "✅ Group `"+group+"` deleted.")
	b.refreshGroupList(ctx, chatID, messageID)
}

func (b *Bot) onToggleNotifications(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	group := strings.TrimPrefix(update.CallbackQuery.Data, "toggle_notifications_")

	enabled, err := b.repo.ToggleNotifications(chatID, group)
	if err != nil {
		if errors.Is(err, models.ErrGroupNotFound) {
			b.answer(ctx, update.CallbackQuery.ID, "⚠️ The group does not exist.")
			return
		}
		b.logger.Error("Failed to toggle notifications ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}

	status := "🔕 Notifications disabled"
	if enabled {
		status = "🔔 Notifications enabled"
	}
	b.answer(ctx, update.CallbackQuery.ID, status+" for group '"+group+"'.")
	b.refreshGroupList(ctx, chatID, messageID)
}

func (b *Bot) onAddWallet(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	group := strings.TrimPrefix(update.CallbackQuery.Data, "add_wallet_")

	exists, err := b.repo.GroupExists(chatID, group)
	if err != nil {
		b.logger.Error("Failed to check group ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}
	if !exists {
		b.answer(ctx, update.CallbackQuery.ID, "The group does not exist.")
		b.edit(ctx, chatID, messageID, "⚠️ The group no longer exists.", nil)
		return
	}

	b.answer(ctx, update.CallbackQuery.ID, "")
	b.edit(ctx, chatID, messageID,
		"Send the wallet address(es) to add to group `"+group+"`, separated by spaces.", nil)
	b.states.Set(chatID, conversation.State{Kind: conversation.AwaitingWalletAdd, Group: group})
}

func (b *Bot) onRemoveWallet(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	chatID, messageID, ok := callback(update)
	if !ok {
		return
	}
	group := strings.TrimPrefix(update.CallbackQuery.Data, "remove_wallet_")

	wallets, err := b.repo.ListWallets(chatID, group)
	if err != nil {
		b.logger.Error("Failed to list wallets ", "chat ", chatID, "error ", err)
		b.answerError(ctx, update.CallbackQuery.ID)
		return
	}
	if len(wallets) == 0 {
		b.answer(ctx, update.CallbackQuery.ID, "No wallets to remove.")
		b.edit(ctx, chatID, messageID, "⚠️ There are no wallets in the group.", nil)
		return
	}

	b.answer(ctx, update.CallbackQuery.ID, "")
	b.edit(ctx, chatID, messageID,
		"Send the wallet addresses to remove from group `"+group+"`, separated by spaces.", nil)
	b.states.Set(chatID, conversation.State{Kind: conversation.AwaitingWalletRemoval, Group: group})
}

// onEditTag handles "/edit_tag <address>".
func (b *Bot) onEditTag(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.Fields(update.Message.Text)
	if len(args) < 2 {
		b.send(ctx, chatID, "⚠️ You must provide a wallet address. Example: `/edit_tag <wallet_address>`", nil)
		return
	}
	address := args[1]

	if _, err := b.repo.GetWalletTag(chatID, address); err != nil {
		if errors.Is(err, models.ErrWalletNotFound) {
			b.send(ctx, chatID, "⚠️ Wallet `"+address+"` is not in the system.", nil)
			return
		}
		b.logger.Error("Failed to look up wallet tag ", "chat ", chatID, "error ", err)
		b.send(ctx, chatID, "⚠️ An error occurred. Please try again later.", nil)
		return
	}

	b.states.Set(chatID, conversation.State{Kind: conversation.AwaitingTagEdit, Address: address})
	b.send(ctx, chatID, "Send the new tag for wallet: `"+address+"`", nil)
}

// onText is the default handler: free text is interpreted according to the
// chat's active conversation state.
func (b *Bot) onText(ctx context.Context, _ *tgbot.Bot, update *tgModels.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	state := b.states.Take(chatID)
	switch state.Kind {
	case conversation.AwaitingGroupName:
		b.handleGroupNameInput(ctx, chatID, text)
	case conversation.AwaitingWalletAdd:
		b.handleWalletAddInput(ctx, chatID, state.Group, text)
	case conversation.AwaitingWalletRemoval:
		b.handleWalletRemovalInput(ctx, chatID, state.Group, text)
	case conversation.AwaitingTagEdit:
		b.handleTagInput(ctx, chatID, state.Address, text)
	default:
		b.send(ctx, chatID, dontUnderstandText, nil)
		b.send(ctx, chatID, welcomeText, mainMenuKeyboard())
	}
}

// refreshGroupList re-renders the group list in place after a mutation.
func (b *Bot) refreshGroupList(ctx context.Context, chatID int64, messageID int) {
	groups, err := b.repo.ListGroups(chatID)
	if err != nil {
		b.logger.Error("Failed to list groups ", "chat ", chatID, "error ", err)
		return
	}
	text, keyboard := groupListView(groups)
	b.edit(ctx, chatID, messageID, text, keyboard)
}
