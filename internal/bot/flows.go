package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/billionaire-caller/btcaller/internal/conversation"
	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/pkg/validation"
)

// handleGroupNameInput consumes the name for a group being created. An
// invalid name re-arms the flow so the user can just send another one.
func (b *Bot) handleGroupNameInput(ctx context.Context, chatID int64, text string) {
	name := strings.TrimSpace(text)

	if !validation.IsValidGroupName(name) {
		b.send(ctx, chatID,
			"⚠️ The group name is not valid. Only letters, numbers and the characters _ - are allowed, up to 50 characters.", nil)
		b.states.Set(chatID, conversation.State{Kind: conversation.AwaitingGroupName})
		return
	}

	err := b.repo.CreateGroup(chatID, name)
	switch {
	case errors.Is(err, models.ErrGroupExists):
		b.send(ctx, chatID, "⚠️ The group '"+name+"' already exists.", nil)
	case err != nil:
		b.logger.Error("Failed to create group ", "chat ", chatID, "error ", err)
		b.send(ctx, chatID, "⚠️ An error occurred. Please try again later.", nil)
		return
	default:
		b.send(ctx, chatID, "✅ Group '"+name+"' created successfully.", nil)
	}

	b.sendGroupList(ctx, chatID)
}

// handleWalletAddInput consumes one or more whitespace-separated addresses,
// validates and resolves each independently, and reports the partition.
func (b *Bot) handleWalletAddInput(ctx context.Context, chatID int64, group, text string) {
	addresses := strings.Fields(text)

	var added, invalid, failed []string
	for _, address := range addresses {
		if !validation.IsValidAddress(address) {
			invalid = append(invalid, address)
			continue
		}
		balance, err := b.balances.GetBalance(ctx, address)
		if err != nil {
			b.logger.Debug("Balance query failed ", "address ", address, "error ", err)
			failed = append(failed, address)
			continue
		}
		if err := b.repo.UpsertWallet(chatID, group, address, balance, nil); err != nil {
			if errors.Is(err, models.ErrGroupNotFound) {
				b.send(ctx, chatID, "⚠️ The group no longer exists.", nil)
				return
			}
			b.logger.Error("Failed to store wallet ", "chat ", chatID, "address ", address, "error ", err)
			b.send(ctx, chatID, "⚠️ An error occurred. Please try again later.", nil)
			return
		}
		added = append(added, address)
	}

	if reply := addWalletsReply(group, added, invalid, failed); reply != "" {
		b.send(ctx, chatID, reply, nil)
	}
	b.sendGroupWallets(ctx, chatID, group)
}

// handleWalletRemovalInput deletes each listed address unconditionally; no
// validation, no per-address feedback.
func (b *Bot) handleWalletRemovalInput(ctx context.Context, chatID int64, group, text string) {
	addresses := strings.Fields(text)

	if err := b.repo.DeleteWallets(chatID, group, addresses); err != nil {
		b.logger.Error("Failed to delete wallets ", "chat ", chatID, "error ", err)
		b.send(ctx, chatID, "⚠️ An error occurred. Please try again later.", nil)
		return
	}

	b.send(ctx, chatID, "✅ Wallets removed from group `"+group+"`.", nil)
	b.sendGroupWallets(ctx, chatID, group)
}

// handleTagInput sets the trimmed message text as the new tag, verbatim;
// an empty tag is allowed.
func (b *Bot) handleTagInput(ctx context.Context, chatID int64, address, text string) {
	tag := strings.TrimSpace(text)

	if err := b.repo.SetTag(chatID, address, tag); err != nil {
		if errors.Is(err, models.ErrWalletNotFound) {
			b.send(ctx, chatID, "⚠️ Wallet `"+address+"` is not in the system.", nil)
			return
		}
		b.logger.Error("Failed to set tag ", "chat ", chatID, "error ", err)
		b.send(ctx, chatID, "⚠️ An error occurred. Please try again later.", nil)
		return
	}

	b.send(ctx, chatID, "✅ The tag for wallet `"+address+"` has been updated to: `"+tag+"`.", nil)
}

func (b *Bot) sendGroupList(ctx context.Context, chatID int64) {
	groups, err := b.repo.ListGroups(chatID)
	if err != nil {
		b.logger.Error("Failed to list groups ", "chat ", chatID, "error ", err)
		return
	}
	text, keyboard := groupListView(groups)
	b.send(ctx, chatID, text, keyboard)
}

func (b *Bot) sendGroupWallets(ctx context.Context, chatID int64, group string) {
	wallets, err := b.repo.ListWallets(chatID, group)
	if err != nil {
		b.logger.Error("Failed to list wallets ", "chat ", chatID, "error ", err)
		return
	}
	text, keyboard := groupWalletsView(group, wallets)
	b.send(ctx, chatID, text, keyboard)
}
