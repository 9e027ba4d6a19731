package bot

import (
	"fmt"
	"strings"

	tgModels "github.com/go-telegram/bot/models"

	"github.com/billionaire-caller/btcaller/internal/models"
)

const welcomeText = "✨ *Welcome to Billionaire Caller!* ✨\n\n" +
	"💼 *Solana Group & Wallet Manager* 🚀\n\n" +
	"🔹 Organize and monitor your wallets in custom groups.\n" +
	"🔹 Get automatic notifications about balance changes.\n" +
	"🔹 Built to maximize your experience in the blockchain world.\n\n" +
	"⬇️ Use the buttons below to get started."

const dontUnderstandText = "⚠️ I don't understand this command or message.\n" +
	"Please use the main menu to interact."

func mainMenuKeyboard() *tgModels.InlineKeyboardMarkup {
	return &tgModels.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgModels.InlineKeyboardButton{
			{{Text: "📂 Create Group", CallbackData: "create_group"}},
			{{Text: "📋 List Groups", CallbackData: "list_groups"}},
		},
	}
}

func backRow(target string) []tgModels.InlineKeyboardButton {
	return []tgModels.InlineKeyboardButton{{Text: "🔙 Back", CallbackData: target}}
}

// groupListView renders the chat's groups with their notification status
// and per-group action buttons.
func groupListView(groups []*models.Group) (string, *tgModels.InlineKeyboardMarkup) {
	if len(groups) == 0 {
		keyboard := &tgModels.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgModels.InlineKeyboardButton{backRow("main_menu")},
		}
		return "⚠️ You have no groups created yet.", keyboard
	}

	var rows [][]tgModels.InlineKeyboardButton
	for _, group := range groups {
		status := "🔴"
		if group.NotificationsEnabled {
			status = "🟢"
		}
		toggle := "🔔 Enable"
		if group.NotificationsEnabled {
			toggle = "🔕 Disable"
		}
		rows = append(rows, []tgModels.InlineKeyboardButton{
			{Text: fmt.Sprintf("🗂 %s (%s)", group.Name, status), CallbackData: "view_group_" + group.Name},
			{Text: "❌ Delete", CallbackData: "delete_group_" + group.Name},
			{Text: toggle, CallbackData: "toggle_notifications_" + group.Name},
		})
	}
	rows = append(rows, backRow("main_menu"))

	text := "*📂 Your groups*\n\n🔹 Manage your Solana wallet groups here."
	return text, &tgModels.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// groupWalletsView renders one group's wallets with balances, tags and the
// /edit_tag shortcut.
func groupWalletsView(group string, wallets []*models.Wallet) (string, *tgModels.InlineKeyboardMarkup) {
	if len(wallets) == 0 {
		text := fmt.Sprintf("📂 *Group: %s*\n\n🚫 This group has no wallets yet.", group)
		keyboard := &tgModels.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgModels.InlineKeyboardButton{
				{{Text: "➕ Add Wallet", CallbackData: "add_wallet_" + group}},
				backRow("list_groups"),
			},
		}
		return text, keyboard
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📂 *Group: %s*\n\n", group)
	for _, wallet := range wallets {
		tag := ""
		if wallet.Tag != nil {
			tag = *wallet.Tag
		}
		fmt.Fprintf(&sb,
			"💳 *Wallet*: `%s`\n💰 *Balance*: %.9f SOL\n🏷️ *Tag*: `%s`\n🔧 `/edit_tag %s`\n\n",
			wallet.Address, wallet.Balance, tag, wallet.Address)
	}

	keyboard := &tgModels.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgModels.InlineKeyboardButton{
			{{Text: "➕ Add Wallet(s)", CallbackData: "add_wallet_" + group}},
			{{Text: "🗑️ Remove Wallet(s)", CallbackData: "remove_wallet_" + group}},
			backRow("list_groups"),
		},
	}
	return sb.String(), keyboard
}

// addWalletsReply itemizes a wallet-add result; only non-empty sections are
// shown.
func addWalletsReply(group string, added, invalid, failed []string) string {
	var sb strings.Builder
	if len(added) > 0 {
		fmt.Fprintf(&sb, "✅ *Wallets added to group `%s`*:\n", group)
		for _, address := range added {
			fmt.Fprintf(&sb, "- `%s`\n", address)
		}
	}
	if len(invalid) > 0 {
		sb.WriteString("⚠️ *Invalid addresses:*\n")
		for _, address := range invalid {
			fmt.Fprintf(&sb, "- `%s`\n", address)
		}
	}
	if len(failed) > 0 {
		sb.WriteString("⚠️ *Failed to fetch balance:*\n")
		for _, address := range failed {
			fmt.Fprintf(&sb, "- `%s`\n", address)
		}
	}
	return sb.String()
}
