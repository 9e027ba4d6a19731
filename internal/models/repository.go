package models

import "errors"

var (
	// ErrGroupExists is returned when creating a group whose (chat, name)
	// pair is already taken.
	ErrGroupExists = errors.New("group already exists")
	// ErrGroupNotFound is returned when an operation references a group
	// that does not exist for the chat.
	ErrGroupNotFound = errors.New("group not found")
	// ErrWalletNotFound is returned when an operation references a wallet
	// that does not exist for the chat.
	ErrWalletNotFound = errors.New("wallet not found")
)

type Repository interface {
	// CreateGroup inserts a new group with notifications enabled.
	// Returns ErrGroupExists if the (chat, name) pair is taken.
	CreateGroup(chatID int64, name string) error
	// DeleteGroup removes the group and all wallets under it, atomically.
	DeleteGroup(chatID int64, name string) error
	// GroupExists reports whether the group exists for the chat.
	GroupExists(chatID int64, name string) (bool, error)
	// ListGroups returns the chat's groups in name order.
	ListGroups(chatID int64) ([]*Group, error)
	// ToggleNotifications flips the group's notifications flag and returns
	// the new state. Returns ErrGroupNotFound if the group is absent.
	ToggleNotifications(chatID int64, name string) (bool, error)

	// UpsertWallet inserts or replaces a wallet row. Replacing resets the
	// stored balance and tag to the provided values. The group must exist.
	UpsertWallet(chatID int64, group, address string, balance float64, tag *string) error
	// DeleteWallets removes each listed address under the group. Addresses
	// not present are ignored.
	DeleteWallets(chatID int64, group string, addresses []string) error
	// ListWallets returns the group's wallets in address order.
	ListWallets(chatID int64, group string) ([]*Wallet, error)
	// GetWalletBalance returns the stored balance for the exact
	// (chat, group, address) triple.
	GetWalletBalance(chatID int64, group, address string) (float64, error)
	// UpdateWalletBalance conditionally sets the wallet balance to new only
	// if the stored value still equals old. Reports whether the row was
	// updated.
	UpdateWalletBalance(chatID int64, group, address string, old, new float64) (bool, error)
	// GetWalletTag returns the tag of any wallet with the address in the
	// chat, or ErrWalletNotFound.
	GetWalletTag(chatID int64, address string) (*string, error)
	// SetTag sets the tag on every wallet row with the address in the chat.
	SetTag(chatID int64, address, tag string) error

	// AllMonitoredWallets returns the full wallets x groups join used by
	// the monitor loop.
	AllMonitoredWallets() ([]*MonitoredWallet, error)

	// Stats returns service-wide row counts for the status API.
	Stats() (*Stats, error)

	Close() error
}

// Stats holds service-wide counters exposed over the status API.
type Stats struct {
	Chats   int64 `json:"chats"`
	Groups  int64 `json:"groups"`
	Wallets int64 `json:"wallets"`
}
