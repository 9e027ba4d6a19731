package models

// Wallet is a monitored address inside a group, with its last observed
// balance and an optional free-text label.
type Wallet struct {
	// ChatID is the Telegram chat the wallet belongs to.
	ChatID int64 `json:"chat_id" gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	// GroupName is the group the wallet is filed under.
	GroupName string `json:"group_name" gorm:"column:group_name;primaryKey;size:50"`
	// Address is the base58 Solana account address.
	Address string `json:"wallet_address" gorm:"column:wallet_address;primaryKey;size:64"`
	// Balance is the last observed balance in SOL. Updated by the monitor
	// only when the observed change exceeds the notification threshold.
	Balance float64 `json:"balance" gorm:"column:balance"`
	// Tag is an optional short label set by the user. Nil when unset.
	Tag *string `json:"tag" gorm:"column:tag"`
}

func (Wallet) TableName() string {
	return "wallets"
}

// MonitoredWallet is one row of the wallets x groups join the monitor
// iterates over.
type MonitoredWallet struct {
	ChatID               int64
	GroupName            string
	Address              string
	Tag                  *string
	NotificationsEnabled bool
}
