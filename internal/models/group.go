package models

// Group is a user-defined named bucket of wallet addresses, scoped to one chat.
type Group struct {
	// ChatID is the Telegram chat the group belongs to.
	ChatID int64 `json:"chat_id" gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	// Name is the group name, unique per chat.
	Name string `json:"group_name" gorm:"column:group_name;primaryKey;size:50"`
	// NotificationsEnabled controls whether the monitor notifies the chat
	// about balance changes in this group.
	NotificationsEnabled bool `json:"notifications_enabled" gorm:"column:notifications_enabled;default:true"`
	// Wallets are the wallets stored under this group. Deleting the group
	// cascades to them.
	Wallets []Wallet `json:"wallets,omitempty" gorm:"foreignKey:ChatID,GroupName;references:ChatID,Name;constraint:OnDelete:CASCADE"`
}

func (Group) TableName() string {
	return "groups"
}
