package models

import "context"

// BalanceService queries the current balance of an address, in SOL.
// Any failure (network, malformed response, unknown account) is returned
// as an error; implementations never panic and never retry internally.
type BalanceService interface {
	GetBalance(ctx context.Context, address string) (float64, error)
}

// NotificationService delivers a message to a chat.
type NotificationService interface {
	SendNotification(ctx context.Context, chatID int64, text string)
}
