package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

type Store struct {
	logger *logger.Logger

	Conn *gorm.DB
}

// NewPostgresDB connects to PostgreSQL and migrates the schema.
func NewPostgresDB(user, password, dbname, host string, port int, logger *logger.Logger) (models.Repository, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		host, user, password, dbname, port)

	// Configure GORM logger to suppress "record not found" messages
	gormLogger := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	store, err := New(db, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Successfully connected to PostgreSQL!")
	return store, nil
}

// New wraps an open gorm connection and migrates the schema. Wallet rows
// carry a composite foreign key to their group with ON DELETE CASCADE, so
// orphan wallets are rejected by the schema, not by application discipline.
func New(db *gorm.DB, logger *logger.Logger) (*Store, error) {
	if err := db.AutoMigrate(&models.Group{}, &models.Wallet{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate models: %w", err)
	}
	return &Store{Conn: db, logger: logger}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.Conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

func (s *Store) CreateGroup(chatID int64, name string) error {
	exists, err := s.GroupExists(chatID, name)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrGroupExists
	}

	group := models.Group{ChatID: chatID, Name: name, NotificationsEnabled: true}
	if err := s.Conn.Create(&group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

// DeleteGroup removes the group row and every wallet under it in one
// transaction. Deleting an absent group is a no-op.
func (s *Store) DeleteGroup(chatID int64, name string) error {
	err := s.Conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ? AND group_name = ?", chatID, name).
			Delete(&models.Wallet{}).Error; err != nil {
			return err
		}
		return tx.Where("chat_id = ? AND group_name = ?", chatID, name).
			Delete(&models.Group{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

func (s *Store) GroupExists(chatID int64, name string) (bool, error) {
	var group models.Group
	err := s.Conn.Where("chat_id = ? AND group_name = ?", chatID, name).First(&group).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if group exists: %w", err)
	}
	return true, nil
}

func (s *Store) ListGroups(chatID int64) ([]*models.Group, error) {
	var groups []*models.Group
	if err := s.Conn.Where("chat_id = ?", chatID).Order("group_name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

// ToggleNotifications flips the flag in a single UPDATE and returns the new
// state.
func (s *Store) ToggleNotifications(chatID int64, name string) (bool, error) {
	res := s.Conn.Model(&models.Group{}).
		Where("chat_id = ? AND group_name = ?", chatID, name).
		Update("notifications_enabled", gorm.Expr("NOT notifications_enabled"))
	if res.Error != nil {
		return false, fmt.Errorf("failed to toggle notifications: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return false, models.ErrGroupNotFound
	}

	var group models.Group
	if err := s.Conn.Where("chat_id = ? AND group_name = ?", chatID, name).First(&group).Error; err != nil {
		return false, fmt.Errorf("failed to read notifications state: %w", err)
	}
	return group.NotificationsEnabled, nil
}

// UpsertWallet inserts or replaces a wallet row. A replace resets both the
// balance and the tag to the values supplied, so re-adding a wallet without
// a tag clears any previously set one.
func (s *Store) UpsertWallet(chatID int64, group, address string, balance float64, tag *string) error {
	exists, err := s.GroupExists(chatID, group)
	if err != nil {
		return err
	}
	if !exists {
		return models.ErrGroupNotFound
	}

	wallet := models.Wallet{
		ChatID:    chatID,
		GroupName: group,
		Address:   address,
		Balance:   balance,
		Tag:       tag,
	}
	err = s.Conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chat_id"}, {Name: "group_name"}, {Name: "wallet_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"balance", "tag"}),
	}).Create(&wallet).Error
	if err != nil {
		return fmt.Errorf("failed to upsert wallet: %w", err)
	}
	return nil
}

func (s *Store) DeleteWallets(chatID int64, group string, addresses []string) error {
	if len(addresses) == 0 {
		return nil
	}
	err := s.Conn.Where("chat_id = ? AND group_name = ? AND wallet_address IN ?", chatID, group, addresses).
		Delete(&models.Wallet{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete wallets: %w", err)
	}
	return nil
}

func (s *Store) ListWallets(chatID int64, group string) ([]*models.Wallet, error) {
	var wallets []*models.Wallet
	err := s.Conn.Where("chat_id = ? AND group_name = ?", chatID, group).
		Order("wallet_address").Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

func (s *Store) GetWalletBalance(chatID int64, group, address string) (float64, error) {
	var wallet models.Wallet
	err := s.Conn.Where("chat_id = ? AND group_name = ? AND wallet_address = ?", chatID, group, address).
		First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.ErrWalletNotFound
		}
		return 0, fmt.Errorf("failed to get wallet balance: %w", err)
	}
	return wallet.Balance, nil
}

// UpdateWalletBalance is a compare-and-swap: the balance is written only if
// the stored value still equals old, in one UPDATE. A concurrent edit makes
// it report false instead of silently overwriting.
func (s *Store) UpdateWalletBalance(chatID int64, group, address string, old, new float64) (bool, error) {
	res := s.Conn.Model(&models.Wallet{}).
		Where("chat_id = ? AND group_name = ? AND wallet_address = ? AND balance = ?", chatID, group, address, old).
		Update("balance", new)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update wallet balance: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *Store) GetWalletTag(chatID int64, address string) (*string, error) {
	var wallet models.Wallet
	err := s.Conn.Where("chat_id = ? AND wallet_address = ?", chatID, address).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet tag: %w", err)
	}
	return wallet.Tag, nil
}

// SetTag updates the tag on every row carrying the address in the chat,
// whatever group it is filed under.
func (s *Store) SetTag(chatID int64, address, tag string) error {
	res := s.Conn.Model(&models.Wallet{}).
		Where("chat_id = ? AND wallet_address = ?", chatID, address).
		Update("tag", tag)
	if res.Error != nil {
		return fmt.Errorf("failed to set wallet tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrWalletNotFound
	}
	return nil
}

func (s *Store) AllMonitoredWallets() ([]*models.MonitoredWallet, error) {
	var rows []*models.MonitoredWallet
	err := s.Conn.Table("wallets").
		Select("wallets.chat_id, wallets.group_name, wallets.wallet_address AS address, wallets.tag, groups.notifications_enabled").
		Joins("JOIN groups ON groups.chat_id = wallets.chat_id AND groups.group_name = wallets.group_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load monitored wallets: %w", err)
	}
	return rows, nil
}

func (s *Store) Stats() (*models.Stats, error) {
	var stats models.Stats
	if err := s.Conn.Model(&models.Group{}).Distinct("chat_id").Count(&stats.Chats).Error; err != nil {
		return nil, fmt.Errorf("failed to count chats: %w", err)
	}
	if err := s.Conn.Model(&models.Group{}).Count(&stats.Groups).Error; err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}
	if err := s.Conn.Model(&models.Wallet{}).Count(&stats.Wallets).Error; err != nil {
		return nil, fmt.Errorf("failed to count wallets: %w", err)
	}
	return &stats, nil
}
