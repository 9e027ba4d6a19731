// Package monitor implements the background loop that re-polls every
// monitored wallet and raises change notifications.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/billionaire-caller/btcaller/internal/config"
	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

type Monitor struct {
	logger *logger.Logger

	repo     models.Repository
	balances models.BalanceService
	notifier models.NotificationService

	interval    time.Duration
	threshold   float64
	feeDelta    float64
	explorerURL string
}

// New creates a Monitor. interval, threshold, fee delta and the explorer
// link are taken from the configuration.
func New(
	repo models.Repository,
	balances models.BalanceService,
	notifier models.NotificationService,
	logger *logger.Logger,
	cfg *config.Config,
) *Monitor {
	return &Monitor{
		logger:      logger,
		repo:        repo,
		balances:    balances,
		notifier:    notifier,
		interval:    cfg.PollInterval,
		threshold:   cfg.ChangeThreshold,
		feeDelta:    cfg.FeeDelta,
		explorerURL: cfg.ExplorerURL,
	}
}

// Run polls all monitored wallets on the configured interval until the
// context is cancelled. Shutdown is cooperative: a running iteration is
// finished, not interrupted.
func (m *Monitor) Run(ctx context.Context) {
	m.logger.Info("Monitor loop started ", "interval ", m.interval)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		m.RunOnce(ctx)

		select {
		case <-ctx.Done():
			m.logger.Info("Monitor loop stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs a single iteration: one snapshot of the monitored
// wallets, then a concurrent balance check per wallet. One wallet failing
// never aborts the others.
func (m *Monitor) RunOnce(ctx context.Context) {
	wallets, err := m.repo.AllMonitoredWallets()
	if err != nil {
		m.logger.Error("Failed to load monitored wallets, skipping cycle ", "error ", err)
		return
	}

	var wg sync.WaitGroup
	for _, wallet := range wallets {
		if !wallet.NotificationsEnabled {
			continue
		}
		wg.Add(1)
		go func(wallet *models.MonitoredWallet) {
			defer wg.Done()
			m.checkWallet(ctx, wallet)
		}(wallet)
	}
	wg.Wait()
}

func (m *Monitor) checkWallet(ctx context.Context, wallet *models.MonitoredWallet) {
	newBalance, err := m.balances.GetBalance(ctx, wallet.Address)
	if err != nil {
		// Retried on the next cycle, nothing to clean up.
		m.logger.Debug("Balance query failed ", "address ", wallet.Address, "error ", err)
		return
	}

	// Re-read the stored balance instead of trusting the snapshot; the user
	// may have edited the wallet since the iteration started.
	oldBalance, err := m.repo.GetWalletBalance(wallet.ChatID, wallet.GroupName, wallet.Address)
	if err != nil {
		if errors.Is(err, models.ErrWalletNotFound) {
			// Deleted mid-cycle.
			return
		}
		m.logger.Error("Failed to read stored balance ", "address ", wallet.Address, "error ", err)
		return
	}

	if math.Abs(newBalance-oldBalance) <= m.threshold {
		return
	}

	updated, err := m.repo.UpdateWalletBalance(wallet.ChatID, wallet.GroupName, wallet.Address, oldBalance, newBalance)
	if err != nil {
		m.logger.Error("Failed to update wallet balance ", "address ", wallet.Address, "error ", err)
		return
	}
	if !updated {
		// A concurrent edit won the swap; its value stands until next cycle.
		return
	}

	change := classifyChange(newBalance-oldBalance, m.feeDelta)
	m.logger.Info("Balance change detected ",
		"chat ", wallet.ChatID,
		"group ", wallet.GroupName,
		"address ", wallet.Address,
		"old ", oldBalance,
		"new ", newBalance,
		"type ", change)

	m.notifier.SendNotification(ctx, wallet.ChatID, m.notificationText(wallet, oldBalance, newBalance, change))
}

func (m *Monitor) notificationText(wallet *models.MonitoredWallet, oldBalance, newBalance float64, change ChangeType) string {
	tag := ""
	if wallet.Tag != nil && *wallet.Tag != "" {
		tag = "- 🏷️ " + *wallet.Tag + " "
	}
	explorer := fmt.Sprintf("%s/account/%s", m.explorerURL, wallet.Address)

	return fmt.Sprintf(
		"🚨 *Balance change in wallet* %s`%s`\n\n"+
			"💸 *Group:* `%s`\n"+
			"🪙 *Previous balance:* %.9f SOL\n"+
			"💎 *New balance:* %.9f SOL\n"+
			"🛑 *Change type:* %s\n\n"+
			"🔗 [View on Solscan](%s)",
		tag, wallet.Address, wallet.GroupName, oldBalance, newBalance, change, explorer)
}
