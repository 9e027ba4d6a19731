package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

const (
	walletA = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	walletB = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormLogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive for the test.
	sqlDB.SetMaxOpenConns(1)

	store, err := New(db, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func strPtr(s string) *string { return &s }

func TestCreateGroup(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))

	groups, err := store.ListGroups(1)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Whales", groups[0].Name)
	assert.True(t, groups[0].NotificationsEnabled)

	// Same name in another chat is a different group.
	require.NoError(t, store.CreateGroup(2, "Whales"))

	err = store.CreateGroup(1, "Whales")
	assert.ErrorIs(t, err, models.ErrGroupExists)
}

func TestDeleteGroupCascades(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletB, 1.5, strPtr("dev")))

	require.NoError(t, store.DeleteGroup(1, "Whales"))

	exists, err := store.GroupExists(1, "Whales")
	require.NoError(t, err)
	assert.False(t, exists)

	wallets, err := store.ListWallets(1, "Whales")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	// Deleting a group that is already gone is not an error.
	assert.NoError(t, store.DeleteGroup(1, "Whales"))
}

func TestUpsertWalletResetsTag(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, strPtr("foo")))

	tag, err := store.GetWalletTag(1, walletA)
	require.NoError(t, err)
	require.NotNil(t, tag)
	assert.Equal(t, "foo", *tag)

	// Re-adding the wallet without a tag replaces the row and clears it.
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 6.0, nil))

	wallets, err := store.ListWallets(1, "Whales")
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, 6.0, wallets[0].Balance)
	assert.Nil(t, wallets[0].Tag)
}

func TestUpsertWalletRejectsOrphans(t *testing.T) {
	store := newTestStore(t)

	err := store.UpsertWallet(1, "Nope", walletA, 5.0, nil)
	assert.ErrorIs(t, err, models.ErrGroupNotFound)
}

func TestDeleteWallets(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))

	// Absent addresses are ignored.
	require.NoError(t, store.DeleteWallets(1, "Whales", []string{walletA, walletB}))

	wallets, err := store.ListWallets(1, "Whales")
	require.NoError(t, err)
	assert.Empty(t, wallets)

	assert.NoError(t, store.DeleteWallets(1, "Whales", nil))
}

func TestToggleNotifications(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))

	state, err := store.ToggleNotifications(1, "Whales")
	require.NoError(t, err)
	assert.False(t, state)

	state, err = store.ToggleNotifications(1, "Whales")
	require.NoError(t, err)
	assert.True(t, state)

	_, err = store.ToggleNotifications(1, "Ghosts")
	assert.ErrorIs(t, err, models.ErrGroupNotFound)
}

func TestUpdateWalletBalanceCAS(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))

	updated, err := store.UpdateWalletBalance(1, "Whales", walletA, 5.0, 5.03)
	require.NoError(t, err)
	assert.True(t, updated)

	balance, err := store.GetWalletBalance(1, "Whales", walletA)
	require.NoError(t, err)
	assert.Equal(t, 5.03, balance)

	// Stale expectation loses the swap.
	updated, err = store.UpdateWalletBalance(1, "Whales", walletA, 5.0, 7.0)
	require.NoError(t, err)
	assert.False(t, updated)

	_, err = store.GetWalletBalance(1, "Whales", walletB)
	assert.ErrorIs(t, err, models.ErrWalletNotFound)
}

func TestSetTag(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.CreateGroup(1, "Devs"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))
	require.NoError(t, store.UpsertWallet(1, "Devs", walletA, 5.0, nil))

	require.NoError(t, store.SetTag(1, walletA, "insider"))

	// Tag is applied to the address in every group of the chat.
	for _, group := range []string{"Whales", "Devs"} {
		wallets, err := store.ListWallets(1, group)
		require.NoError(t, err)
		require.Len(t, wallets, 1)
		require.NotNil(t, wallets[0].Tag)
		assert.Equal(t, "insider", *wallets[0].Tag)
	}

	assert.ErrorIs(t, store.SetTag(1, walletB, "x"), models.ErrWalletNotFound)
}

func TestAllMonitoredWallets(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.CreateGroup(2, "Devs"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, strPtr("big")))
	require.NoError(t, store.UpsertWallet(2, "Devs", walletB, 1.0, nil))

	_, err := store.ToggleNotifications(2, "Devs")
	require.NoError(t, err)

	rows, err := store.AllMonitoredWallets()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byChat := map[int64]*models.MonitoredWallet{}
	for _, row := range rows {
		byChat[row.ChatID] = row
	}
	require.NotNil(t, byChat[1])
	assert.Equal(t, walletA, byChat[1].Address)
	assert.Equal(t, "Whales", byChat[1].GroupName)
	assert.True(t, byChat[1].NotificationsEnabled)
	require.NotNil(t, byChat[2])
	assert.False(t, byChat[2].NotificationsEnabled)
}

func TestStats(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.CreateGroup(1, "Devs"))
	require.NoError(t, store.CreateGroup(2, "Devs"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))
	require.NoError(t, store.UpsertWallet(2, "Devs", walletB, 1.0, nil))

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Chats)
	assert.Equal(t, int64(3), stats.Groups)
	assert.Equal(t, int64(2), stats.Wallets)
}
