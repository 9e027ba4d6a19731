package http_api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/billionaire-caller/btcaller/internal/models"
	"github.com/billionaire-caller/btcaller/internal/repository"
	"github.com/billionaire-caller/btcaller/pkg/logger"
)

const walletA = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func newTestServer(t *testing.T) (*HTTPServer, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormLogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := repository.New(db, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewHTTPServer(store, 0, logger.NewNop()), store
}

func do(t *testing.T, s *HTTPServer, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "/api/v1/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestStatsEndpoint(t *testing.T) {
	s, store := newTestServer(t)

	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, nil))

	rec := do(t, s, "/api/v1/stats")
	assert.Equal(t, http.StatusOK, rec.Code)

	var stats models.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Chats)
	assert.Equal(t, int64(1), stats.Groups)
	assert.Equal(t, int64(1), stats.Wallets)
}

func TestGroupsEndpoint(t *testing.T) {
	s, store := newTestServer(t)

	tag := "whale one"
	require.NoError(t, store.CreateGroup(1, "Whales"))
	require.NoError(t, store.UpsertWallet(1, "Whales", walletA, 5.0, &tag))
	require.NoError(t, store.CreateGroup(2, "Devs"))

	rec := do(t, s, "/api/v1/groups?chat_id=1")
	assert.Equal(t, http.StatusOK, rec.Code)

	var groups []GroupResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
	require.Len(t, groups, 1)
	assert.Equal(t, "Whales", groups[0].Name)
	assert.True(t, groups[0].NotificationsEnabled)
	require.Len(t, groups[0].Wallets, 1)
	assert.Equal(t, walletA, groups[0].Wallets[0].Address)
	assert.Equal(t, 5.0, groups[0].Wallets[0].Balance)
	require.NotNil(t, groups[0].Wallets[0].Tag)
	assert.Equal(t, "whale one", *groups[0].Wallets[0].Tag)
}

func TestGroupsEndpointBadChatID(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, "/api/v1/groups")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, "/api/v1/groups?chat_id=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
