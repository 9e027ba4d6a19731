package blockchain

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billionaire-caller/btcaller/pkg/logger"
)

const testAddress = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"

func newRPCServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, logger.NewNop())
}

func TestGetBalance(t *testing.T) {
	client := newRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// 5.03 SOL in lamports.
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":5030000000},"id":1}`))
	})

	balance, err := client.GetBalance(context.Background(), testAddress)
	require.NoError(t, err)
	assert.InDelta(t, 5.03, balance, 1e-12)
}

func TestGetBalanceRPCError(t *testing.T) {
	client := newRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"Invalid param"},"id":1}`))
	})

	_, err := client.GetBalance(context.Background(), testAddress)
	assert.Error(t, err)
}

func TestGetBalanceUpstreamDown(t *testing.T) {
	client := newRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetBalance(context.Background(), testAddress)
	assert.Error(t, err)
}

func TestGetBalanceInvalidAddress(t *testing.T) {
	client := newRPCServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid address")
	})

	_, err := client.GetBalance(context.Background(), "not-an-address")
	assert.Error(t, err)
}
