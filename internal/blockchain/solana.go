package blockchain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/billionaire-caller/btcaller/pkg/logger"
)

const (
	// DefaultRPCTimeout bounds a single getBalance call.
	DefaultRPCTimeout = 10 * time.Second
)

// rpcClient is the slice of the Solana RPC API the client needs.
type rpcClient interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
}

// Client queries account balances from a Solana JSON-RPC endpoint.
type Client struct {
	logger  *logger.Logger
	rpc     rpcClient
	timeout time.Duration
}

// NewClient creates a Client talking to the given RPC endpoint.
func NewClient(rpcURL string, timeout time.Duration, logger *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultRPCTimeout
	}
	return &Client{
		logger:  logger,
		rpc:     rpc.New(rpcURL),
		timeout: timeout,
	}
}

// GetBalance returns the current balance of the address in SOL. One request,
// bounded by the client timeout, no retry; the caller decides whether to try
// again on the next cycle.
func (c *Client) GetBalance(ctx context.Context, address string) (float64, error) {
	account, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return 0, fmt.Errorf("invalid account address: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	out, err := c.rpc.GetBalance(ctx, account, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	if out == nil {
		return 0, fmt.Errorf("empty getBalance response for %s", address)
	}

	return float64(out.Value) / float64(solana.LAMPORTS_PER_SOL), nil
}
