// Package dex implements the paper trading simulator: a virtual wallet and
// an order book that stores and filters orders without matching them.
package dex

import (
	"context"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// Store persists the simulator state. Implementations back it with Redis in
// production and plain memory in tests; the trading logic never touches the
// storage medium directly.
type Store interface {
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	SaveWallet(ctx context.Context, wallet *domain.Wallet) error
	AppendOrder(ctx context.Context, userID string, order domain.Order) error
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	AppendTrade(ctx context.Context, userID string, trade domain.Trade) error
	ListTrades(ctx context.Context, userID string) ([]domain.Trade, error)
}

// initialBalances seeds every fresh wallet.
var initialBalances = map[string]float64{
	"USDT": 100000.00,
	"BTC":  5.0,
	"ETH":  50.0,
	"BNB":  100.0,
	"SOL":  1000.0,
	"XRP":  50000.0,
	"ADA":  100000.0,
	"AVAX": 1000.0,
	"DOGE": 100000.0,
}

// NewWallet returns a wallet with the simulator's starting balances.
func NewWallet(userID string) *domain.Wallet {
	balances := make(map[string]float64, len(initialBalances))
	for asset, amount := range initialBalances {
		balances[asset] = amount
	}

	return &domain.Wallet{UserID: userID, Balances: balances}
}
