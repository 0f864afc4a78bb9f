package dex

import (
	"context"
	"sync"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// MemoryStore is an in-process Store used by tests and local development.
type MemoryStore struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet
	orders  map[string][]domain.Order
	trades  map[string][]domain.Trade
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		wallets: make(map[string]*domain.Wallet),
		orders:  make(map[string][]domain.Order),
		trades:  make(map[string][]domain.Trade),
	}
}

// GetWallet implements Store. Missing wallets come back nil, not an error.
func (s *MemoryStore) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wallet, ok := s.wallets[userID]
	if !ok {
		return nil, nil
	}
	return wallet.Clone(), nil
}

// SaveWallet implements Store.
func (s *MemoryStore) SaveWallet(_ context.Context, wallet *domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets[wallet.UserID] = wallet.Clone()
	return nil
}

// AppendOrder implements Store.
func (s *MemoryStore) AppendOrder(_ context.Context, userID string, order domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[userID] = append(s.orders[userID], order)
	return nil
}

// ListOrders implements Store, newest last.
func (s *MemoryStore) ListOrders(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders := make([]domain.Order, len(s.orders[userID]))
	copy(orders, s.orders[userID])
	return orders, nil
}

// AppendTrade implements Store.
func (s *MemoryStore) AppendTrade(_ context.Context, userID string, trade domain.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[userID] = append(s.trades[userID], trade)
	return nil
}

// ListTrades implements Store, newest last.
func (s *MemoryStore) ListTrades(_ context.Context, userID string) ([]domain.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trades := make([]domain.Trade, len(s.trades[userID]))
	copy(trades, s.trades[userID])
	return trades, nil
}
