package dex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// RedisStore persists simulator state as JSON blobs and lists in Redis.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStore{client: client, log: log}
}

// GetWallet implements Store. Missing wallets come back nil, not an error.
func (s *RedisStore) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	raw, err := s.client.Get(ctx, walletKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.log.Error("failed to fetch wallet", slog.String("user_id", userID), slog.Any("error", err))
		return nil, fmt.Errorf("get wallet: %w", err)
	}

	var wallet domain.Wallet
	if err := json.Unmarshal([]byte(raw), &wallet); err != nil {
		return nil, fmt.Errorf("decode wallet: %w", err)
	}

	return &wallet, nil
}

// SaveWallet implements Store.
func (s *RedisStore) SaveWallet(ctx context.Context, wallet *domain.Wallet) error {
	data, err := json.Marshal(wallet)
	if err != nil {
		return fmt.Errorf("encode wallet: %w", err)
	}

	if err := s.client.Set(ctx, walletKey(wallet.UserID), data, 0).Err(); err != nil {
		s.log.Error("failed to save wallet", slog.String("user_id", wallet.UserID), slog.Any("error", err))
		return fmt.Errorf("save wallet: %w", err)
	}

	return nil
}

// AppendOrder implements Store.
func (s *RedisStore) AppendOrder(ctx context.Context, userID string, order domain.Order) error {
	return s.appendJSON(ctx, ordersKey(userID), order)
}

// ListOrders implements Store, newest last.
func (s *RedisStore) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	raw, err := s.client.LRange(ctx, ordersKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]domain.Order, 0, len(raw))
	for _, item := range raw {
		var order domain.Order
		if err := json.Unmarshal([]byte(item), &order); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// AppendTrade implements Store.
func (s *RedisStore) AppendTrade(ctx context.Context, userID string, trade domain.Trade) error {
	return s.appendJSON(ctx, tradesKey(userID), trade)
}

// ListTrades implements Store, newest last.
func (s *RedisStore) ListTrades(ctx context.Context, userID string) ([]domain.Trade, error) {
	raw, err := s.client.LRange(ctx, tradesKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}

	trades := make([]domain.Trade, 0, len(raw))
	for _, item := range raw {
		var trade domain.Trade
		if err := json.Unmarshal([]byte(item), &trade); err != nil {
			return nil, fmt.Errorf("decode trade: %w", err)
		}
		trades = append(trades, trade)
	}

	return trades, nil
}

func (s *RedisStore) appendJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s entry: %w", key, err)
	}

	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		s.log.Error("failed to append entry", slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("append %s: %w", key, err)
	}

	return nil
}

func walletKey(userID string) string {
	return "dex:wallet:" + userID
}

func ordersKey(userID string) string {
	return "dex:orders:" + userID
}

func tradesKey(userID string) string {
	return "dex:trades:" + userID
}
