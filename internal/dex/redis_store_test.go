package dex

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/defailabz/mvp-backend/internal/domain"
)

func setupRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisStore_WalletRoundTrip(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	missing, err := store.GetWallet(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing, "unknown wallet is nil, not an error")

	wallet := NewWallet("u1")
	wallet.Balances["BTC"] = 2.5
	require.NoError(t, store.SaveWallet(ctx, wallet))

	loaded, err := store.GetWallet(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.UserID)
	assert.InDelta(t, 2.5, loaded.Balances["BTC"], 1e-9)
}

func TestRedisStore_OrdersPreserveInsertionOrder(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"first", "second", "third"} {
		order := domain.Order{
			ID:        id,
			Symbol:    "BTC/USDT",
			Side:      domain.OrderSideBuy,
			Amount:    float64(i + 1),
			Price:     100,
			CreatedAt: now,
		}
		require.NoError(t, store.AppendOrder(ctx, "u1", order))
	}

	orders, err := store.ListOrders(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "first", orders[0].ID)
	assert.Equal(t, "third", orders[2].ID)
}

func TestRedisStore_TradesIsolatedPerUser(t *testing.T) {
	store := setupRedisStore(t)
	ctx := context.Background()

	trade := domain.Trade{
		Order: domain.Order{ID: "o1", Symbol: "ETH/USDT", Side: domain.OrderSideSell, Amount: 1, Price: 2000},
		Total: 2000,
	}
	require.NoError(t, store.AppendTrade(ctx, "u1", trade))

	mine, err := store.ListTrades(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other, err := store.ListTrades(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestRedisStore_ServiceIntegration(t *testing.T) {
	store := setupRedisStore(t)
	service := NewService(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	wallet, err := service.ExecuteTrade(ctx, TradeInput{
		UserID: "u1", Symbol: "BTC/USDT", Side: domain.OrderSideBuy, Amount: 1, Price: 10000,
	})
	require.NoError(t, err)
	assert.InDelta(t, 6, wallet.Balances["BTC"], 1e-9)

	reloaded, err := service.Wallet(ctx, "u1")
	require.NoError(t, err)
	assert.InDelta(t, wallet.Balances["USDT"], reloaded.Balances["USDT"], 1e-6)
}
