package dex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/pkg/metrics"
)

// feeRate is the flat simulator fee taken on every trade.
const feeRate = 0.001

// Service executes paper trades against the injected Store. This is a
// single-user simulation; nothing here coordinates competing writers.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService constructs a Service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

// TradeInput describes one requested paper trade.
type TradeInput struct {
	UserID string
	Symbol string // "BTC/USDT"
	Side   domain.OrderSide
	Amount float64
	Price  float64
}

// Wallet returns the user's wallet, seeding a fresh one on first access.
func (s *Service) Wallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.store.GetWallet(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if wallet == nil {
		wallet = NewWallet(userID)
		if err := s.store.SaveWallet(ctx, wallet); err != nil {
			return nil, apperrors.NewDatabaseError(err)
		}
	}

	return wallet, nil
}

// ExecuteTrade applies one buy or sell against the wallet, charges the
// simulator fee and records the order and trade.
func (s *Service) ExecuteTrade(ctx context.Context, input TradeInput) (*domain.Wallet, error) {
	base, quote, err := splitSymbol(input.Symbol)
	if err != nil {
		metrics.RecordTrade(string(input.Side), "invalid")
		return nil, apperrors.NewValidationError(err.Error())
	}

	if input.Amount <= 0 || input.Price <= 0 {
		metrics.RecordTrade(string(input.Side), "invalid")
		return nil, apperrors.NewValidationError("Quantidade e preço devem ser positivos")
	}

	wallet, err := s.Wallet(ctx, input.UserID)
	if err != nil {
		metrics.RecordTrade(string(input.Side), "error")
		return nil, err
	}

	total := input.Amount * input.Price
	fee := total * feeRate

	switch input.Side {
	case domain.OrderSideBuy:
		if wallet.Balances[quote] < total+fee {
			metrics.RecordTrade(string(input.Side), "rejected")
			return nil, apperrors.NewInsufficientBalanceError(quote)
		}
		wallet.Balances[quote] -= total + fee
		wallet.Balances[base] += input.Amount

	case domain.OrderSideSell:
		if wallet.Balances[base] < input.Amount {
			metrics.RecordTrade(string(input.Side), "rejected")
			return nil, apperrors.NewInsufficientBalanceError(base)
		}
		wallet.Balances[base] -= input.Amount
		wallet.Balances[quote] += total - fee

	default:
		metrics.RecordTrade(string(input.Side), "invalid")
		return nil, apperrors.NewValidationError("Tipo de ordem inválido")
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:        uuid.NewString(),
		Symbol:    strings.ToUpper(input.Symbol),
		Side:      input.Side,
		Amount:    input.Amount,
		Price:     input.Price,
		Fee:       fee,
		CreatedAt: now,
	}

	if err := s.store.SaveWallet(ctx, wallet); err != nil {
		metrics.RecordTrade(string(input.Side), "error")
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := s.store.AppendOrder(ctx, input.UserID, order); err != nil {
		metrics.RecordTrade(string(input.Side), "error")
		return nil, apperrors.NewDatabaseError(err)
	}
	if err := s.store.AppendTrade(ctx, input.UserID, domain.Trade{Order: order, Total: total, ExecutedAt: now}); err != nil {
		metrics.RecordTrade(string(input.Side), "error")
		return nil, apperrors.NewDatabaseError(err)
	}

	metrics.RecordTrade(string(input.Side), "ok")
	if s.log != nil {
		s.log.Info("paper trade executed",
			slog.String("user_id", input.UserID),
			slog.String("symbol", order.Symbol),
			slog.String("side", string(order.Side)),
			slog.Float64("amount", order.Amount),
			slog.Float64("price", order.Price),
		)
	}

	return wallet, nil
}

// Orders lists the user's paper orders, optionally filtered by symbol.
func (s *Service) Orders(ctx context.Context, userID, symbol string) ([]domain.Order, error) {
	orders, err := s.store.ListOrders(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	if symbol == "" {
		return orders, nil
	}

	symbol = strings.ToUpper(symbol)
	filtered := orders[:0:0]
	for _, order := range orders {
		if order.Symbol == symbol {
			filtered = append(filtered, order)
		}
	}

	return filtered, nil
}

// Trades lists the user's executed paper trades.
func (s *Service) Trades(ctx context.Context, userID string) ([]domain.Trade, error) {
	trades, err := s.store.ListTrades(ctx, userID)
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return trades, nil
}

// Reset restores the wallet to its starting balances.
func (s *Service) Reset(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet := NewWallet(userID)
	if err := s.store.SaveWallet(ctx, wallet); err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	return wallet, nil
}

func splitSymbol(symbol string) (base, quote string, err error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(symbol)), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("Símbolo inválido: use o formato BTC/USDT")
	}

	return parts[0], parts[1], nil
}
