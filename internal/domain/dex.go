package domain

import "time"

// OrderSide distinguishes buy and sell orders in the paper DEX.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// Wallet holds simulated balances per asset symbol for a single user.
type Wallet struct {
	UserID   string             `json:"user_id"`
	Balances map[string]float64 `json:"balances"`
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (w *Wallet) Clone() *Wallet {
	balances := make(map[string]float64, len(w.Balances))
	for asset, amount := range w.Balances {
		balances[asset] = amount
	}
	return &Wallet{UserID: w.UserID, Balances: balances}
}

// Order is a paper trading order. Orders are stored and filtered, never
// matched against a market.
type Order struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"` // e.g. "BTC/USDT"
	Side      OrderSide `json:"side"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Fee       float64   `json:"fee"`
	CreatedAt time.Time `json:"created_at"`
}

// Trade records an executed paper order together with the resulting wallet.
type Trade struct {
	Order      Order     `json:"order"`
	Total      float64   `json:"total"`
	ExecutedAt time.Time `json:"executed_at"`
}
