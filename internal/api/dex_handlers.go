package api

import (
	"net/http"

	"github.com/defailabz/mvp-backend/internal/dex"
	"github.com/defailabz/mvp-backend/internal/domain"
)

// defaultUserID serves the single-user demo; the frontend never sends one.
const defaultUserID = "default"

type tradeRequest struct {
	UserID string  `json:"userId"`
	Symbol string  `json:"symbol"`
	Side   string  `json:"side"`
	Amount float64 `json:"amount"`
	Price  float64 `json:"price"`
}

func userID(r *http.Request) string {
	if id := r.URL.Query().Get("userId"); id != "" {
		return id
	}
	return defaultUserID
}

func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.dex.Wallet(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balances": wallet.Balances})
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.UserID == "" {
		req.UserID = defaultUserID
	}

	wallet, err := s.dex.ExecuteTrade(r.Context(), dex.TradeInput{
		UserID: req.UserID,
		Symbol: req.Symbol,
		Side:   domain.OrderSide(req.Side),
		Amount: req.Amount,
		Price:  req.Price,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balances": wallet.Balances})
}

func (s *Server) handleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.dex.Orders(r.Context(), userID(r), r.URL.Query().Get("symbol"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.dex.Trades(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"trades": trades})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	wallet, err := s.dex.Reset(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"balances": wallet.Balances})
}
