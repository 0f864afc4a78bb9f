package api

import (
	"errors"
	"net/http"

	apperrors "github.com/defailabz/mvp-backend/internal/errors"
	"github.com/defailabz/mvp-backend/internal/marketdata"
	"github.com/defailabz/mvp-backend/pkg/metrics"
)

const (
	defaultAnalysisDays = 30
	maxAnalysisDays     = 365
)

type analysisRequest struct {
	Symbol string `json:"symbol"`
	Days   int    `json:"days"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	var req analysisRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.Symbol == "" {
		metrics.RecordAnalysis("invalid")
		s.writeError(w, r, apperrors.NewValidationError("Símbolo é obrigatório"))
		return
	}

	days := req.Days
	if days <= 0 {
		days = defaultAnalysisDays
	}
	if days > maxAnalysisDays {
		days = maxAnalysisDays
	}

	coinID := marketdata.ResolveCoinID(req.Symbol)
	series, err := s.market.MarketChart(r.Context(), coinID, days)
	if err != nil {
		metrics.RecordAnalysis("error")
		if errors.Is(err, marketdata.ErrCoinNotFound) {
			err = apperrors.NewNotFoundError("coin " + req.Symbol).
				WithUserMessage("Moeda não encontrada")
		}
		s.writeError(w, r, err)
		return
	}

	report := s.engine.Analyze(series)
	metrics.RecordAnalysis("ok")

	writeJSON(w, http.StatusOK, map[string]any{
		"symbol":   req.Symbol,
		"days":     days,
		"analysis": report,
	})
}
