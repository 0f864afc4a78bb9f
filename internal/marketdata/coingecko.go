// Package marketdata fetches public price series for the analysis engine.
package marketdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/defailabz/mvp-backend/internal/domain"
	apperrors "github.com/defailabz/mvp-backend/internal/errors"
)

// DefaultBaseURL is the public CoinGecko API root.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// ErrCoinNotFound reports an unknown coin identifier.
var ErrCoinNotFound = errors.New("coin not found")

// symbolAliases maps ticker shorthand to CoinGecko coin IDs.
var symbolAliases = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"bnb":   "binancecoin",
	"sol":   "solana",
	"xrp":   "ripple",
	"ada":   "cardano",
	"avax":  "avalanche-2",
	"doge":  "dogecoin",
	"usdt":  "tether",
	"matic": "matic-network",
}

// Client reads daily closing prices from CoinGecko.
type Client struct {
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// NewClient constructs a Client. An empty baseURL falls back to the public API.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

// ResolveCoinID turns a user-entered symbol or name into a CoinGecko coin ID.
func ResolveCoinID(symbol string) string {
	normalized := strings.ToLower(strings.TrimSpace(symbol))
	if id, ok := symbolAliases[normalized]; ok {
		return id
	}
	return normalized
}

// MarketChart fetches days of daily closing prices for the given coin ID.
func (c *Client) MarketChart(ctx context.Context, coinID string, days int) (domain.PriceSeries, error) {
	endpoint := fmt.Sprintf(
		"%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		c.baseURL, url.PathEscape(coinID), days,
	)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		if c.log != nil {
			c.log.Error("coingecko request failed", slog.String("coin", coinID), slog.Any("error", err))
		}
		return nil, apperrors.NewExternalAPIError("coingecko", err)
	}
	defer response.Body.Close()

	if c.log != nil {
		c.log.Info("coingecko request complete",
			slog.String("coin", coinID),
			slog.Int("status", response.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	if response.StatusCode == http.StatusNotFound {
		return nil, ErrCoinNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, apperrors.NewExternalAPIError(
			"coingecko",
			fmt.Errorf("status %d", response.StatusCode),
		)
	}

	var chart marketChartResponse
	if err := json.NewDecoder(response.Body).Decode(&chart); err != nil {
		return nil, apperrors.NewExternalAPIError("coingecko", err)
	}

	series := make(domain.PriceSeries, 0, len(chart.Prices))
	for _, point := range chart.Prices {
		series = append(series, point[1])
	}

	return series, nil
}
