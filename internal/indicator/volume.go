package indicator

import (
	"math"
	"sort"

	"github.com/defailabz/mvp-backend/internal/domain"
)

// VolumeLevel is the traded volume accumulated at one rounded price.
type VolumeLevel struct {
	Price  float64 `json:"price"`
	Volume float64 `json:"volume"`
}

// VolumeProfile buckets volume by rounded close price, highest volume first.
func VolumeProfile(candles []domain.Candle) []VolumeLevel {
	byPrice := make(map[float64]float64)
	for _, c := range candles {
		price := math.Round(c.Close)
		byPrice[price] += c.Volume
	}

	levels := make([]VolumeLevel, 0, len(byPrice))
	for price, volume := range byPrice {
		levels = append(levels, VolumeLevel{Price: price, Volume: volume})
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Volume != levels[j].Volume {
			return levels[i].Volume > levels[j].Volume
		}
		return levels[i].Price < levels[j].Price
	})

	return levels
}
