// Package feed implements the simulated market feed: a per-view state
// container that perturbs asset prices on a fixed-period tick, recomputes
// portfolio aggregates, and publishes immutable snapshots to subscribers.
package feed

import (
	"math/rand"

	"github.com/pulseboard/market-feed/internal/models"
)

// Perturb applies a uniformly-distributed multiplicative shock in
// [-volatility, +volatility] to value. It is pure: the caller owns the rng
// and the result is unclamped, so the sign of value is preserved for any
// volatility < 1.
func Perturb(rng *rand.Rand, value, volatility float64) float64 {
	return value * (1 + (rng.Float64()*2-1)*volatility)
}

// Recompute rederives every dependent quantity in place and returns the
// portfolio total. It is a full pass, not an incremental update: Value and
// Allocation are overwritten from Price and Balance alone, so repeated
// calls cannot accumulate drift. Allocations are zero when the total is
// not positive.
func Recompute(assets []models.Asset) float64 {
	var total float64
	for i := range assets {
		assets[i].Value = assets[i].Price * assets[i].Balance
		total += assets[i].Value
	}

	for i := range assets {
		if total > 0 {
			assets[i].Allocation = assets[i].Value / total * 100
		} else {
			assets[i].Allocation = 0
		}
	}

	return total
}

// WeightedChange returns the value-weighted mean 24h change of the assets,
// the figure shown next to the portfolio total. Zero when the portfolio is
// empty or worthless.
func WeightedChange(assets []models.Asset, total float64) float64 {
	if total <= 0 {
		return 0
	}

	var weighted float64
	for i := range assets {
		weighted += assets[i].Value * assets[i].Change24h
	}
	return weighted / total
}
