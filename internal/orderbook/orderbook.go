// Package orderbook synthesizes plausible depth around a reference price.
// The book is rebuilt wholesale on every call; there is no incremental
// diffing against a previous book.
package orderbook

import (
	"math/rand"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/models"
)

// Synthesize builds cfg.Depth bid levels below price and cfg.Depth ask
// levels above it, one fixed step apart: bid i sits at price*(1-(i+1)*step)
// and ask i at price*(1+(i+1)*step). Quantities are drawn independently
// per level from [MinQuantity, MinQuantity+MaxQuantity); Cumulative is the
// running sum from the best price outward. The spread is zero whenever
// either side is empty.
func Synthesize(rng *rand.Rand, price float64, cfg config.BookConfig) models.OrderBook {
	book := models.OrderBook{
		Bids: make([]models.BookLevel, 0, cfg.Depth),
		Asks: make([]models.BookLevel, 0, cfg.Depth),
	}

	var bidSum, askSum float64
	for i := 0; i < cfg.Depth; i++ {
		offset := float64(i+1) * cfg.Step

		bidQty := cfg.MinQuantity + rng.Float64()*cfg.MaxQuantity
		bidSum += bidQty
		book.Bids = append(book.Bids, models.BookLevel{
			Price:      price * (1 - offset),
			Quantity:   bidQty,
			Cumulative: bidSum,
		})

		askQty := cfg.MinQuantity + rng.Float64()*cfg.MaxQuantity
		askSum += askQty
		book.Asks = append(book.Asks, models.BookLevel{
			Price:      price * (1 + offset),
			Quantity:   askQty,
			Cumulative: askSum,
		})
	}

	book.Spread = Spread(book.Bids, book.Asks)
	return book
}

// Spread returns best ask minus best bid, or 0 for a degenerate book.
func Spread(bids, asks []models.BookLevel) float64 {
	if len(bids) == 0 || len(asks) == 0 {
		return 0
	}
	return asks[0].Price - bids[0].Price
}
