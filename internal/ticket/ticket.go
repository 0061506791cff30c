// Package ticket implements the trading-panel order form: three mutually
// dependent fields (amount, price, total) where editing one rederives
// exactly one other against the effective price. Money math uses decimals
// so derived values round-trip exactly.
package ticket

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/lib/errs"
)

const (
	SideBuy  = "buy"
	SideSell = "sell"

	KindMarket = "market"
	KindLimit  = "limit"
)

// Display precision follows the reference form: base-asset amounts to six
// places, quote totals to two.
const (
	amountPlaces = 6
	totalPlaces  = 2
)

// Calculator holds one order ticket in progress. Fields carry explicit
// presence flags so an untouched input is distinguishable from a zero.
// The zero Calculator is not usable; construct with New.
type Calculator struct {
	pair string
	side string
	kind string

	amount decimal.Decimal
	price  decimal.Decimal
	total  decimal.Decimal

	hasAmount bool
	hasPrice  bool
	hasTotal  bool

	feeRate decimal.Decimal
}

func New(pair, side, kind string, feeRate decimal.Decimal) *Calculator {
	return &Calculator{
		pair:    pair,
		side:    side,
		kind:    kind,
		feeRate: feeRate,
	}
}

// effectivePrice is the live reference price for market orders and the
// user-entered price for limit orders. ok is false when that price is not
// yet known or not positive.
func (c *Calculator) effectivePrice(ref decimal.Decimal) (decimal.Decimal, bool) {
	p := ref
	if c.kind == KindLimit {
		if !c.hasPrice {
			return decimal.Decimal{}, false
		}
		p = c.price
	}
	return p, p.IsPositive()
}

// SetAmount records an amount edit and rederives the total when the
// effective price is known.
func (c *Calculator) SetAmount(amount, refPrice decimal.Decimal) {
	c.amount = amount
	c.hasAmount = true

	if p, ok := c.effectivePrice(refPrice); ok {
		c.total = amount.Mul(p).Round(totalPlaces)
		c.hasTotal = true
	}
}

// SetPrice records a limit-price edit and rederives the total when an
// amount is already present. Ignored for market orders, which always use
// the live reference price.
func (c *Calculator) SetPrice(price decimal.Decimal) {
	if c.kind != KindLimit {
		return
	}

	c.price = price
	c.hasPrice = true

	if c.hasAmount && price.IsPositive() {
		c.total = c.amount.Mul(price).Round(totalPlaces)
		c.hasTotal = true
	}
}

// SetTotal records a total edit and rederives the amount. When the
// effective price is unknown or not positive the amount is left unset
// rather than becoming infinity or NaN; the validity flag carries the
// consequence to the view.
func (c *Calculator) SetTotal(total, refPrice decimal.Decimal) {
	c.total = total
	c.hasTotal = true

	if p, ok := c.effectivePrice(refPrice); ok {
		c.amount = total.DivRound(p, amountPlaces)
		c.hasAmount = true
	}
}

// ApplyPercent implements the 25/50/75/100% shortcut: the amount comes
// straight from the held balance, not via the total. Buying spends percent
// of the quote balance at the effective price; selling offers percent of
// the base balance directly. A no-op when the needed price is unknown.
func (c *Calculator) ApplyPercent(percent int64, balance, refPrice decimal.Decimal) {
	target := balance.Mul(decimal.NewFromInt(percent)).Div(decimal.NewFromInt(100))

	if c.side == SideBuy {
		p, ok := c.effectivePrice(refPrice)
		if !ok {
			return
		}
		c.SetAmount(target.DivRound(p, amountPlaces), refPrice)
		return
	}

	c.SetAmount(target.Round(amountPlaces), refPrice)
}

// Valid reports whether the ticket is submittable: a positive amount and,
// for limit orders, a price.
func (c *Calculator) Valid() bool {
	if !c.hasAmount || !c.amount.IsPositive() {
		return false
	}
	return c.kind == KindMarket || c.hasPrice
}

// Ticket returns the derived view of the form, fee included.
func (c *Calculator) Ticket() models.OrderTicket {
	t := models.OrderTicket{
		Pair:  c.pair,
		Side:  c.side,
		Kind:  c.kind,
		Valid: c.Valid(),
	}

	if c.hasAmount {
		a := c.amount
		t.Amount = &a
	}
	if c.hasPrice {
		p := c.price
		t.Price = &p
	}
	if c.hasTotal {
		tot := c.total
		t.Total = &tot
		fee := tot.Mul(c.feeRate).Round(totalPlaces)
		t.Fee = &fee
	}

	return t
}

// Submit freezes the ticket into an order stamped with the effective price
// and the current time. It mutates no shared state; there is no execution
// behind it.
func (c *Calculator) Submit(refPrice decimal.Decimal) (models.Order, error) {
	if !c.Valid() {
		return models.Order{}, errs.ErrInvalidOrder
	}

	p, ok := c.effectivePrice(refPrice)
	if !ok {
		return models.Order{}, errs.ErrPriceUnavailable
	}

	return models.Order{
		ID:        uuid.New(),
		Pair:      c.pair,
		Side:      c.side,
		Kind:      c.kind,
		Amount:    c.amount,
		Price:     p,
		Total:     c.amount.Mul(p).Round(totalPlaces),
		CreatedAt: time.Now().UTC(),
	}, nil
}
