package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/market"
	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/internal/ticket"
	"github.com/pulseboard/market-feed/lib/errs"
)

// Fields a TicketEdit can name as last-edited.
const (
	EditAmount  = "amount"
	EditPrice   = "price"
	EditTotal   = "total"
	EditPercent = "percent"
)

// TicketEdit carries the state of the trading form plus which field the
// user touched last; that field decides which dependent field gets
// rederived.
type TicketEdit struct {
	Pair    string
	Side    string
	Kind    string
	Edited  string
	Amount  *decimal.Decimal
	Price   *decimal.Decimal
	Total   *decimal.Decimal
	Percent int64
}

// OrdersService glues the ticket calculator to the live trading sessions:
// market orders price against the session's current reference price, and
// the percent shortcut draws on the configured demo balances.
type OrdersService struct {
	markets *market.Manager

	feeRate      decimal.Decimal
	quoteBalance decimal.Decimal
	baseBalance  decimal.Decimal
}

func NewOrdersService(cfg config.TicketConfig, markets *market.Manager) (*OrdersService, error) {
	const op = "service.NewOrdersService"

	feeRate, err := decimal.NewFromString(cfg.FeeRate)
	if err != nil {
		return nil, fmt.Errorf("%s: fee rate: %w", op, err)
	}
	quote, err := decimal.NewFromString(cfg.QuoteBalance)
	if err != nil {
		return nil, fmt.Errorf("%s: quote balance: %w", op, err)
	}
	base, err := decimal.NewFromString(cfg.BaseBalance)
	if err != nil {
		return nil, fmt.Errorf("%s: base balance: %w", op, err)
	}

	return &OrdersService{
		markets:      markets,
		feeRate:      feeRate,
		quoteBalance: quote,
		baseBalance:  base,
	}, nil
}

// Preview derives the full ticket for the given form state and returns it
// with its validity flag.
func (s *OrdersService) Preview(edit TicketEdit) (models.OrderTicket, error) {
	calc, _, err := s.derive(edit)
	if err != nil {
		return models.OrderTicket{}, err
	}
	return calc.Ticket(), nil
}

// Submit derives the ticket and freezes it into an order. Nothing is
// routed or stored; the order only travels back to the caller.
func (s *OrdersService) Submit(edit TicketEdit) (models.Order, error) {
	calc, refPrice, err := s.derive(edit)
	if err != nil {
		return models.Order{}, err
	}
	return calc.Submit(refPrice)
}

func (s *OrdersService) derive(edit TicketEdit) (*ticket.Calculator, decimal.Decimal, error) {
	if err := validateEdit(edit); err != nil {
		return nil, decimal.Decimal{}, err
	}

	session, err := s.markets.Session(edit.Pair)
	if err != nil {
		return nil, decimal.Decimal{}, err
	}
	refPrice := decimal.NewFromFloat(session.Price())

	calc := ticket.New(edit.Pair, edit.Side, edit.Kind, s.feeRate)

	// Replay the untouched fields first so the last-edited one decides
	// the final derivation.
	if edit.Kind == ticket.KindLimit && edit.Price != nil && edit.Edited != EditPrice {
		calc.SetPrice(*edit.Price)
	}
	if edit.Amount != nil && edit.Edited != EditAmount {
		calc.SetAmount(*edit.Amount, refPrice)
	}

	switch edit.Edited {
	case EditAmount:
		if edit.Amount == nil {
			return nil, decimal.Decimal{}, errs.ErrInvalidOrder
		}
		calc.SetAmount(*edit.Amount, refPrice)
	case EditPrice:
		if edit.Price == nil {
			return nil, decimal.Decimal{}, errs.ErrInvalidOrder
		}
		calc.SetPrice(*edit.Price)
	case EditTotal:
		if edit.Total == nil {
			return nil, decimal.Decimal{}, errs.ErrInvalidOrder
		}
		calc.SetTotal(*edit.Total, refPrice)
	case EditPercent:
		calc.ApplyPercent(edit.Percent, s.balanceFor(edit.Side), refPrice)
	case "":
		// Plain submit with the fields as-is; nothing to rederive.
	default:
		return nil, decimal.Decimal{}, errs.ErrInvalidOrder
	}

	return calc, refPrice, nil
}

func (s *OrdersService) balanceFor(side string) decimal.Decimal {
	if side == ticket.SideBuy {
		return s.quoteBalance
	}
	return s.baseBalance
}

func validateEdit(edit TicketEdit) error {
	if edit.Side != ticket.SideBuy && edit.Side != ticket.SideSell {
		return errs.ErrInvalidOrder
	}
	if edit.Kind != ticket.KindMarket && edit.Kind != ticket.KindLimit {
		return errs.ErrInvalidOrder
	}
	if edit.Edited == EditPercent {
		switch edit.Percent {
		case 25, 50, 75, 100:
		default:
			return errs.ErrInvalidOrder
		}
	}
	return nil
}
