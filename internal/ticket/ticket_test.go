package ticket_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pulseboard/market-feed/internal/ticket"
	"github.com/pulseboard/market-feed/lib/errs"
)

var feeRate = decimal.RequireFromString("0.001")

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAmountEdit(t *testing.T) {
	t.Run("derives_total_from_market_price", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetAmount(d("2.5"), d("100"))

		tk := calc.Ticket()
		if tk.Total == nil || !tk.Total.Equal(d("250")) {
			t.Errorf("Expected total 250, got %v", tk.Total)
		}
		if tk.Fee == nil || !tk.Fee.Equal(d("0.25")) {
			t.Errorf("Expected fee 0.25, got %v", tk.Fee)
		}
		if !tk.Valid {
			t.Error("Expected a valid market ticket")
		}
	})

	t.Run("total_rounds_to_cents", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetAmount(d("0.333333"), d("99.99"))

		tk := calc.Ticket()
		if tk.Total == nil || !tk.Total.Equal(d("33.33")) {
			t.Errorf("Expected total 33.33, got %v", tk.Total)
		}
	})

	t.Run("limit_without_price_leaves_total_unset", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindLimit, feeRate)
		calc.SetAmount(d("2.5"), d("100"))

		tk := calc.Ticket()
		if tk.Total != nil {
			t.Errorf("Expected unset total without a limit price, got %v", tk.Total)
		}
		if tk.Valid {
			t.Error("Expected an invalid limit ticket without a price")
		}
	})
}

func TestPriceEdit(t *testing.T) {
	t.Run("rederives_total_when_amount_is_present", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindLimit, feeRate)
		calc.SetAmount(d("2.5"), decimal.Zero)
		calc.SetPrice(d("100"))

		tk := calc.Ticket()
		if tk.Total == nil || !tk.Total.Equal(d("250")) {
			t.Errorf("Expected total 250 after price edit, got %v", tk.Total)
		}
		if !tk.Valid {
			t.Error("Expected a valid limit ticket")
		}
	})

	t.Run("ignored_for_market_orders", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetPrice(d("100"))

		if tk := calc.Ticket(); tk.Price != nil {
			t.Errorf("Expected no stored price for a market order, got %v", tk.Price)
		}
	})
}

func TestTotalEdit(t *testing.T) {
	t.Run("derives_amount_from_market_price", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetTotal(d("250"), d("100"))

		tk := calc.Ticket()
		if tk.Amount == nil || !tk.Amount.Equal(d("2.5")) {
			t.Errorf("Expected amount 2.5, got %v", tk.Amount)
		}
	})

	t.Run("amount_rounds_to_six_places", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetTotal(d("100"), d("3"))

		tk := calc.Ticket()
		if tk.Amount == nil || !tk.Amount.Equal(d("33.333333")) {
			t.Errorf("Expected amount 33.333333, got %v", tk.Amount)
		}
	})

	t.Run("unknown_price_leaves_amount_unset", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetTotal(d("250"), decimal.Zero)

		tk := calc.Ticket()
		if tk.Amount != nil {
			t.Errorf("Expected unset amount at zero price, got %v", tk.Amount)
		}
		if tk.Valid {
			t.Error("Expected an invalid ticket without a derived amount")
		}
	})
}

func TestApplyPercent(t *testing.T) {
	t.Run("buy_spends_percent_of_quote_balance", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.ApplyPercent(50, d("10000"), d("100"))

		tk := calc.Ticket()
		if tk.Amount == nil || !tk.Amount.Equal(d("50")) {
			t.Errorf("Expected amount 50, got %v", tk.Amount)
		}
		if tk.Total == nil || !tk.Total.Equal(d("5000")) {
			t.Errorf("Expected total 5000, got %v", tk.Total)
		}
	})

	t.Run("sell_offers_percent_of_base_balance", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideSell, ticket.KindMarket, feeRate)
		calc.ApplyPercent(25, d("5"), d("100"))

		tk := calc.Ticket()
		if tk.Amount == nil || !tk.Amount.Equal(d("1.25")) {
			t.Errorf("Expected amount 1.25, got %v", tk.Amount)
		}
		if tk.Total == nil || !tk.Total.Equal(d("125")) {
			t.Errorf("Expected total 125, got %v", tk.Total)
		}
	})

	t.Run("buy_without_price_is_a_no_op", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindLimit, feeRate)
		calc.ApplyPercent(100, d("10000"), d("100"))

		tk := calc.Ticket()
		if tk.Amount != nil {
			t.Errorf("Expected unset amount without a limit price, got %v", tk.Amount)
		}
	})
}

func TestSubmit(t *testing.T) {
	t.Run("invalid_ticket_is_rejected", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)

		_, err := calc.Submit(d("100"))
		if !errors.Is(err, errs.ErrInvalidOrder) {
			t.Errorf("Expected ErrInvalidOrder, got %v", err)
		}
	})

	t.Run("market_order_without_reference_price_is_rejected", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideBuy, ticket.KindMarket, feeRate)
		calc.SetAmount(d("2.5"), decimal.Zero)

		_, err := calc.Submit(decimal.Zero)
		if !errors.Is(err, errs.ErrPriceUnavailable) {
			t.Errorf("Expected ErrPriceUnavailable, got %v", err)
		}
	})

	t.Run("limit_order_freezes_the_entered_price", func(t *testing.T) {
		calc := ticket.New("BTCUSDT", ticket.SideSell, ticket.KindLimit, feeRate)
		calc.SetPrice(d("105"))
		calc.SetAmount(d("2"), d("100"))

		order, err := calc.Submit(d("100"))
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}

		if !order.Price.Equal(d("105")) {
			t.Errorf("Expected order price 105, got %v", order.Price)
		}
		if !order.Total.Equal(d("210")) {
			t.Errorf("Expected order total 210, got %v", order.Total)
		}
		if order.ID.String() == "00000000-0000-0000-0000-000000000000" {
			t.Error("Expected a generated order ID")
		}
		if order.CreatedAt.IsZero() {
			t.Error("Expected a creation timestamp")
		}
	})
}
