package views

import (
	"context"
	"fmt"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/commands"
)

// ExchangeView replies to /exchange with amount*rate rounded to cents.
type ExchangeView struct {
	rates RatesSource
}

func NewExchangeView(rates RatesSource) *ExchangeView {
	return &ExchangeView{rates: rates}
}

func (v *ExchangeView) Render(ctx context.Context, args []string) (Response, error) {
	parsed, err := commands.ParseExchange(args)
	if err != nil {
		return Response{}, err
	}

	latest, err := v.rates.Latest(ctx, parsed.Base)
	if err != nil {
		return Response{}, err
	}
	if latest == nil || len(latest.Rates) == 0 {
		return Response{}, apperrors.NotFound(apperrors.MsgNotFound)
	}

	// an unknown target currency is reported as an unexpected failure
	rate, ok := latest.Rates.Get(parsed.Currency)
	if !ok {
		return Response{}, fmt.Errorf("currency %q missing from %s rates", parsed.Currency, parsed.Base)
	}

	return Response{Text: parsed.Amount.Mul(rate).StringFixed(2)}, nil
}
