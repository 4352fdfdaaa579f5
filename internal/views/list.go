package views

import (
	"context"
	"strings"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/commands"
)

// ListView replies to /list with one "CODE: rate" line per currency, in the
// order the origin returned them.
type ListView struct {
	rates RatesSource
}

func NewListView(rates RatesSource) *ListView {
	return &ListView{rates: rates}
}

func (v *ListView) Render(ctx context.Context, args []string) (Response, error) {
	parsed := commands.ParseList(args)

	latest, err := v.rates.Latest(ctx, parsed.Base)
	if err != nil {
		return Response{}, err
	}
	if latest == nil || len(latest.Rates) == 0 {
		return Response{}, apperrors.NotFound(apperrors.MsgNotFound)
	}

	lines := make([]string, 0, len(latest.Rates))
	for _, rate := range latest.Rates {
		lines = append(lines, rate.Currency+": "+rate.String())
	}
	return Response{Text: strings.Join(lines, "\n")}, nil
}
