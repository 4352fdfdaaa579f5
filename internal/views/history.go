package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/commands"
)

// HistoryView replies to /history with a PNG line chart of base/currency.
type HistoryView struct {
	rates RatesSource
	now   func() time.Time
}

func NewHistoryView(rates RatesSource, now func() time.Time) *HistoryView {
	if now == nil {
		now = time.Now
	}
	return &HistoryView{rates: rates, now: now}
}

func (v *HistoryView) Render(ctx context.Context, args []string) (Response, error) {
	parsed, err := commands.ParseHistory(args)
	if err != nil {
		return Response{}, err
	}

	endAt := v.now()
	startAt := endAt.AddDate(0, 0, -parsed.Days)

	history, err := v.rates.History(ctx, parsed.Base, parsed.Currency, &startAt, &endAt)
	if err != nil {
		return Response{}, err
	}
	if history == nil || len(history.Rates) == 0 {
		return Response{}, apperrors.NotFound(apperrors.MsgNotFound)
	}

	points := make([]Point, 0, len(history.Rates))
	for day, rates := range history.Rates {
		date, err := time.Parse("2006-01-02", day)
		if err != nil {
			return Response{}, fmt.Errorf("history date %q: %w", day, err)
		}
		rate, ok := rates.Get(parsed.Currency)
		if !ok {
			return Response{}, fmt.Errorf("currency %q missing on %s", parsed.Currency, day)
		}
		points = append(points, Point{Date: date, Rate: rate})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	image, err := Chart(parsed.Base+"/"+parsed.Currency, points)
	if err != nil {
		return Response{}, err
	}
	return Response{Image: image}, nil
}
