package services

import (
	"context"
	"fmt"
	"time"

	"rates-bot/internal/models"
)

const dateLayout = "2006-01-02"

// RatesClient is the origin API.
type RatesClient interface {
	Latest(ctx context.Context, base string) (*models.RateSnapshot, error)
	History(ctx context.Context, base, symbols string, startAt, endAt *time.Time) (*models.History, error)
}

// LatestArgs and HistoryArgs are the cache key tuples of the two calls.
type LatestArgs struct {
	Base string `json:"base"`
}

type HistoryArgs struct {
	Base    string  `json:"base"`
	Symbols string  `json:"symbols"`
	StartAt *string `json:"start_at"`
	EndAt   *string `json:"end_at"`
}

// RatesService puts a read-through cache in front of each RatesClient call.
type RatesService struct {
	latest  *CacheService[LatestArgs, models.RateSnapshot]
	history *CacheService[HistoryArgs, models.History]
}

func NewRatesService(client RatesClient, store Store, opts CacheOptions) *RatesService {
	latest := FetcherFunc[LatestArgs, models.RateSnapshot]{
		Name: "latest",
		Fn: func(ctx context.Context, a LatestArgs) (*models.RateSnapshot, error) {
			return client.Latest(ctx, a.Base)
		},
	}
	history := FetcherFunc[HistoryArgs, models.History]{
		Name: "history",
		Fn: func(ctx context.Context, a HistoryArgs) (*models.History, error) {
			start, err := parseDate(a.StartAt)
			if err != nil {
				return nil, err
			}
			end, err := parseDate(a.EndAt)
			if err != nil {
				return nil, err
			}
			return client.History(ctx, a.Base, a.Symbols, start, end)
		},
	}

	return &RatesService{
		latest:  NewCacheService[LatestArgs, models.RateSnapshot](store, latest, nil, opts),
		history: NewCacheService[HistoryArgs, models.History](store, history, nil, opts),
	}
}

func (s *RatesService) Latest(ctx context.Context, base string) (*models.RateSnapshot, error) {
	return s.latest.Get(ctx, LatestArgs{Base: base})
}

// History keys the cache by calendar day, so repeated requests on one day
// share an entry.
func (s *RatesService) History(ctx context.Context, base, symbols string, startAt, endAt *time.Time) (*models.History, error) {
	return s.history.Get(ctx, HistoryArgs{
		Base:    base,
		Symbols: symbols,
		StartAt: formatDate(startAt),
		EndAt:   formatDate(endAt),
	})
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", *s, err)
	}
	return &t, nil
}
