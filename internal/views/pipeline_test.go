package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"rates-bot/internal/api"
	"rates-bot/internal/apperrors"
	"rates-bot/internal/logger"
	"rates-bot/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	latestBody  = `{"rates":{"CAD":1.4416,"EUR":0.9341},"base":"USD","date":"2020-03-20"}`
	historyBody = `{"rates":{"2020-03-17":{"CAD":1.4150},"2020-03-16":{"CAD":1.3975}},"start_at":"2020-03-14","base":"USD","end_at":"2020-03-20"}`
)

type pipeline struct {
	list     Renderer
	exchange Renderer
	history  Renderer
}

// newPipeline wires views to the real cache and HTTP client against url.
func newPipeline(t *testing.T, url string, ttl time.Duration) pipeline {
	t.Helper()
	client := api.NewClient(url, time.Second, nil)
	source := services.NewRatesService(client, services.NewMemoryStore(), services.CacheOptions{
		TTL:    ttl,
		Prefix: "rates:",
		Logger: logger.Discard(),
	})
	now := func() time.Time { return time.Date(2020, 3, 20, 12, 0, 0, 0, time.UTC) }
	return pipeline{
		list:     NewListView(source),
		exchange: NewExchangeView(source),
		history:  NewHistoryView(source, now),
	}
}

func originServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/latest":
			w.Write([]byte(latestBody))
		case "/history":
			w.Write([]byte(historyBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, calls
}

func TestPipelineListIsCached(t *testing.T) {
	srv, calls := originServer(t)
	p := newPipeline(t, srv.URL, time.Minute)

	first, err := Render(context.Background(), p.list, []string{"USD"})
	require.NoError(t, err)
	second, err := Render(context.Background(), p.list, []string{"USD"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "CAD: 1.4416\nEUR: 0.9341", second.Text)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPipelineIsIdempotentWithoutCache(t *testing.T) {
	srv, calls := originServer(t)
	p := newPipeline(t, srv.URL, 0)

	for _, tc := range []struct {
		name string
		view Renderer
		args []string
	}{
		{"list", p.list, nil},
		{"exchange", p.exchange, []string{"10", "USD", "to", "CAD"}},
		{"history", p.history, []string{"USD", "CAD", "for", "7", "days"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			first, err := Render(context.Background(), tc.view, tc.args)
			require.NoError(t, err)
			second, err := Render(context.Background(), tc.view, tc.args)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
	assert.EqualValues(t, 6, calls.Load())
}

func TestPipelineInvalidExchangeMakesNoRequest(t *testing.T) {
	srv, calls := originServer(t)
	p := newPipeline(t, srv.URL, time.Minute)

	resp, err := Render(context.Background(), p.exchange, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.MsgInvalidArguments, resp.Text)
	assert.Zero(t, calls.Load())
}

func TestPipelineOriginDown(t *testing.T) {
	srv, _ := originServer(t)
	url := srv.URL
	srv.Close()
	p := newPipeline(t, url, time.Minute)

	for name, tc := range map[string]struct {
		view Renderer
		args []string
	}{
		"list":     {p.list, nil},
		"exchange": {p.exchange, []string{"10", "to", "CAD"}},
		"history":  {p.history, []string{"USD", "CAD"}},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := Render(context.Background(), tc.view, tc.args)
			require.Error(t, err)
			assert.Equal(t, apperrors.MsgConnection, resp.Text)
		})
	}
}
