package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/metrics"
	"rates-bot/internal/models"
)

const (
	dateLayout = "2006-01-02"

	EndpointLatest  = "/latest"
	EndpointHistory = "/history"
)

// Client talks to an exchangeratesapi.io compatible origin. It never retries:
// one failed request fails the command.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.BotMetrics
}

func NewClient(baseURL string, timeout time.Duration, m *metrics.BotMetrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}
}

// Latest returns the current rates against base.
func (c *Client) Latest(ctx context.Context, base string) (*models.RateSnapshot, error) {
	params := url.Values{}
	params.Set("base", base)

	var snapshot models.RateSnapshot
	if err := c.get(ctx, EndpointLatest, params, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// History returns daily rates of symbols (comma separated) against base.
// startAt and endAt are optional.
func (c *Client) History(ctx context.Context, base, symbols string, startAt, endAt *time.Time) (*models.History, error) {
	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", symbols)
	if startAt != nil {
		params.Set("start_at", startAt.Format(dateLayout))
	}
	if endAt != nil {
		params.Set("end_at", endAt.Format(dateLayout))
	}

	var history models.History
	if err := c.get(ctx, EndpointHistory, params, &history); err != nil {
		return nil, err
	}
	return &history, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	apiURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.OriginRequest(endpoint, "unavailable")
		return apperrors.Unavailable(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.OriginRequest(endpoint, "unavailable")
		return apperrors.Unavailable(err)
	}

	var errResp struct {
		Error json.RawMessage `json:"error"`
	}
	// "error": null is a successful response
	if json.Unmarshal(body, &errResp) == nil && len(errResp.Error) > 0 && string(errResp.Error) != "null" {
		c.metrics.OriginRequest(endpoint, "api_error")
		return apperrors.API(errorMessage(errResp.Error))
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		c.metrics.OriginRequest(endpoint, "unavailable")
		return apperrors.Unavailable(fmt.Errorf("%s returned %d", endpoint, resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.metrics.OriginRequest(endpoint, "malformed")
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}

	c.metrics.OriginRequest(endpoint, "ok")
	return nil
}

// errorMessage accepts both {"error":"text"} and structured error payloads.
func errorMessage(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	var structured struct {
		Info    string `json:"info"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &structured); err == nil {
		if structured.Info != "" {
			return structured.Info
		}
		if structured.Message != "" {
			return structured.Message
		}
	}
	return string(raw)
}
