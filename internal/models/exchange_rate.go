package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type Rate struct {
	Currency string
	Value    decimal.Decimal
	// Text is the number as the origin wrote it, e.g. "1.0" or "1.2e-05".
	Text string
}

// String is the origin's spelling of the rate when known.
func (r Rate) String() string {
	if r.Text != "" {
		return r.Text
	}
	return r.Value.String()
}

// Rates keeps currency rates in the order the origin returned them. It is
// encoded as a JSON object, so a cached copy round-trips with the same order.
type Rates []Rate

func (r Rates) Get(currency string) (decimal.Decimal, bool) {
	for _, rate := range r {
		if rate.Currency == currency {
			return rate.Value, true
		}
	}
	return decimal.Decimal{}, false
}

func (r Rates) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rate := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rate.Currency)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(rate.String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *Rates) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("rates: expected object, got %v", tok)
	}

	rates := Rates{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		currency, ok := tok.(string)
		if !ok {
			return fmt.Errorf("rates: expected currency key, got %v", tok)
		}

		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("rates: value for %s: %w", currency, err)
		}
		value, err := decimal.NewFromString(num.String())
		if err != nil {
			return fmt.Errorf("rates: value for %s: %w", currency, err)
		}
		rates = append(rates, Rate{Currency: currency, Value: value, Text: num.String()})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = rates
	return nil
}

// RateSnapshot is the body of GET /latest.
type RateSnapshot struct {
	Base  string `json:"base"`
	Date  string `json:"date,omitempty"`
	Rates Rates  `json:"rates"`
}

// History is the body of GET /history: date (YYYY-MM-DD) to rates on that day.
type History struct {
	Base    string           `json:"base"`
	StartAt string           `json:"start_at,omitempty"`
	EndAt   string           `json:"end_at,omitempty"`
	Rates   map[string]Rates `json:"rates"`
}
