package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRatesKeepOriginOrder(t *testing.T) {
	body := []byte(`{"base":"USD","date":"2020-03-20","rates":{"CAD":1.4416,"AUD":1.7308,"EUR":0.9341,"BRL":5.0335}}`)

	var snapshot RateSnapshot
	require.NoError(t, json.Unmarshal(body, &snapshot))

	currencies := make([]string, 0, len(snapshot.Rates))
	for _, r := range snapshot.Rates {
		currencies = append(currencies, r.Currency)
	}
	assert.Equal(t, []string{"CAD", "AUD", "EUR", "BRL"}, currencies)

	encoded, err := json.Marshal(snapshot)
	require.NoError(t, err)

	var again RateSnapshot
	require.NoError(t, json.Unmarshal(encoded, &again))
	assert.Equal(t, snapshot.Rates, again.Rates)
}

func TestRatesGet(t *testing.T) {
	var rates Rates
	require.NoError(t, json.Unmarshal([]byte(`{"CAD":1.4416,"EUR":0.9341}`), &rates))

	v, ok := rates.Get("EUR")
	require.True(t, ok)
	assert.Equal(t, "0.9341", v.String())

	_, ok = rates.Get("RUB")
	assert.False(t, ok)
}

func TestRatesRejectsNonObject(t *testing.T) {
	var rates Rates
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &rates))
	assert.Error(t, json.Unmarshal([]byte(`{"CAD":"x"}`), &rates))
}

func TestHistoryDecodesNestedRates(t *testing.T) {
	body := []byte(`{"base":"USD","start_at":"2020-03-14","end_at":"2020-03-20","rates":{"2020-03-17":{"CAD":1.4314},"2020-03-16":{"CAD":1.3975}}}`)

	var history History
	require.NoError(t, json.Unmarshal(body, &history))

	require.Len(t, history.Rates, 2)
	v, ok := history.Rates["2020-03-16"].Get("CAD")
	require.True(t, ok)
	assert.Equal(t, "1.3975", v.String())
}

func TestRatesKeepNumberText(t *testing.T) {
	var rates Rates
	require.NoError(t, json.Unmarshal([]byte(`{"USD":1.0,"JPY":1.2e-05}`), &rates))

	assert.Equal(t, "1.0", rates[0].String())
	assert.Equal(t, "1.2e-05", rates[1].String())
	assert.Equal(t, "0.000012", rates[1].Value.String())

	encoded, err := json.Marshal(rates)
	require.NoError(t, err)
	assert.JSONEq(t, `{"USD":1.0,"JPY":1.2e-05}`, string(encoded))
	assert.Equal(t, `{"USD":1.0,"JPY":1.2e-05}`, string(encoded))
}
