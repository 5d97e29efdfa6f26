package rates

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/types"
)

func priceServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/simple/price", r.URL.Path)
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		}))

	t.Cleanup(server.Close)
	return server
}

func money(t *testing.T, currency, amount string) types.Money {
	t.Helper()

	m, err := types.ParseMoney(currency, amount)
	require.NoError(t, err)
	return m
}

func TestConvert(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{"usd":50000}}`)
	converter := New(&Config{BaseURL: server.URL})

	satoshis, err := converter.Convert(context.Background(), money(t, "USD", "100"))
	require.NoError(t, err)
	assert.Equal(t, int64(200000), satoshis)
}

func TestConvert_FloorsNeverUp(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{"usd":50000}}`)
	converter := New(&Config{BaseURL: server.URL})

	// 10.000001 / 50000 * 1e8 = 20000.002 -> the fractional satoshi is dropped
	satoshis, err := converter.Convert(context.Background(), money(t, "USD", "10.000001"))
	require.NoError(t, err)
	assert.Equal(t, int64(20000), satoshis)

	// exact division stays exact
	satoshis, err = converter.Convert(context.Background(), money(t, "USD", "10"))
	require.NoError(t, err)
	assert.Equal(t, int64(20000), satoshis)
}

func TestConvert_FractionalRate(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{"eur":43210.99}}`)
	converter := New(&Config{BaseURL: server.URL})

	satoshis, err := converter.Convert(context.Background(), money(t, "EUR", "1"))
	require.NoError(t, err)

	// floor(1/43210.99*1e8) = floor(2314.22...) = 2314
	assert.Equal(t, int64(2314), satoshis)
}

func TestConvert_CurrencyLowercasedForLookup(t *testing.T) {
	var requestedVs string

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			requestedVs = r.URL.Query().Get("vs_currencies")
			fmt.Fprint(w, `{"bitcoin":{"usd":50000}}`)
		}))
	defer server.Close()

	converter := New(&Config{BaseURL: server.URL})

	_, err := converter.Convert(context.Background(), money(t, "USD", "1"))
	require.NoError(t, err)
	assert.Equal(t, "usd", requestedVs)
}

func TestConvert_RateUnavailable(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{}}`)
	converter := New(&Config{BaseURL: server.URL})

	_, err := converter.Convert(context.Background(), money(t, "XYZ", "10"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeRateUnavailable))
	assert.Contains(t, err.Error(), "XYZ")
}

func TestConvert_ZeroRateUnusable(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{"usd":0}}`)
	converter := New(&Config{BaseURL: server.URL})

	_, err := converter.Convert(context.Background(), money(t, "USD", "10"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeRateUnavailable))
}

func TestConvert_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
	defer server.Close()

	converter := New(&Config{BaseURL: server.URL})

	_, err := converter.Convert(context.Background(), money(t, "USD", "10"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeTransport))
}

func TestRate_ExactDecimal(t *testing.T) {
	server := priceServer(t, `{"bitcoin":{"usd":63125.37}}`)
	converter := New(&Config{BaseURL: server.URL})

	rate, err := converter.Rate(context.Background(), "USD")
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("63125.37")))
}
