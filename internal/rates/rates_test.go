package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFXClient_Latest(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest", r.URL.Path)
		assert.Equal(t, "EUR", r.URL.Query().Get("base"))
		assert.Equal(t, "USD,GBP", r.URL.Query().Get("currencies"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"base":"EUR","date":"2024-03-01T10:00:00.000Z","rates":{"USD":1.08,"GBP":0.85}}`))
	})

	got, err := NewFXClient(srv.URL, "secret").Latest(context.Background(), "eur", []string{"usd", "gbp"})
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Base)
	assert.InDelta(t, 1.08, got.Rates["USD"], 1e-9)
	assert.Equal(t, 2024, got.Date.Year())
}

func TestFXClient_LatestDefaults(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "USD", r.URL.Query().Get("base"))
		assert.Equal(t, "EUR,GBP,JPY", r.URL.Query().Get("currencies"))
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"rates":{"EUR":0.9}}`))
	})

	got, err := NewFXClient(srv.URL, "").Latest(context.Background(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, "USD", got.Base)
	assert.True(t, got.Date.IsZero())
}

func TestFXClient_LatestAPIError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"invalid_base","description":"Base currency is not supported"}`))
	})

	_, err := NewFXClient(srv.URL, "").Latest(context.Background(), "XXX", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Base currency is not supported")
}

func TestFXClient_LatestHTTPError(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate_limited"}`))
	})

	_, err := NewFXClient(srv.URL, "").Latest(context.Background(), "USD", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate_limited")
}

func TestFXClient_Convert(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/convert", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "USD", q.Get("from"))
		assert.Equal(t, "EUR", q.Get("to"))
		assert.Equal(t, "12.5", q.Get("amount"))
		_, _ = w.Write([]byte(`{"success":true,"info":{"rate":0.9},"result":11.25}`))
	})

	got, err := NewFXClient(srv.URL, "k").Convert(context.Background(), "usd", "eur", 12.5)
	require.NoError(t, err)
	assert.Equal(t, &Conversion{From: "USD", To: "EUR", Amount: 12.5, Rate: 0.9, Result: 11.25}, got)
}

func TestFXClient_ConvertValidation(t *testing.T) {
	c := NewFXClient("http://127.0.0.1:1", "")

	_, err := c.Convert(context.Background(), "USD", "EUR", 0)
	assert.EqualError(t, err, ErrMsgInvalidAmount)

	_, err = c.Convert(context.Background(), "", "EUR", 1)
	assert.EqualError(t, err, ErrMsgInvalidCurrency)
}

func TestCryptoClient_Quote(t *testing.T) {
	srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cryptocurrency/quotes/latest", r.URL.Path)
		assert.Equal(t, "BTC", r.URL.Query().Get("symbol"))
		assert.Equal(t, "USD", r.URL.Query().Get("convert"))
		assert.Equal(t, "cmc-key", r.Header.Get(HeaderCMCAPIKey))
		_, _ = w.Write([]byte(`{"status":{"error_code":0},"data":{"BTC":{"name":"Bitcoin","symbol":"BTC",
			"quote":{"USD":{"price":65000.5,"percent_change_24h":-1.2,"market_cap":1.2e12,"volume_24h":3.4e10}}}}}`))
	})

	got, err := NewCryptoClient(srv.URL, "cmc-key").Quote(context.Background(), " btc ")
	require.NoError(t, err)
	assert.Equal(t, "Bitcoin", got.Name)
	assert.Equal(t, "BTC", got.Symbol)
	assert.InDelta(t, 65000.5, got.Price, 1e-9)
	assert.InDelta(t, -1.2, got.PercentChange24h, 1e-9)
}

func TestCryptoClient_QuoteErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		_, err := NewCryptoClient("http://127.0.0.1:1", "").Quote(context.Background(), "BTC")
		assert.True(t, errors.Is(err, ErrNotConfigured))
	})

	t.Run("empty symbol", func(t *testing.T) {
		_, err := NewCryptoClient("http://127.0.0.1:1", "k").Quote(context.Background(), "  ")
		assert.EqualError(t, err, ErrMsgNoSymbol)
	})

	t.Run("api error status", func(t *testing.T) {
		srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":{"error_code":400,"error_message":"Invalid value for \"symbol\": \"ZZZ\""}}`))
		})
		_, err := NewCryptoClient(srv.URL, "k").Quote(context.Background(), "ZZZ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid value")
	})

	t.Run("missing coin", func(t *testing.T) {
		srv := jsonServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":{"error_code":0},"data":{}}`))
		})
		_, err := NewCryptoClient(srv.URL, "k").Quote(context.Background(), "ETH")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ETH")
	})
}
