package rates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// CryptoClient talks to the CoinMarketCap quotes API.
type CryptoClient struct {
	http   *resty.Client
	apiKey string
}

// NewCryptoClient creates a client for baseURL authenticated with apiKey.
func NewCryptoClient(baseURL, apiKey string) *CryptoClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader(HeaderAccept, MIMEJSON).
		SetHeader(HeaderCMCAPIKey, apiKey)
	return &CryptoClient{http: c, apiKey: apiKey}
}

type cmcStatus struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type cmcQuote struct {
	Price            float64 `json:"price"`
	PercentChange24h float64 `json:"percent_change_24h"`
	MarketCap        float64 `json:"market_cap"`
	Volume24h        float64 `json:"volume_24h"`
}

type cmcCoin struct {
	Name   string              `json:"name"`
	Symbol string              `json:"symbol"`
	Quote  map[string]cmcQuote `json:"quote"`
}

type cmcResponse struct {
	Status cmcStatus          `json:"status"`
	Data   map[string]cmcCoin `json:"data"`
}

// Quote returns the latest USD quote for symbol.
func (c *CryptoClient) Quote(ctx context.Context, symbol string) (*CryptoQuote, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, errors.New(ErrMsgNoSymbol)
	}

	logger.FromContext(ctx).Debug(LogMsgRateRequest, "api", "crypto", "symbol", symbol)

	var body cmcResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("symbol", symbol).
		SetQueryParam("convert", "USD").
		SetResult(&body).
		SetError(&body).
		Get("/cryptocurrency/quotes/latest")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRequestFailed, err)
	}
	if body.Status.ErrorCode != 0 {
		return nil, fmt.Errorf(ErrMsgUpstreamError, body.Status.ErrorMessage)
	}
	if resp.IsError() {
		return nil, fmt.Errorf(ErrMsgUpstreamStatus, resp.StatusCode(), resp.String())
	}

	coin, ok := body.Data[symbol]
	if !ok {
		return nil, fmt.Errorf(ErrMsgNoQuote, symbol)
	}
	usd, ok := coin.Quote["USD"]
	if !ok {
		return nil, fmt.Errorf(ErrMsgNoQuote, symbol)
	}

	q := &CryptoQuote{
		Name:             coin.Name,
		Symbol:           coin.Symbol,
		Price:            usd.Price,
		PercentChange24h: usd.PercentChange24h,
		MarketCap:        usd.MarketCap,
		Volume24h:        usd.Volume24h,
	}
	if q.Symbol == "" {
		q.Symbol = symbol
	}
	return q, nil
}
