package rates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/osse101/ChatterBot_Go/internal/logger"
)

// FXClient talks to fxratesapi.
type FXClient struct {
	http   *resty.Client
	apiKey string
}

// NewFXClient creates a client for baseURL. An empty apiKey uses the anonymous tier.
func NewFXClient(baseURL, apiKey string) *FXClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(DefaultTimeout).
		SetHeader(HeaderAccept, MIMEJSON)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &FXClient{http: c, apiKey: apiKey}
}

type fxLatestResponse struct {
	Success     bool               `json:"success"`
	Base        string             `json:"base"`
	Date        string             `json:"date"`
	Rates       map[string]float64 `json:"rates"`
	Error       string             `json:"error"`
	Description string             `json:"description"`
}

type fxConvertResponse struct {
	Success bool `json:"success"`
	Info    struct {
		Rate float64 `json:"rate"`
	} `json:"info"`
	Result      float64 `json:"result"`
	Error       string  `json:"error"`
	Description string  `json:"description"`
}

// Latest returns the rates of currencies against base.
func (c *FXClient) Latest(ctx context.Context, base string, currencies []string) (*LatestRates, error) {
	if base == "" {
		base = DefaultBase
	}
	if len(currencies) == 0 {
		currencies = DefaultCurrencies
	}
	base = strings.ToUpper(base)

	logger.FromContext(ctx).Debug(LogMsgRateRequest, "api", "fx", "base", base, "currencies", currencies)

	var body fxLatestResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"base":       base,
			"currencies": strings.ToUpper(strings.Join(currencies, ",")),
		}).
		SetResult(&body).
		SetError(&body).
		Get("/latest")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRequestFailed, err)
	}
	if err := fxError(resp, body.Error, body.Description); err != nil {
		return nil, err
	}

	out := &LatestRates{Base: body.Base, Rates: body.Rates}
	if out.Base == "" {
		out.Base = base
	}
	if t, err := parseFXDate(body.Date); err == nil {
		out.Date = t
	}
	return out, nil
}

// Convert converts amount of from into to.
func (c *FXClient) Convert(ctx context.Context, from, to string, amount float64) (*Conversion, error) {
	if amount <= 0 {
		return nil, errors.New(ErrMsgInvalidAmount)
	}
	if from == "" || to == "" {
		return nil, errors.New(ErrMsgInvalidCurrency)
	}
	from, to = strings.ToUpper(from), strings.ToUpper(to)

	logger.FromContext(ctx).Debug(LogMsgRateRequest, "api", "fx", "from", from, "to", to)

	var body fxConvertResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from":   from,
			"to":     to,
			"amount": strconv.FormatFloat(amount, 'f', -1, 64),
			"format": "json",
		}).
		SetResult(&body).
		SetError(&body).
		Get("/convert")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgRequestFailed, err)
	}
	if err := fxError(resp, body.Error, body.Description); err != nil {
		return nil, err
	}

	return &Conversion{
		From:   from,
		To:     to,
		Amount: amount,
		Rate:   body.Info.Rate,
		Result: body.Result,
	}, nil
}

func fxError(resp *resty.Response, apiErr, description string) error {
	if resp.IsError() {
		return fmt.Errorf(ErrMsgUpstreamStatus, resp.StatusCode(), firstNonEmpty(description, apiErr, resp.String()))
	}
	if apiErr != "" {
		return fmt.Errorf(ErrMsgUpstreamError, firstNonEmpty(description, apiErr))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
