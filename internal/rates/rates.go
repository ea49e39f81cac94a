package rates

import (
	"errors"
	"time"
)

// ErrNotConfigured is returned when a client has no API key.
var ErrNotConfigured = errors.New("API key not configured")

// LatestRates is a snapshot of exchange rates against Base.
type LatestRates struct {
	Base  string             `json:"base"`
	Date  time.Time          `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Conversion is the result of converting Amount of From into To.
type Conversion struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

// CryptoQuote is the latest USD quote of a cryptocurrency.
type CryptoQuote struct {
	Name             string  `json:"name"`
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	PercentChange24h float64 `json:"percent_change_24h"`
	MarketCap        float64 `json:"market_cap"`
	Volume24h        float64 `json:"volume_24h"`
}
