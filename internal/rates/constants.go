package rates

import "time"

// Default endpoints
const (
	DefaultFXBaseURL     = "https://api.fxratesapi.com"
	DefaultCryptoBaseURL = "https://pro-api.coinmarketcap.com/v1"
)

// DefaultTimeout bounds every outbound rate request.
const DefaultTimeout = 10 * time.Second

// DefaultBase and DefaultCurrencies are used by Latest when the caller passes none.
const DefaultBase = "USD"

var DefaultCurrencies = []string{"EUR", "GBP", "JPY"}

// Header names
const (
	HeaderCMCAPIKey = "X-CMC_PRO_API_KEY"
	HeaderAccept    = "Accept"
	MIMEJSON        = "application/json"
)

// Error messages
const (
	ErrMsgRequestFailed   = "rate request failed: %w"
	ErrMsgUpstreamStatus  = "rate API returned %d: %s"
	ErrMsgUpstreamError   = "rate API error: %s"
	ErrMsgNoQuote         = "no USD price data available for %s"
	ErrMsgInvalidAmount   = "amount must be positive"
	ErrMsgInvalidCurrency = "currency codes are required"
	ErrMsgNoSymbol        = "no ticker symbol provided"
)

// Log messages
const (
	LogMsgRateRequest = "Requesting rates"
)
