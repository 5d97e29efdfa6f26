package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/types"
)

const (
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// asset key the price source files Bitcoin rates under
	assetBitcoin = "bitcoin"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Converter turns a fiat Money value into satoshis using the current
// fiat-per-BTC rate. The rate is re-fetched on every call, never cached.
type Converter struct {
	config *Config
	client *http.Client
	log    *slog.Logger
}

func New(config *Config) *Converter {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}

	return &Converter{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		log:    slog.With("component", "rates"),
	}
}

// Rate fetches the current fiat-per-BTC rate for the given currency code.
// The code is lowercased for the lookup key; a currency the price source
// does not quote yields CodeRateUnavailable.
func (c *Converter) Rate(ctx context.Context, currency string) (decimal.Decimal, error) {
	key := strings.ToLower(currency)

	query := url.Values{}
	query.Set("ids", assetBitcoin)
	query.Set("vs_currencies", key)

	endpoint := fmt.Sprintf("%s/simple/price?%s", c.config.BaseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, errors.New(errors.CodeTransport,
			"couldn't build price request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, errors.New(errors.CodeTransport,
			"error fetching exchange rate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, errors.Newf(errors.CodeTransport, nil,
			"price source returned status %d", resp.StatusCode)
	}

	// {"bitcoin": {"usd": 50000.12}}; json.Number keeps the quoted rate exact
	var prices map[string]map[string]json.Number

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&prices); err != nil {
		return decimal.Zero, errors.New(errors.CodeTransport,
			"couldn't decode price response", err)
	}

	rateStr, ok := prices[assetBitcoin][key]
	if !ok {
		return decimal.Zero, errors.Newf(errors.CodeRateUnavailable, nil,
			"currency %s not found", strings.ToUpper(currency))
	}

	rate, err := decimal.NewFromString(rateStr.String())
	if err != nil || !rate.IsPositive() {
		return decimal.Zero, errors.Newf(errors.CodeRateUnavailable, err,
			"price source returned unusable rate %q for %s",
			rateStr.String(), strings.ToUpper(currency))
	}

	c.log.Debug("Fetched exchange rate", "currency", key, "rate", rate)

	return rate, nil
}

// Convert returns floor(amount / rate * 1e8) satoshis for the given fiat
// order. Flooring is deliberate: the payer is never overcharged by a
// rounded-up satoshi. The division is exact decimal arithmetic, so no float
// artifacts can push the result up either.
func (c *Converter) Convert(ctx context.Context, money types.Money) (int64, error) {
	rate, err := c.Rate(ctx, money.Currency)
	if err != nil {
		return 0, err
	}

	// amount/rate*1e8 == amount*1e8/rate; QuoRem with precision 0 truncates
	// the quotient to an integer, which is floor for non-negative input.
	satoshis, _ := money.Amount.Shift(8).QuoRem(rate, 0)

	c.log.Debug("Converted fiat amount",
		"amount", money.Amount,
		"currency", money.Currency,
		"rate", rate,
		"satoshis", satoshis,
	)

	return satoshis.IntPart(), nil
}
