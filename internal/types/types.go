package types

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/satsflow/checkout/internal/errors"
)

// Money is a fiat order amount. It is consumed once by the rate converter and
// never mutated.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// ParseMoney builds a Money value from free-text user input. The currency is
// normalized to uppercase for display; the amount must parse as a
// non-negative decimal number.
func ParseMoney(currency, amount string) (Money, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, errors.Newf(errors.CodeInvalidAmount, err,
			"invalid amount %q, please enter a numeric value", amount)
	}

	if value.IsNegative() {
		return Money{}, errors.Newf(errors.CodeInvalidAmount, nil,
			"amount %s must not be negative", value)
	}

	return Money{
		Amount:   value,
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	}, nil
}

type WalletCurrency string

const (
	WalletCurrencyBTC WalletCurrency = "BTC"
	WalletCurrencyUSD WalletCurrency = "USD"
)

// Wallet is a read-only snapshot of a ledger wallet, fetched once per
// checkout and held only long enough to extract its ID.
type Wallet struct {
	ID       string
	Currency WalletCurrency
	Balance  int64
}

// Invoice is a Lightning invoice as returned by the ledger. It is created
// exactly once per checkout and identified externally by PaymentRequest.
type Invoice struct {
	PaymentRequest string
	PaymentHash    string
	PaymentSecret  string
	Satoshis       int64
	Memo           string
}

type TxStatus string

const (
	TxStatusPending   TxStatus = "PENDING"
	TxStatusSuccess   TxStatus = "SUCCESS"
	TxStatusCompleted TxStatus = "COMPLETED"
	TxStatusFailure   TxStatus = "FAILURE"
)

// Settled reports whether the status counts as a completed settlement. The
// ledger's status vocabulary is imprecise, so the comparison is
// case-insensitive and anything other than SUCCESS/COMPLETED is not settled.
func (s TxStatus) Settled() bool {
	switch TxStatus(strings.ToUpper(string(s))) {
	case TxStatusSuccess, TxStatusCompleted:
		return true
	}
	return false
}

// Transaction is one entry of the ledger's recent-transaction window.
// Entries are externally owned and arrive most-recent-first.
type Transaction struct {
	PaymentRequest   string
	PreImage         string
	SettlementAmount int64
	Status           TxStatus
}

// SettlementResult is what a single settlement poll produces. When the target
// invoice is found but not yet settled, Matched is false and Status carries
// the observed status; when it is not in the window at all, Status is empty.
type SettlementResult struct {
	Matched bool
	Amount  int64
	Status  TxStatus
}
