package checkout

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/satsflow/checkout/internal/types"
)

// RateConverter turns a fiat order into satoshis.
type RateConverter interface {
	Convert(ctx context.Context, money types.Money) (int64, error)
}

// Ledger covers the two write-path calls of a checkout.
type Ledger interface {
	ResolveBTCWallet(ctx context.Context) (string, error)
	CreateInvoice(ctx context.Context, walletID string, satoshis int64, memo string) (*types.Invoice, error)
}

// SettlementWaiter blocks until the invoice settles or ctx is cancelled.
type SettlementWaiter interface {
	Wait(ctx context.Context, paymentRequest string) (types.SettlementResult, error)
}

type Config struct {
	// Memo is attached to the created invoice; empty is fine.
	Memo string
}

// Orchestrator runs one checkout: convert the fiat order, resolve the BTC
// wallet, issue exactly one invoice, then watch for its settlement. Any
// failure before the watch stage aborts the whole pipeline immediately.
type Orchestrator struct {
	// OnInvoice, when set, is called once right after issuance so the caller
	// can present the payment request (print it, render a QR) while the
	// settlement watch runs.
	OnInvoice func(*types.Invoice)

	config  *Config
	rates   RateConverter
	ledger  Ledger
	watcher SettlementWaiter
	log     *slog.Logger
}

// Result is the outcome of a settled checkout. Settlement.Amount is reported
// as observed on the ledger; it is not checked against Satoshis.
type Result struct {
	CheckoutID uuid.UUID
	Satoshis   int64
	Invoice    *types.Invoice
	Settlement types.SettlementResult
}

func New(config *Config, rates RateConverter, ledger Ledger, watcher SettlementWaiter) *Orchestrator {
	return &Orchestrator{
		config:  config,
		rates:   rates,
		ledger:  ledger,
		watcher: watcher,
		log:     slog.With("component", "checkout"),
	}
}

func (o *Orchestrator) Run(ctx context.Context, order types.Money) (*Result, error) {
	checkoutID := uuid.New()
	log := o.log.With("checkout", checkoutID)

	satoshis, err := o.rates.Convert(ctx, order)
	if err != nil {
		return nil, err
	}

	log.Info("Converted order",
		"amount", order.Amount,
		"currency", order.Currency,
		"satoshis", satoshis,
	)

	walletID, err := o.ledger.ResolveBTCWallet(ctx)
	if err != nil {
		return nil, err
	}

	invoice, err := o.ledger.CreateInvoice(ctx, walletID, satoshis, o.config.Memo)
	if err != nil {
		return nil, err
	}

	if o.OnInvoice != nil {
		o.OnInvoice(invoice)
	}

	settlement, err := o.watcher.Wait(ctx, invoice.PaymentRequest)
	if err != nil {
		return nil, err
	}

	return &Result{
		CheckoutID: checkoutID,
		Satoshis:   satoshis,
		Invoice:    invoice,
		Settlement: settlement,
	}, nil
}
