package watcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/types"
)

// Ledger is the read-only transaction feed the watcher polls.
type Ledger interface {
	RecentTransactions(ctx context.Context, first int) ([]types.Transaction, error)
}

type Config struct {
	// Interval between poll ticks. The timer is re-armed only after the
	// previous call resolves, so the effective period is roughly
	// Interval + last call latency.
	Interval time.Duration
	// Window is how many recent transactions each tick inspects.
	Window int
	// PollTimeout bounds a single tick's remote call.
	PollTimeout time.Duration
}

// Watcher decides from the recent-transaction window whether a specific
// invoice settled.
//
// Known limitation: only the most recent Window entries are ever inspected.
// On a busy account an unsettled invoice can scroll out of the window before
// it settles and will then never match again.
type Watcher struct {
	config *Config
	ledger Ledger
	log    *slog.Logger
}

func New(config *Config, ledger Ledger) *Watcher {
	if config.Interval == 0 {
		config.Interval = time.Second
	}
	if config.Window == 0 {
		config.Window = 10
	}
	if config.PollTimeout == 0 {
		config.PollTimeout = 10 * time.Second
	}

	return &Watcher{
		config: config,
		ledger: ledger,
		log:    slog.With("component", "watcher"),
	}
}

// Poll performs one tick: fetch the window and match paymentRequest against
// it with exact string equality. The result is Matched only when the entry's
// status counts as settled; a found-but-pending entry reports its status with
// Matched false so the caller keeps polling.
func (w *Watcher) Poll(ctx context.Context, paymentRequest string) (types.SettlementResult, error) {
	transactions, err := w.ledger.RecentTransactions(ctx, w.config.Window)
	if err != nil {
		pollErrors.Inc()
		return types.SettlementResult{}, err
	}

	pollsTotal.Inc()

	var result types.SettlementResult

	for _, tx := range transactions {
		if tx.PaymentRequest != paymentRequest {
			continue
		}

		if tx.Status.Settled() {
			settledTotal.Inc()
			return types.SettlementResult{
				Matched: true,
				Amount:  tx.SettlementAmount,
				Status:  tx.Status,
			}, nil
		}

		// remember the first unsettled sighting, keep scanning in case a
		// settled entry for the same request is also in the window
		if result.Status == "" {
			result.Status = tx.Status
		}
	}

	return result, nil
}

// Wait polls on the fixed interval until the invoice settles or ctx is
// cancelled. A failed tick is logged and treated as "no match yet"; the only
// failure Wait itself reports is cancellation.
func (w *Watcher) Wait(ctx context.Context, paymentRequest string) (types.SettlementResult, error) {
	w.log.Info("Waiting for settlement", "interval", w.config.Interval)

	interval := time.Duration(0)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping settlement watch...")
			return types.SettlementResult{}, errors.New(errors.CodeCancelled,
				"settlement watch cancelled", ctx.Err())

		case <-time.After(interval):
			interval = w.config.Interval

			tickCtx, cancel := context.WithTimeout(ctx, w.config.PollTimeout)
			result, err := w.Poll(tickCtx, paymentRequest)
			cancel()

			if err != nil {
				w.log.Warn("Settlement poll failed, will retry", "error", err)
				continue
			}

			if result.Matched {
				w.log.Info("Invoice settled",
					"amount", result.Amount,
					"status", result.Status,
				)
				return result, nil
			}

			if result.Status != "" {
				w.log.Debug("Invoice found but not settled", "status", result.Status)
			}
		}
	}
}
