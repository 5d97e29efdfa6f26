package watcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_settlement_polls_total",
		Help: "Settlement poll ticks that completed a window fetch.",
	})

	pollErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_settlement_poll_errors_total",
		Help: "Settlement poll ticks that failed and were retried.",
	})

	settledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_invoices_settled_total",
		Help: "Invoices observed as settled.",
	})
)
