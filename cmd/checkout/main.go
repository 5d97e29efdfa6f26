package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/satsflow/checkout/internal/checkout"
	"github.com/satsflow/checkout/internal/env"
	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/ledger"
	"github.com/satsflow/checkout/internal/log"
	"github.com/satsflow/checkout/internal/qr"
	"github.com/satsflow/checkout/internal/rates"
	"github.com/satsflow/checkout/internal/types"
	"github.com/satsflow/checkout/internal/watcher"
)

func main() {
	_ = godotenv.Load()

	logLevel := env.GetString("LOG_LEVEL", "INFO")
	log.Setup(logLevel)

	apiKey := env.GetString("BLINK_API_KEY", "")
	if apiKey == "" {
		slog.Error("BLINK_API_KEY is not set")
		os.Exit(1)
	}

	priceURL := env.GetString("PRICE_API_URL", rates.DefaultBaseURL)
	ledgerURL := env.GetString("LEDGER_API_URL", ledger.DefaultEndpoint)
	httpTimeout := env.GetDuration("HTTP_TIMEOUT", 10*time.Second)
	pollInterval := env.GetDuration("POLL_INTERVAL", 1*time.Second)
	pollWindow := env.GetInt("POLL_WINDOW", 10)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	client := ledger.New(&ledger.Config{
		Endpoint: ledgerURL,
		APIKey:   apiKey,
		Timeout:  httpTimeout,
	})

	// one-shot mode: checkout --status <payment request>
	if len(os.Args) > 2 && os.Args[1] == "--status" {
		if err := checkStatus(ctx, client, os.Args[2], pollWindow); err != nil {
			slog.Error("Status check failed", "error", err)
			os.Exit(1)
		}
		return
	}

	reader := bufio.NewReader(os.Stdin)
	currency := prompt(reader, "Enter the currency (e.g., USD, EUR): ")
	amount := prompt(reader, "Enter the amount: ")
	memo := prompt(reader, "Enter a memo for the invoice (optional): ")

	order, err := types.ParseMoney(currency, amount)
	if err != nil {
		slog.Error("Invalid amount", "error", err)
		os.Exit(1)
	}

	converter := rates.New(&rates.Config{
		BaseURL: priceURL,
		Timeout: httpTimeout,
	})

	watch := watcher.New(&watcher.Config{
		Interval:    pollInterval,
		Window:      pollWindow,
		PollTimeout: httpTimeout,
	}, client)

	orchestrator := checkout.New(&checkout.Config{Memo: memo},
		converter, client, watch)
	orchestrator.OnInvoice = presentInvoice

	var result *checkout.Result

	errGroup, ctx := errgroup.WithContext(ctx)

	errGroup.Go(func() error {
		checkoutResult, err := orchestrator.Run(ctx, order)
		if err != nil {
			return err
		}

		result = checkoutResult
		return nil
	})

	if err := errGroup.Wait(); err != nil {
		if errors.IsCode(err, errors.CodeCancelled) {
			slog.Info("Checkout cancelled")
			os.Exit(1)
		}

		slog.Error("Checkout failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("\nSUCCESS - Payment received!\n")
	fmt.Printf("Amount (satoshis): %d\n", result.Settlement.Amount)
	fmt.Printf("Status: %s\n", result.Settlement.Status)
}

// presentInvoice prints the invoice and opens its QR code. Rendering problems
// are logged only; the settlement watch keeps running either way.
func presentInvoice(invoice *types.Invoice) {
	fmt.Println("\nInvoice created successfully:")
	fmt.Println("Payment Request:", invoice.PaymentRequest)
	fmt.Println("Payment Hash:", invoice.PaymentHash)
	fmt.Println("Payment Secret:", invoice.PaymentSecret)
	fmt.Println("Satoshis:", invoice.Satoshis)
	if invoice.Memo != "" {
		fmt.Println("Memo:", invoice.Memo)
	}

	if err := qr.Show(invoice.PaymentRequest); err != nil {
		slog.Warn("Couldn't display QR code", "error", err)
	}

	fmt.Println("\nWaiting for payment...")
}

// checkStatus looks the payment request up in the recent-transaction window
// once and prints whatever it finds, settled or not.
func checkStatus(ctx context.Context, client *ledger.Client, paymentRequest string, window int) error {
	transactions, err := client.RecentTransactions(ctx, window)
	if err != nil {
		return err
	}

	for _, tx := range transactions {
		if tx.PaymentRequest != paymentRequest {
			continue
		}

		fmt.Printf("Amount (satoshis): %d\n", tx.SettlementAmount)
		fmt.Printf("Status: %s\n", tx.Status)
		return nil
	}

	fmt.Println("No matching transaction found for the provided payment request.")
	return nil
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}

	return strings.TrimSpace(line)
}
