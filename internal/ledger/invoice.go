package ledger

import (
	"context"

	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/types"
)

const invoiceCreateMutation = `
mutation LnInvoiceCreate($input: LnInvoiceCreateInput!) {
  lnInvoiceCreate(input: $input) {
    invoice {
      paymentRequest
      paymentHash
      paymentSecret
      satoshis
    }
    errors {
      message
    }
  }
}`

type invoiceCreateResponse struct {
	LnInvoiceCreate struct {
		Invoice *struct {
			PaymentRequest string `json:"paymentRequest"`
			PaymentHash    string `json:"paymentHash"`
			PaymentSecret  string `json:"paymentSecret"`
			Satoshis       int64  `json:"satoshis"`
		} `json:"invoice"`
		Errors []graphQLError `json:"errors"`
	} `json:"lnInvoiceCreate"`
}

// CreateInvoice requests one Lightning invoice for the given amount. The call
// is not idempotent: every invocation creates a new invoice server-side with
// a distinct payment request, so the orchestrator calls it exactly once per
// checkout. A structured rejection (amount too small, invalid wallet, ...)
// surfaces the first ledger error message verbatim.
func (c *Client) CreateInvoice(ctx context.Context, walletID string, satoshis int64, memo string) (*types.Invoice, error) {
	if satoshis <= 0 {
		return nil, errors.Newf(errors.CodeIssuanceRejected, nil,
			"invoice amount must be positive, got %d satoshis", satoshis)
	}

	variables := map[string]any{
		"input": map[string]any{
			"amount":   satoshis,
			"walletId": walletID,
			"memo":     memo,
		},
	}

	var resp invoiceCreateResponse
	if err := c.do(ctx, invoiceCreateMutation, variables, &resp); err != nil {
		return nil, err
	}

	result := resp.LnInvoiceCreate

	if len(result.Errors) > 0 {
		return nil, errors.New(errors.CodeIssuanceRejected, result.Errors[0].Message, nil)
	}

	if result.Invoice == nil {
		return nil, errors.New(errors.CodeTransport, "ledger returned no invoice", nil)
	}

	invoice := &types.Invoice{
		PaymentRequest: result.Invoice.PaymentRequest,
		PaymentHash:    result.Invoice.PaymentHash,
		PaymentSecret:  result.Invoice.PaymentSecret,
		Satoshis:       result.Invoice.Satoshis,
		Memo:           memo,
	}

	c.log.Info("Created invoice",
		"paymentHash", invoice.PaymentHash,
		"satoshis", invoice.Satoshis,
	)

	return invoice, nil
}
