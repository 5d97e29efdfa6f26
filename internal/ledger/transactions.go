package ledger

import (
	"context"

	"github.com/satsflow/checkout/internal/types"
)

const transactionsQuery = `
query PaymentsWithProof($first: Int) {
  me {
    defaultAccount {
      transactions(first: $first) {
        edges {
          node {
            initiationVia {
              ... on InitiationViaLn {
                paymentRequest
              }
            }
            settlementVia {
              ... on SettlementViaIntraLedger {
                preImage
              }
              ... on SettlementViaLn {
                preImage
              }
            }
            settlementAmount
            status
          }
        }
      }
    }
  }
}`

type transactionsResponse struct {
	Me struct {
		DefaultAccount struct {
			Transactions struct {
				Edges []struct {
					Node struct {
						InitiationVia struct {
							PaymentRequest string `json:"paymentRequest"`
						} `json:"initiationVia"`
						SettlementVia struct {
							PreImage string `json:"preImage"`
						} `json:"settlementVia"`
						SettlementAmount int64  `json:"settlementAmount"`
						Status           string `json:"status"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"transactions"`
		} `json:"defaultAccount"`
	} `json:"me"`
}

// RecentTransactions fetches the most recent window of account transactions,
// most-recent-first. Non-Lightning entries come back with an empty payment
// request. Read-only, safe to poll arbitrarily often.
func (c *Client) RecentTransactions(ctx context.Context, first int) ([]types.Transaction, error) {
	variables := map[string]any{"first": first}

	var resp transactionsResponse
	if err := c.do(ctx, transactionsQuery, variables, &resp); err != nil {
		return nil, err
	}

	edges := resp.Me.DefaultAccount.Transactions.Edges
	transactions := make([]types.Transaction, 0, len(edges))

	for _, edge := range edges {
		transactions = append(transactions, types.Transaction{
			PaymentRequest:   edge.Node.InitiationVia.PaymentRequest,
			PreImage:         edge.Node.SettlementVia.PreImage,
			SettlementAmount: edge.Node.SettlementAmount,
			Status:           types.TxStatus(edge.Node.Status),
		})
	}

	return transactions, nil
}
