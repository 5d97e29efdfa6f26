package ledger

import (
	"context"

	"github.com/satsflow/checkout/internal/errors"
	"github.com/satsflow/checkout/internal/types"
)

const walletsQuery = `
query Me {
  me {
    defaultAccount {
      wallets {
        id
        walletCurrency
        balance
      }
    }
  }
}`

type walletsResponse struct {
	Me struct {
		DefaultAccount struct {
			Wallets []struct {
				ID             string `json:"id"`
				WalletCurrency string `json:"walletCurrency"`
				Balance        int64  `json:"balance"`
			} `json:"wallets"`
		} `json:"defaultAccount"`
	} `json:"me"`
}

// Wallets fetches the full wallet list for the authenticated account.
func (c *Client) Wallets(ctx context.Context) ([]types.Wallet, error) {
	var resp walletsResponse
	if err := c.do(ctx, walletsQuery, nil, &resp); err != nil {
		return nil, err
	}

	wallets := make([]types.Wallet, 0, len(resp.Me.DefaultAccount.Wallets))
	for _, w := range resp.Me.DefaultAccount.Wallets {
		wallets = append(wallets, types.Wallet{
			ID:       w.ID,
			Currency: types.WalletCurrency(w.WalletCurrency),
			Balance:  w.Balance,
		})
	}

	return wallets, nil
}

// ResolveBTCWallet returns the id of the first BTC-denominated wallet of the
// account. A missing BTC wallet is terminal for the checkout, never retried.
func (c *Client) ResolveBTCWallet(ctx context.Context) (string, error) {
	wallets, err := c.Wallets(ctx)
	if err != nil {
		return "", err
	}

	for _, wallet := range wallets {
		if wallet.Currency == types.WalletCurrencyBTC {
			c.log.Debug("Resolved BTC wallet", "wallet", wallet.ID)
			return wallet.ID, nil
		}
	}

	return "", errors.New(errors.CodeWalletNotFound, "BTC wallet not found", nil)
}
