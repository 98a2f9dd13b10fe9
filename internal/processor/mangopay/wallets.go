package mangopay

import (
	"context"
	"net/http"
)

// CreateWallet creates a wallet owned by a remote user.
func (c *Client) CreateWallet(ctx context.Context, params CreateWalletParams) (*Wallet, error) {
	wallet := Wallet{
		Owners:      []string{params.OwnerID},
		Description: params.Description,
		Currency:    params.Currency,
		Tag:         params.Tag,
	}

	var created Wallet
	if err := c.do(ctx, http.MethodPost, "/wallets", wallet, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListWallets returns all wallets owned by a remote user.
func (c *Client) ListWallets(ctx context.Context, userID string) ([]Wallet, error) {
	var wallets []Wallet
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/wallets", nil, &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}
