package mangopay

import (
	"context"
	"net/http"
)

// CreateDirectPayIn charges a tokenized card, crediting the wallet. Fees are
// zero; margins are settled outside the pay-in itself.
func (c *Client) CreateDirectPayIn(ctx context.Context, params CreateDirectPayInParams) (*PayIn, error) {
	payin := PayIn{
		AuthorID:            params.AuthorID,
		CreditedWalletID:    params.CreditedWalletID,
		CardID:              params.CardID,
		DebitedFunds:        Money{Amount: params.Amount, Currency: params.Currency},
		Fees:                Money{Amount: 0, Currency: params.Currency},
		SecureModeReturnURL: params.SecureModeReturnURL,
	}

	var created PayIn
	if err := c.do(ctx, http.MethodPost, "/payins/card/direct", payin, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetPayIn fetches a pay-in by remote id. This is a read-only status query,
// never a new charge.
func (c *Client) GetPayIn(ctx context.Context, payinID string) (*PayIn, error) {
	var payin PayIn
	if err := c.do(ctx, http.MethodGet, "/payins/"+payinID, nil, &payin); err != nil {
		return nil, err
	}
	return &payin, nil
}
