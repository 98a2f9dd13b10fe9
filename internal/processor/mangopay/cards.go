package mangopay

import (
	"context"
	"net/http"
)

// CreateCardRegistration opens a tokenization session for a remote user.
func (c *Client) CreateCardRegistration(ctx context.Context, params CreateCardRegistrationParams) (*CardRegistration, error) {
	reg := CardRegistration{
		UserID:   params.UserID,
		Currency: params.Currency,
		CardType: params.CardType,
		Tag:      params.Tag,
	}

	var created CardRegistration
	if err := c.do(ctx, http.MethodPost, "/cardregistrations", reg, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCard fetches a tokenized card by remote id.
func (c *Client) GetCard(ctx context.Context, cardID string) (*Card, error) {
	var card Card
	if err := c.do(ctx, http.MethodGet, "/cards/"+cardID, nil, &card); err != nil {
		return nil, err
	}
	return &card, nil
}
