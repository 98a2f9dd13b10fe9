package mangopay

import (
	"context"
	"net/http"
)

// CreateNaturalUser registers a new customer with the processor.
func (c *Client) CreateNaturalUser(ctx context.Context, params CreateNaturalUserParams) (*NaturalUser, error) {
	user := NaturalUser{
		FirstName:          params.FirstName,
		LastName:           params.LastName,
		Email:              params.Email,
		Birthday:           params.Birthday,
		Nationality:        params.Nationality,
		CountryOfResidence: params.Country,
		Address: &Address{
			AddressLine1: params.AddressLine1,
			AddressLine2: params.AddressLine2,
			City:         params.City,
			PostalCode:   params.PostalCode,
			Country:      params.Country,
		},
		Tag: params.Tag,
	}

	var created NaturalUser
	if err := c.do(ctx, http.MethodPost, "/users/natural", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetUser fetches a customer by remote id.
func (c *Client) GetUser(ctx context.Context, userID string) (*NaturalUser, error) {
	var user NaturalUser
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
