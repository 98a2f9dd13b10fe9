package paymentmethod

import (
	"context"

	"payflow/internal/models"
)

// Service persists tokenized card references after the browser kit finished
// registering the card with the processor.
type Service interface {
	Commit(ctx context.Context, req CommitRequest) (*models.PaymentMethod, error)
	Get(ctx context.Context, id uint) (*models.PaymentMethod, error)
	ListForAccount(accountID uint) ([]*models.PaymentMethod, error)
	Delete(ctx context.Context, id uint, accountID uint) error
}
