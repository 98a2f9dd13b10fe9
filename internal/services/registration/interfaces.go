package registration

import (
	"context"

	"payflow/internal/processor/mangopay"
)

// Processor is the slice of the remote API this service orchestrates.
type Processor interface {
	GetUser(ctx context.Context, userID string) (*mangopay.NaturalUser, error)
	CreateNaturalUser(ctx context.Context, params mangopay.CreateNaturalUserParams) (*mangopay.NaturalUser, error)
	ListWallets(ctx context.Context, userID string) ([]mangopay.Wallet, error)
	CreateWallet(ctx context.Context, params mangopay.CreateWalletParams) (*mangopay.Wallet, error)
	CreateCardRegistration(ctx context.Context, params mangopay.CreateCardRegistrationParams) (*mangopay.CardRegistration, error)
}

// Service opens card registration sessions, creating the remote user and
// wallet on demand.
type Service interface {
	PreRegisterCard(ctx context.Context, req Request) (*Session, error)
}
