// Package registration orchestrates card pre-registration against the remote
// processor: resolve or create the customer, reuse or create the wallet for
// the checkout currency, then open a tokenization session.
package registration

import (
	"context"
	"fmt"
	"log"
	"time"

	"payflow/internal/config"
	"payflow/internal/models"
	"payflow/internal/processor/mangopay"
	"payflow/internal/repositories"
	"payflow/internal/validation"
)

type service struct {
	processor Processor
	userRepo  repositories.UserRepository
	cfg       config.GatewayConfig
}

// NewService creates the registration orchestrator.
func NewService(processor Processor, userRepo repositories.UserRepository, cfg config.GatewayConfig) Service {
	if processor == nil {
		panic("processor client is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{
		processor: processor,
		userRepo:  userRepo,
		cfg:       cfg,
	}
}

// PreRegisterCard runs the full pre-registration sequence. None of the
// remote steps are idempotent; concurrent duplicate submissions can create
// duplicate remote users and wallets.
func (s *service) PreRegisterCard(ctx context.Context, req Request) (*Session, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	account := s.loadAccount(req.AccountID)
	remoteUser := s.resolveRemoteUser(ctx, account)

	if remoteUser == nil {
		created, err := s.createRemoteUser(ctx, req.Billing)
		if err != nil {
			return nil, err
		}
		remoteUser = created

		if account != nil {
			account.SetRemoteID(s.cfg.RemoteIDProvider(), remoteUser.ID)
			if err := s.userRepo.Update(account); err != nil {
				log.Printf("unable to persist remote id %s on account %d: %v", remoteUser.ID, account.ID, err)
			}
		}
	}

	wallet, err := s.resolveWallet(ctx, remoteUser.ID, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	reg, err := s.processor.CreateCardRegistration(ctx, mangopay.CreateCardRegistrationParams{
		UserID:   remoteUser.ID,
		Currency: req.CurrencyCode,
		CardType: req.CardType,
		Tag:      s.cfg.Tag,
	})
	if err != nil {
		log.Printf("unable to open card registration for user %s: %v", remoteUser.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrCreateRegistration, err)
	}

	return &Session{
		UserID:              remoteUser.ID,
		WalletID:            wallet.ID,
		CardRegistrationURL: reg.CardRegistrationURL,
		PreregistrationData: reg.PreregistrationData,
		CardRegistrationID:  reg.ID,
		CardType:            reg.CardType,
		AccessKey:           reg.AccessKey,
	}, nil
}

func (s *service) validate(req Request) error {
	v := validation.New()
	v.Required("currency_code", req.CurrencyCode)
	v.Check(len(req.CurrencyCode) == 3, "currency_code", "must be a 3-letter currency code")
	v.Required("card_type", req.CardType)
	v.Billing(&req.Billing, s.cfg.SimpleKYC)

	if !v.Valid() {
		field, message := v.FirstError()
		return &ValidationError{Field: field, Message: message}
	}
	return nil
}

func (s *service) loadAccount(accountID uint) *models.User {
	if accountID == 0 {
		return nil
	}
	account, err := s.userRepo.GetByID(accountID)
	if err != nil {
		log.Printf("unable to load account %d: %v", accountID, err)
		return nil
	}
	return account
}

// resolveRemoteUser fetches the remote user previously associated with the
// account, if any. A fetch failure is logged and treated as "not found" so
// transient remote unavailability degrades to creating a fresh remote user.
func (s *service) resolveRemoteUser(ctx context.Context, account *models.User) *mangopay.NaturalUser {
	if account == nil {
		return nil
	}
	remoteID := account.RemoteID(s.cfg.RemoteIDProvider())
	if remoteID == "" {
		return nil
	}

	remoteUser, err := s.processor.GetUser(ctx, remoteID)
	if err != nil {
		log.Printf("unable to retrieve remote user %s while registering a card: %v", remoteID, err)
		return nil
	}
	return remoteUser
}

func (s *service) createRemoteUser(ctx context.Context, billing models.BillingInformation) (*mangopay.NaturalUser, error) {
	var birthday int64
	if billing.DateOfBirth != "" {
		if dob, err := time.ParseInLocation("2006-01-02", billing.DateOfBirth, time.UTC); err == nil {
			birthday = dob.Unix()
		}
	}

	user, err := s.processor.CreateNaturalUser(ctx, mangopay.CreateNaturalUserParams{
		FirstName:    billing.FirstName,
		LastName:     billing.LastName,
		Email:        billing.Email,
		Birthday:     birthday,
		Nationality:  billing.Nationality,
		Country:      billing.CountryCode,
		AddressLine1: billing.AddressLine1,
		AddressLine2: billing.AddressLine2,
		City:         billing.City,
		PostalCode:   billing.PostalCode,
		Tag:          s.cfg.Tag,
	})
	if err != nil {
		log.Printf("unable to create remote user while registering a card: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCreateUser, err)
	}
	return user, nil
}

// resolveWallet reuses the first wallet matching the gateway tag and
// currency, creating one when none exists. A listing failure is non-fatal
// and treated as "no wallet found".
func (s *service) resolveWallet(ctx context.Context, remoteUserID, currencyCode string) (*mangopay.Wallet, error) {
	wallets, err := s.processor.ListWallets(ctx, remoteUserID)
	if err != nil {
		log.Printf("unable to retrieve wallets for remote user %s: %v", remoteUserID, err)
	}
	for i := range wallets {
		if wallets[i].Tag == s.cfg.Tag && wallets[i].Currency == currencyCode {
			return &wallets[i], nil
		}
	}

	wallet, err := s.processor.CreateWallet(ctx, mangopay.CreateWalletParams{
		OwnerID:     remoteUserID,
		Currency:    currencyCode,
		Description: fmt.Sprintf("%s wallet", currencyCode),
		Tag:         s.cfg.Tag,
	})
	if err != nil {
		log.Printf("unable to create wallet for remote user %s: %v", remoteUserID, err)
		return nil, fmt.Errorf("%w: %v", ErrCreateWallet, err)
	}
	return wallet, nil
}
