// Package paymentmethod stores and serves tokenized card references. Only
// processor-side ids and descriptor metadata ever touch this package; the
// card number stays between the browser and the processor.
package paymentmethod

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"payflow/internal/config"
	"payflow/internal/models"
	"payflow/internal/repositories"
	"payflow/internal/repositories/cache"
)

type service struct {
	repo     repositories.PaymentMethodRepository
	userRepo repositories.UserRepository
	cache    *cache.CacheService
	cfg      config.GatewayConfig
}

// NewService creates the payment method service. The cache may be nil.
func NewService(repo repositories.PaymentMethodRepository, userRepo repositories.UserRepository, cacheService *cache.CacheService, cfg config.GatewayConfig) Service {
	if repo == nil {
		panic("payment method repository is required")
	}
	if userRepo == nil {
		panic("user repository is required")
	}
	return &service{
		repo:     repo,
		userRepo: userRepo,
		cache:    cacheService,
		cfg:      cfg,
	}
}

// Commit turns a finished registration into a stored payment method. Every
// remote id the client echoes back must be present; the first missing key is
// reported by name.
func (s *service) Commit(ctx context.Context, req CommitRequest) (*models.PaymentMethod, error) {
	for _, kv := range []struct{ key, value string }{
		{"card_type", req.CardType},
		{"card_alias", req.CardAlias},
		{"card_id", req.CardID},
		{"user_id", req.UserID},
		{"wallet_id", req.WalletID},
		{"expiration", req.Expiration},
		{"currency_code", req.CurrencyCode},
	} {
		if kv.value == "" {
			return nil, &ArgumentError{Key: kv.key}
		}
	}

	month, year, expiresAt, err := parseExpiration(req.Expiration)
	if err != nil {
		return nil, err
	}

	method := &models.PaymentMethod{
		RemoteCardID:   req.CardID,
		RemoteUserID:   req.UserID,
		RemoteWalletID: req.WalletID,
		CardType:       req.CardType,
		LastFour:       lastFour(req.CardAlias),
		ExpiryMonth:    month,
		ExpiryYear:     year,
		CurrencyCode:   req.CurrencyCode,
		ExpiresAt:      expiresAt,
	}

	if req.AccountID != 0 {
		accountID := req.AccountID
		method.UserID = &accountID
		s.associateAccount(req.AccountID, req.UserID)
	}

	if err := s.repo.Create(method); err != nil {
		return nil, fmt.Errorf("failed to save payment method: %w", err)
	}

	if err := s.cache.SetPaymentMethod(ctx, method); err != nil {
		log.Printf("unable to cache payment method %d: %v", method.ID, err)
	}
	return method, nil
}

// Get reads through the cache and falls back to the database.
func (s *service) Get(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	if method, err := s.cache.GetPaymentMethod(ctx, id); err == nil {
		return method, nil
	}

	method, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.SetPaymentMethod(ctx, method); err != nil {
		log.Printf("unable to cache payment method %d: %v", method.ID, err)
	}
	return method, nil
}

func (s *service) ListForAccount(accountID uint) ([]*models.PaymentMethod, error) {
	return s.repo.GetByUserID(accountID)
}

// Delete removes a stored payment method after an ownership check. The
// remote card stays active; the processor exposes no card deactivation call
// usable from this flow.
func (s *service) Delete(ctx context.Context, id uint, accountID uint) error {
	method, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return ErrNotFound
		}
		return err
	}
	if method.UserID == nil || *method.UserID != accountID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}
	if err := s.cache.InvalidatePaymentMethod(ctx, id); err != nil {
		log.Printf("unable to invalidate payment method %d: %v", id, err)
	}
	return nil
}

// associateAccount stores the remote user id on the account when the stored
// association is missing or has drifted. A persistence failure only loses the
// reuse optimisation, so it is logged and ignored.
func (s *service) associateAccount(accountID uint, remoteUserID string) {
	account, err := s.userRepo.GetByID(accountID)
	if err != nil {
		log.Printf("unable to load account %d while committing a card: %v", accountID, err)
		return
	}

	provider := s.cfg.RemoteIDProvider()
	if account.RemoteID(provider) == remoteUserID {
		return
	}
	account.SetRemoteID(provider, remoteUserID)
	if err := s.userRepo.Update(account); err != nil {
		log.Printf("unable to persist remote id %s on account %d: %v", remoteUserID, accountID, err)
	}
}

// parseExpiration splits an MMYY expiration and computes the last instant of
// the expiry month.
func parseExpiration(expiration string) (month, year string, expiresAt time.Time, err error) {
	if len(expiration) != 4 {
		return "", "", time.Time{}, ErrBadExpiry
	}
	month, year = expiration[:2], expiration[2:]

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return "", "", time.Time{}, ErrBadExpiry
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", "", time.Time{}, ErrBadExpiry
	}

	expiresAt = time.Date(2000+y, time.Month(m)+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)
	return month, year, expiresAt, nil
}

func lastFour(alias string) string {
	if len(alias) < 4 {
		return alias
	}
	return alias[len(alias)-4:]
}
