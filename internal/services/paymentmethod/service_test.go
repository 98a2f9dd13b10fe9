package paymentmethod

import (
	"context"
	"testing"
	"time"

	"payflow/internal/config"
	"payflow/internal/models"
	"payflow/internal/repositories"
	"payflow/internal/repositories/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMethodRepo struct {
	mock.Mock
}

func (m *MockMethodRepo) GetByID(id uint) (*models.PaymentMethod, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) GetByUserID(userID uint) ([]*models.PaymentMethod, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PaymentMethod), args.Error(1)
}

func (m *MockMethodRepo) Create(method *models.PaymentMethod) error {
	return m.Called(method).Error(0)
}

func (m *MockMethodRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Create(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) Update(user *models.User) error {
	return m.Called(user).Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(id uint) error {
	return m.Called(id).Error(0)
}

func testConfig() config.GatewayConfig {
	return config.GatewayConfig{GatewayID: "payflow", Mode: config.ModeSandbox}
}

func noopCache() *cache.CacheService {
	return cache.NewCacheService(nil, time.Minute)
}

func validCommit() CommitRequest {
	return CommitRequest{
		CardType:     "CB_VISA_MASTERCARD",
		CardAlias:    "497010XXXXXX4406",
		CardID:       "card-1",
		UserID:       "user-1",
		WalletID:     "wallet-1",
		Expiration:   "1229",
		CurrencyCode: "EUR",
	}
}

func TestCommit_NamesFirstMissingKey(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CommitRequest)
		wantKey string
	}{
		{"missing card_type", func(r *CommitRequest) { r.CardType = "" }, "card_type"},
		{"missing card_alias", func(r *CommitRequest) { r.CardAlias = "" }, "card_alias"},
		{"missing card_id", func(r *CommitRequest) { r.CardID = "" }, "card_id"},
		{"missing user_id", func(r *CommitRequest) { r.UserID = "" }, "user_id"},
		{"missing wallet_id", func(r *CommitRequest) { r.WalletID = "" }, "wallet_id"},
		{"missing expiration", func(r *CommitRequest) { r.Expiration = "" }, "expiration"},
		{"missing currency_code", func(r *CommitRequest) { r.CurrencyCode = "" }, "currency_code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMethodRepo)
			userRepo := new(MockUserRepo)
			svc := NewService(repo, userRepo, noopCache(), testConfig())

			req := validCommit()
			tt.mutate(&req)

			method, err := svc.Commit(context.Background(), req)
			assert.Nil(t, method)

			var argErr *ArgumentError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.wantKey, argErr.Key)
			repo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestCommit_AnonymousStoresMethod(t *testing.T) {
	repo := new(MockMethodRepo)
	userRepo := new(MockUserRepo)
	svc := NewService(repo, userRepo, noopCache(), testConfig())

	repo.On("Create", mock.Anything).Return(nil)

	method, err := svc.Commit(context.Background(), validCommit())
	require.NoError(t, err)

	assert.Nil(t, method.UserID)
	assert.Equal(t, "card-1", method.RemoteCardID)
	assert.Equal(t, "4406", method.LastFour)
	assert.Equal(t, "12", method.ExpiryMonth)
	assert.Equal(t, "29", method.ExpiryYear)

	// Usable through the last moment of December 2029.
	assert.Equal(t, 2029, method.ExpiresAt.Year())
	assert.Equal(t, time.December, method.ExpiresAt.Month())
	assert.Equal(t, 31, method.ExpiresAt.Day())

	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCommit_AssociatesAccountRemoteID(t *testing.T) {
	repo := new(MockMethodRepo)
	userRepo := new(MockUserRepo)
	cfg := testConfig()
	svc := NewService(repo, userRepo, noopCache(), cfg)

	account := &models.User{Email: "buyer@example.com"}
	account.ID = 7
	userRepo.On("GetByID", uint(7)).Return(account, nil)
	userRepo.On("Update", account).Return(nil)
	repo.On("Create", mock.Anything).Return(nil)

	req := validCommit()
	req.AccountID = 7

	method, err := svc.Commit(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, method.UserID)
	assert.Equal(t, uint(7), *method.UserID)
	assert.Equal(t, "user-1", account.RemoteID(cfg.RemoteIDProvider()))
}

func TestCommit_SkipsUpdateWhenAssociationCurrent(t *testing.T) {
	repo := new(MockMethodRepo)
	userRepo := new(MockUserRepo)
	cfg := testConfig()
	svc := NewService(repo, userRepo, noopCache(), cfg)

	account := &models.User{Email: "buyer@example.com"}
	account.ID = 7
	account.SetRemoteID(cfg.RemoteIDProvider(), "user-1")
	userRepo.On("GetByID", uint(7)).Return(account, nil)
	repo.On("Create", mock.Anything).Return(nil)

	req := validCommit()
	req.AccountID = 7

	_, err := svc.Commit(context.Background(), req)
	require.NoError(t, err)
	userRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCommit_RejectsBadExpiration(t *testing.T) {
	for _, expiration := range []string{"129", "0029", "1329", "ab29", "12x9"} {
		repo := new(MockMethodRepo)
		userRepo := new(MockUserRepo)
		svc := NewService(repo, userRepo, noopCache(), testConfig())

		req := validCommit()
		req.Expiration = expiration

		_, err := svc.Commit(context.Background(), req)
		assert.ErrorIs(t, err, ErrBadExpiry, "expiration %q", expiration)
	}
}

func TestDelete(t *testing.T) {
	owner := uint(7)

	t.Run("owner deletes", func(t *testing.T) {
		repo := new(MockMethodRepo)
		userRepo := new(MockUserRepo)
		svc := NewService(repo, userRepo, noopCache(), testConfig())

		method := &models.PaymentMethod{UserID: &owner}
		method.ID = 3
		repo.On("GetByID", uint(3)).Return(method, nil)
		repo.On("Delete", uint(3)).Return(nil)

		assert.NoError(t, svc.Delete(context.Background(), 3, 7))
		repo.AssertCalled(t, "Delete", uint(3))
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		repo := new(MockMethodRepo)
		userRepo := new(MockUserRepo)
		svc := NewService(repo, userRepo, noopCache(), testConfig())

		method := &models.PaymentMethod{UserID: &owner}
		method.ID = 3
		repo.On("GetByID", uint(3)).Return(method, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), 3, 8), ErrNotOwner)
		repo.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("anonymous method cannot be deleted", func(t *testing.T) {
		repo := new(MockMethodRepo)
		userRepo := new(MockUserRepo)
		svc := NewService(repo, userRepo, noopCache(), testConfig())

		method := &models.PaymentMethod{}
		method.ID = 3
		repo.On("GetByID", uint(3)).Return(method, nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), 3, 7), ErrNotOwner)
	})

	t.Run("unknown method", func(t *testing.T) {
		repo := new(MockMethodRepo)
		userRepo := new(MockUserRepo)
		svc := NewService(repo, userRepo, noopCache(), testConfig())

		repo.On("GetByID", uint(99)).Return(nil, repositories.ErrPaymentMethodNotFound)

		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 7), ErrNotFound)
	})
}

func TestGet_FallsBackToRepository(t *testing.T) {
	repo := new(MockMethodRepo)
	userRepo := new(MockUserRepo)
	svc := NewService(repo, userRepo, noopCache(), testConfig())

	method := &models.PaymentMethod{RemoteCardID: "card-1"}
	method.ID = 3
	repo.On("GetByID", uint(3)).Return(method, nil)

	got, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "card-1", got.RemoteCardID)
}
