package payin

import (
	"context"
	"errors"
	"testing"
	"time"

	"payflow/internal/config"
	"payflow/internal/models"
	"payflow/internal/processor/mangopay"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) CreateDirectPayIn(ctx context.Context, params mangopay.CreateDirectPayInParams) (*mangopay.PayIn, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mangopay.PayIn), args.Error(1)
}

func (m *MockProcessor) GetPayIn(ctx context.Context, payInID string) (*mangopay.PayIn, error) {
	args := m.Called(ctx, payInID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mangopay.PayIn), args.Error(1)
}

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) GetByID(id uint) (*models.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) GetByOrderID(orderID uint) ([]*models.Payment, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepo) Create(payment *models.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *MockPaymentRepo) Update(payment *models.Payment) error {
	return m.Called(payment).Error(0)
}

func (m *MockPaymentRepo) Delete(id uint) error {
	return m.Called(id).Error(0)
}

type MockMethodStore struct {
	mock.Mock
}

func (m *MockMethodStore) Get(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaymentMethod), args.Error(1)
}

func testConfig() config.GatewayConfig {
	return config.GatewayConfig{
		GatewayID:  "payflow",
		Mode:       config.ModeSandbox,
		Tag:        "payflow commerce",
		PublicURL:  "https://shop.example",
		SuccessURL: "https://shop.example/checkout/complete",
		FailureURL: "https://shop.example/checkout/payment",
	}
}

func validMethod() *models.PaymentMethod {
	method := &models.PaymentMethod{
		RemoteCardID:   "card-1",
		RemoteUserID:   "user-1",
		RemoteWalletID: "wallet-1",
		CardType:       "CB_VISA_MASTERCARD",
		LastFour:       "4406",
		ExpiresAt:      time.Now().Add(365 * 24 * time.Hour),
	}
	method.ID = 3
	return method
}

func newPayment(state string) *models.Payment {
	payment := &models.Payment{
		OrderID:         10,
		PaymentMethodID: 3,
		PaymentMethod:   validMethod(),
		Amount:          10.30,
		CurrencyCode:    "EUR",
		State:           state,
	}
	payment.ID = 42
	return payment
}

func newService(p *MockProcessor, repo *MockPaymentRepo, methods *MockMethodStore) Service {
	return NewService(p, repo, methods, testConfig())
}

func TestInitiate_Succeeded(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStateNew)
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Update", payment).Return(nil)
	processor.On("CreateDirectPayIn", mock.Anything, mock.MatchedBy(func(p mangopay.CreateDirectPayInParams) bool {
		return p.Amount == 1030 &&
			p.AuthorID == "user-1" &&
			p.CreditedWalletID == "wallet-1" &&
			p.CardID == "card-1" &&
			p.SecureModeReturnURL == "https://shop.example/api/payments/42/secure-mode"
	})).Return(&mangopay.PayIn{ID: "payin-1", Status: mangopay.PayInSucceeded}, nil)

	result, err := svc.Initiate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, result.Status)
	assert.Equal(t, uint(42), result.PaymentID)
	assert.Equal(t, models.PaymentStateCompleted, payment.State)
	assert.Equal(t, "payin-1", payment.RemoteID)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestInitiate_CreatedWithSecureMode(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStateNew)
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Update", payment).Return(nil)
	processor.On("CreateDirectPayIn", mock.Anything, mock.Anything).
		Return(&mangopay.PayIn{
			ID:                    "payin-2",
			Status:                mangopay.PayInCreated,
			SecureModeNeeded:      true,
			SecureModeRedirectURL: "https://bank.example/3ds",
		}, nil)

	result, err := svc.Initiate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, StatusCreated, result.Status)
	assert.Equal(t, "https://bank.example/3ds", result.SecureModeURL)
	assert.Equal(t, models.PaymentStatePending3DS, payment.State)
	assert.Equal(t, "payin-2", payment.RemoteID)
}

func TestInitiate_CreatedWithoutRedirectIsCritical(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStateNew)
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Update", payment).Return(nil)
	repo.On("Delete", uint(42)).Return(nil)
	processor.On("CreateDirectPayIn", mock.Anything, mock.Anything).
		Return(&mangopay.PayIn{ID: "payin-3", Status: mangopay.PayInCreated}, nil)

	result, err := svc.Initiate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, StatusCritical, result.Status)
	repo.AssertCalled(t, "Delete", uint(42))
}

func TestInitiate_FailedDeletesPayment(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStateNew)
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Delete", uint(42)).Return(nil)
	processor.On("CreateDirectPayIn", mock.Anything, mock.Anything).
		Return(&mangopay.PayIn{
			Status:        mangopay.PayInFailed,
			ResultCode:    "101101",
			ResultMessage: "Transaction refused by the bank",
		}, nil)

	result, err := svc.Initiate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "101101", result.Code)
	assert.Equal(t, "Transaction refused by the bank", result.Message)
	repo.AssertCalled(t, "Delete", uint(42))
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestInitiate_RemoteErrorIsCritical(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStateNew)
	repo.On("GetByID", uint(42)).Return(payment, nil)
	processor.On("CreateDirectPayIn", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection reset"))

	result, err := svc.Initiate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, StatusCritical, result.Status)
	// The payment survives a transport failure and stays retryable.
	repo.AssertNotCalled(t, "Delete", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestInitiate_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		payment *models.Payment
		wantErr error
	}{
		{
			name:    "already completed",
			payment: newPayment(models.PaymentStateCompleted),
			wantErr: ErrAlreadyProcessed,
		},
		{
			name:    "already pending",
			payment: newPayment(models.PaymentStatePending3DS),
			wantErr: ErrAlreadyProcessed,
		},
		{
			name: "expired method",
			payment: func() *models.Payment {
				p := newPayment(models.PaymentStateNew)
				p.PaymentMethod.ExpiresAt = time.Now().Add(-time.Hour)
				return p
			}(),
			wantErr: ErrMethodExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			processor := new(MockProcessor)
			repo := new(MockPaymentRepo)
			methods := new(MockMethodStore)
			repo.On("GetByID", uint(42)).Return(tt.payment, nil)

			svc := newService(processor, repo, methods)
			result, err := svc.Initiate(context.Background(), 42)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
			processor.AssertNotCalled(t, "CreateDirectPayIn", mock.Anything, mock.Anything)
		})
	}
}

func TestCompleteSecureMode_Succeeded(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStatePending3DS)
	payment.RemoteID = "payin-2"
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Update", payment).Return(nil)
	processor.On("GetPayIn", mock.Anything, "payin-2").
		Return(&mangopay.PayIn{ID: "payin-2", Status: mangopay.PayInSucceeded}, nil)

	redirect, err := svc.CompleteSecureMode(context.Background(), 42)
	require.NoError(t, err)

	assert.True(t, redirect.Succeeded)
	assert.Equal(t, "https://shop.example/checkout/complete?payment_id=42", redirect.URL)
	assert.Equal(t, models.PaymentStateCompleted, payment.State)
}

func TestCompleteSecureMode_FailedDeletesAndRedirectsBack(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStatePending3DS)
	payment.RemoteID = "payin-2"
	repo.On("GetByID", uint(42)).Return(payment, nil)
	repo.On("Delete", uint(42)).Return(nil)
	processor.On("GetPayIn", mock.Anything, "payin-2").
		Return(&mangopay.PayIn{ID: "payin-2", Status: mangopay.PayInFailed, ResultCode: "101399"}, nil)

	redirect, err := svc.CompleteSecureMode(context.Background(), 42)
	require.NoError(t, err)

	assert.False(t, redirect.Succeeded)
	assert.Equal(t, "https://shop.example/checkout/payment", redirect.URL)
	repo.AssertCalled(t, "Delete", uint(42))
}

func TestCompleteSecureMode_FetchFailureLeavesPaymentUntouched(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	payment := newPayment(models.PaymentStatePending3DS)
	payment.RemoteID = "payin-2"
	repo.On("GetByID", uint(42)).Return(payment, nil)
	processor.On("GetPayIn", mock.Anything, "payin-2").
		Return(nil, errors.New("timeout"))

	redirect, err := svc.CompleteSecureMode(context.Background(), 42)
	assert.Nil(t, redirect)
	assert.Error(t, err)

	assert.Equal(t, models.PaymentStatePending3DS, payment.State)
	repo.AssertNotCalled(t, "Delete", mock.Anything)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestCompleteSecureMode_Preconditions(t *testing.T) {
	t.Run("not pending", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStateNew)
		repo.On("GetByID", uint(42)).Return(payment, nil)

		svc := newService(processor, repo, methods)
		_, err := svc.CompleteSecureMode(context.Background(), 42)
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("missing remote id", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStatePending3DS)
		repo.On("GetByID", uint(42)).Return(payment, nil)

		svc := newService(processor, repo, methods)
		_, err := svc.CompleteSecureMode(context.Background(), 42)
		assert.ErrorIs(t, err, ErrMissingRemoteID)
	})
}

func TestRefund(t *testing.T) {
	t.Run("partial refund", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStateCompleted)
		repo.On("GetByID", uint(42)).Return(payment, nil)
		repo.On("Update", payment).Return(nil)

		svc := newService(processor, repo, methods)
		updated, err := svc.Refund(42, 4.30)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStatePartiallyRefunded, updated.State)
		assert.InDelta(t, 4.30, updated.RefundedAmount, 0.001)
	})

	t.Run("full refund across two calls", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStateCompleted)
		repo.On("GetByID", uint(42)).Return(payment, nil)
		repo.On("Update", payment).Return(nil)

		svc := newService(processor, repo, methods)
		_, err := svc.Refund(42, 4.30)
		require.NoError(t, err)
		updated, err := svc.Refund(42, 6.00)
		require.NoError(t, err)

		assert.Equal(t, models.PaymentStateRefunded, updated.State)
		assert.InDelta(t, 10.30, updated.RefundedAmount, 0.001)
	})

	t.Run("excessive refund rejected", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStateCompleted)
		repo.On("GetByID", uint(42)).Return(payment, nil)

		svc := newService(processor, repo, methods)
		_, err := svc.Refund(42, 10.31)
		assert.ErrorIs(t, err, ErrExcessiveRefund)
	})

	t.Run("new payment cannot be refunded", func(t *testing.T) {
		processor := new(MockProcessor)
		repo := new(MockPaymentRepo)
		methods := new(MockMethodStore)
		payment := newPayment(models.PaymentStateNew)
		repo.On("GetByID", uint(42)).Return(payment, nil)

		svc := newService(processor, repo, methods)
		_, err := svc.Refund(42, 1.00)
		assert.ErrorIs(t, err, ErrNotCompleted)
	})
}

func TestVerifyReturn(t *testing.T) {
	processor := new(MockProcessor)
	repo := new(MockPaymentRepo)
	methods := new(MockMethodStore)
	svc := newService(processor, repo, methods)

	completed := newPayment(models.PaymentStateCompleted)
	completed.RemoteID = "payin-1"
	pending := newPayment(models.PaymentStatePending3DS)

	repo.On("GetByOrderID", uint(10)).Return([]*models.Payment{completed}, nil)
	repo.On("GetByOrderID", uint(11)).Return([]*models.Payment{pending}, nil)
	repo.On("GetByOrderID", uint(12)).Return([]*models.Payment{}, nil)

	assert.NoError(t, svc.VerifyReturn(10))
	assert.ErrorIs(t, svc.VerifyReturn(11), ErrNoValidPayment)
	assert.ErrorIs(t, svc.VerifyReturn(12), ErrNoValidPayment)
}
