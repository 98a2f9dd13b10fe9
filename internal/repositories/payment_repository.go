package repositories

import (
	"errors"
	"fmt"

	"payflow/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository persists charge attempts. Delete removes the row
// entirely; failed pay-ins leave no local record.
type PaymentRepository interface {
	GetByID(id uint) (*models.Payment, error)
	GetByOrderID(orderID uint) ([]*models.Payment, error)
	Create(payment *models.Payment) error
	Update(payment *models.Payment) error
	Delete(id uint) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Preload("PaymentMethod").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(orderID uint) ([]*models.Payment, error) {
	var payments []*models.Payment
	if err := r.db.Where("order_id = ?", orderID).Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get order payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

func (r *paymentRepository) Delete(id uint) error {
	result := r.db.Unscoped().Delete(&models.Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
