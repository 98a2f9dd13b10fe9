package repositories

import (
	"errors"
	"fmt"

	"payflow/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

// PaymentMethodRepository persists tokenized card references.
type PaymentMethodRepository interface {
	GetByID(id uint) (*models.PaymentMethod, error)
	GetByUserID(userID uint) ([]*models.PaymentMethod, error)
	Create(method *models.PaymentMethod) error
	Delete(id uint) error
}

type paymentMethodRepository struct {
	db *gorm.DB
}

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

func (r *paymentMethodRepository) GetByID(id uint) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.First(&method, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, fmt.Errorf("failed to get payment method: %w", err)
	}
	return &method, nil
}

func (r *paymentMethodRepository) GetByUserID(userID uint) ([]*models.PaymentMethod, error) {
	var methods []*models.PaymentMethod
	if err := r.db.Where("user_id = ?", userID).Find(&methods).Error; err != nil {
		return nil, fmt.Errorf("failed to get user payment methods: %w", err)
	}
	return methods, nil
}

func (r *paymentMethodRepository) Create(method *models.PaymentMethod) error {
	return r.db.Create(method).Error
}

func (r *paymentMethodRepository) Delete(id uint) error {
	result := r.db.Delete(&models.PaymentMethod{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}
