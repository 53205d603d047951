package repository

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, transaction *models.Transaction) error {
	return tx.Create(transaction).Error
}

// FindByStripeID dedupes webhook redeliveries: a session id that already has
// a row must not grant credits twice.
func (r *TransactionRepository) FindByStripeID(stripeID string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := r.db.Where("stripe_id = ?", stripeID).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) FindByBuyerID(buyerID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Preload("Buyer").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *TransactionRepository) FindAll() ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.
		Preload("Buyer").
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}
