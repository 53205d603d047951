package services

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"gorm.io/gorm"
)

var ErrDuplicateTransaction = errors.New("transaction already recorded")

type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	userRepo        *repository.UserRepository
	creditService   *CreditService
	db              *gorm.DB
}

func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	userRepo *repository.UserRepository,
	creditService *CreditService,
	db *gorm.DB,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		creditService:   creditService,
		db:              db,
	}
}

type CreateTransactionParams struct {
	StripeID     string
	Plan         string
	Credits      int
	Amount       float64
	BuyerClerkID string
}

// CreateTransaction records a completed purchase and grants the purchased
// credits in one store transaction: a payment is never recorded without its
// credit grant, and vice versa. Webhook redeliveries for an already-recorded
// session are rejected with ErrDuplicateTransaction rather than granting
// twice.
func (s *TransactionService) CreateTransaction(params CreateTransactionParams) (*models.Transaction, error) {
	if params.Credits <= 0 {
		return nil, ErrInvalidCredits
	}

	existing, err := s.transactionRepo.FindByStripeID(params.StripeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateTransaction
	}

	var transaction *models.Transaction

	err = s.db.Transaction(func(tx *gorm.DB) error {
		buyer, err := s.userRepo.FindByClerkIDForUpdate(tx, params.BuyerClerkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		transaction = &models.Transaction{
			StripeID: params.StripeID,
			Plan:     params.Plan,
			Credits:  params.Credits,
			Amount:   params.Amount,
			BuyerID:  buyer.ID,
		}

		if err := s.transactionRepo.Create(tx, transaction); err != nil {
			return err
		}

		buyer.Plan = params.Plan
		if err := s.userRepo.UpdateInTx(tx, buyer); err != nil {
			return err
		}

		_, err = s.creditService.UpdateCreditsInTx(tx, buyer.ID, params.Credits)
		return err
	})

	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (s *TransactionService) GetPurchaseHistory(clerkID string) ([]models.Transaction, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.transactionRepo.FindByBuyerID(user.ID)
}

func (s *TransactionService) ListAll() ([]models.Transaction, error) {
	return s.transactionRepo.FindAll()
}
