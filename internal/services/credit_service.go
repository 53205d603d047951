package services

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidCredits      = errors.New("invalid credit amount")
)

// CreditService is the ledger: every balance movement in the system goes
// through UpdateCredits or its in-transaction variant.
type CreditService struct {
	userRepo *repository.UserRepository
	db       *gorm.DB
}

func NewCreditService(userRepo *repository.UserRepository, db *gorm.DB) *CreditService {
	return &CreditService{
		userRepo: userRepo,
		db:       db,
	}
}

// UpdateCredits applies delta (positive or negative) to the user's balance
// under a row lock and returns the updated user. A delta that would drive
// the balance negative is rejected with ErrInsufficientCredits; the floor is
// enforced here, not left to callers.
func (s *CreditService) UpdateCredits(clerkID string, delta int) (*models.User, error) {
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		u, err := s.userRepo.FindByClerkIDForUpdate(tx, clerkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if u.CreditBalance+delta < 0 {
			return ErrInsufficientCredits
		}

		u.CreditBalance += delta
		if err := s.userRepo.UpdateInTx(tx, u); err != nil {
			return err
		}

		user = u
		return nil
	})

	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateCreditsInTx applies delta inside an existing store transaction, for
// flows that must move credits and write other rows atomically.
func (s *CreditService) UpdateCreditsInTx(tx *gorm.DB, userID uint, delta int) (*models.User, error) {
	user, err := s.userRepo.FindByIDForUpdate(tx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.CreditBalance+delta < 0 {
		return nil, ErrInsufficientCredits
	}

	user.CreditBalance += delta
	if err := s.userRepo.UpdateInTx(tx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *CreditService) GetBalance(clerkID string) (int, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return user.CreditBalance, nil
}

// SetBalance overwrites a user's balance, admin use only.
func (s *CreditService) SetBalance(username string, balance int) error {
	if balance < 0 {
		return ErrInvalidCredits
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	user.CreditBalance = balance
	return s.userRepo.Update(user)
}

func (s *CreditService) GetTotalCredits() (int64, error) {
	return s.userRepo.GetTotalCredits()
}
