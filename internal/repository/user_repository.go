package repository

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByClerkID looks a user up by the identity-provider subject id, the key
// the provider's webhooks and tokens carry.
func (r *UserRepository) FindByClerkID(clerkID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("clerk_id = ?", clerkID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByClerkIDForUpdate(tx *gorm.DB, clerkID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("clerk_id = ?", clerkID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateInTx(tx *gorm.DB, user *models.User) error {
	return tx.Save(user).Error
}

// DeleteByClerkID removes the user keyed by the identity-provider subject id.
func (r *UserRepository) DeleteByClerkID(clerkID string) error {
	return r.db.Where("clerk_id = ?", clerkID).Delete(&models.User{}).Error
}

func (r *UserRepository) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Find(&users).Error
	return users, err
}

func (r *UserRepository) GetTotalCredits() (int64, error) {
	var total int64
	err := r.db.Model(&models.User{}).Select("COALESCE(SUM(credit_balance), 0)").Scan(&total).Error
	return total, err
}
