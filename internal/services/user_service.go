package services

import (
	"errors"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserParams struct {
	ClerkID   string
	Email     string
	Username  string
	Photo     string
	FirstName string
	LastName  string
}

// CreateUser registers a user on the identity provider's first-sign-in
// event. The new account starts with the default credit balance.
func (s *UserService) CreateUser(params CreateUserParams) (*models.User, error) {
	existing, err := s.userRepo.FindByClerkID(params.ClerkID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	user := &models.User{
		ClerkID:       params.ClerkID,
		Email:         params.Email,
		Username:      params.Username,
		Photo:         params.Photo,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		CreditBalance: models.DefaultCreditBalance,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByClerkID returns the user keyed by the identity-provider subject
// id, or ErrUserNotFound so callers can distinguish absence from store
// failure.
func (s *UserService) GetUserByClerkID(clerkID string) (*models.User, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

type UpdateUserParams struct {
	Username  string
	Photo     string
	FirstName string
	LastName  string
}

// UpdateUser mutates profile fields, keyed by the subject id rather than the
// row id.
func (s *UserService) UpdateUser(clerkID string, params UpdateUserParams) (*models.User, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if params.Username != "" {
		user.Username = params.Username
	}
	if params.Photo != "" {
		user.Photo = params.Photo
	}
	user.FirstName = params.FirstName
	user.LastName = params.LastName

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(clerkID string) error {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.userRepo.DeleteByClerkID(clerkID)
}
