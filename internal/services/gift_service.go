package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrGiftLinkNotFound    = errors.New("gift link not found")
	ErrGiftLinkExpired     = errors.New("gift link has expired")
	ErrGiftLinkRedeemed    = errors.New("gift link has already been redeemed")
	ErrGiftLinkInactive    = errors.New("gift link is not active")
	ErrCannotRedeemOwnLink = errors.New("cannot redeem your own gift link")
	ErrNotGiftLinkOwner    = errors.New("gift link belongs to another user")
)

// GiftService lets users gift credits through redeemable codes. Creating a
// link escrows the credits from the sender's balance; redeeming grants them
// to the redeemer; cancelling an unredeemed link refunds the sender. All
// movements go through the ledger inside one store transaction.
type GiftService struct {
	giftLinkRepo  *repository.GiftLinkRepository
	userRepo      *repository.UserRepository
	creditService *CreditService
	db            *gorm.DB
}

func NewGiftService(
	giftLinkRepo *repository.GiftLinkRepository,
	userRepo *repository.UserRepository,
	creditService *CreditService,
	db *gorm.DB,
) *GiftService {
	return &GiftService{
		giftLinkRepo:  giftLinkRepo,
		userRepo:      userRepo,
		creditService: creditService,
		db:            db,
	}
}

func (s *GiftService) generateUniqueCode() (string, error) {
	for i := 0; i < 10; i++ {
		bytes := make([]byte, 32)
		if _, err := rand.Read(bytes); err != nil {
			return "", err
		}

		code := base64.URLEncoding.EncodeToString(bytes)

		existing, err := s.giftLinkRepo.FindByCode(code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", errors.New("failed to generate unique code after 10 attempts")
}

func parseExpiry(expiresIn string) *time.Time {
	if expiresIn == "" || expiresIn == "never" {
		return nil
	}

	var duration time.Duration
	switch expiresIn {
	case "1h":
		duration = 1 * time.Hour
	case "24h":
		duration = 24 * time.Hour
	case "7d":
		duration = 7 * 24 * time.Hour
	case "30d":
		duration = 30 * 24 * time.Hour
	default:
		return nil
	}

	expiry := time.Now().Add(duration)
	return &expiry
}

func (s *GiftService) CreateGiftLink(fromClerkID string, credits int, message string, expiresIn string) (*models.GiftLink, error) {
	if credits <= 0 {
		return nil, ErrInvalidCredits
	}

	fromUser, err := s.userRepo.FindByClerkID(fromClerkID)
	if err != nil {
		return nil, err
	}
	if fromUser == nil {
		return nil, ErrUserNotFound
	}

	code, err := s.generateUniqueCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate gift code: %w", err)
	}

	expiry := parseExpiry(expiresIn)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.creditService.UpdateCreditsInTx(tx, fromUser.ID, -credits); err != nil {
			return err
		}

		giftLink := &models.GiftLink{
			Code:       code,
			FromUserID: fromUser.ID,
			Credits:    credits,
			Message:    message,
			ExpiresAt:  expiry,
			Active:     true,
		}

		return s.giftLinkRepo.Create(tx, giftLink)
	})

	if err != nil {
		return nil, err
	}

	return s.giftLinkRepo.FindByCode(code)
}

func (s *GiftService) RedeemGiftLink(code string, redeemClerkID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		giftLink, err := s.giftLinkRepo.FindByCodeForUpdate(tx, code)
		if err != nil {
			return err
		}
		if giftLink == nil {
			return ErrGiftLinkNotFound
		}

		if giftLink.RedeemedAt != nil {
			return ErrGiftLinkRedeemed
		}

		if !giftLink.Active {
			return ErrGiftLinkInactive
		}

		if giftLink.ExpiresAt != nil && time.Now().After(*giftLink.ExpiresAt) {
			return ErrGiftLinkExpired
		}

		if giftLink.FromUser.ClerkID == redeemClerkID {
			return ErrCannotRedeemOwnLink
		}

		redeemUser, err := s.userRepo.FindByClerkIDForUpdate(tx, redeemClerkID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if _, err := s.creditService.UpdateCreditsInTx(tx, redeemUser.ID, giftLink.Credits); err != nil {
			return err
		}

		now := time.Now()
		giftLink.RedeemedAt = &now
		giftLink.RedeemedByID = &redeemUser.ID
		giftLink.Active = false

		return s.giftLinkRepo.UpdateInTx(tx, giftLink)
	})
}

func (s *GiftService) ListGiftLinks(clerkID string) ([]models.GiftLink, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.giftLinkRepo.ListByFromUserID(user.ID)
}

// CancelGiftLink deactivates an unredeemed link and refunds the escrowed
// credits to the sender.
func (s *GiftService) CancelGiftLink(code string, clerkID string) error {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		giftLink, err := s.giftLinkRepo.FindByCodeForUpdate(tx, code)
		if err != nil {
			return err
		}
		if giftLink == nil {
			return ErrGiftLinkNotFound
		}

		if giftLink.FromUserID != user.ID {
			return ErrNotGiftLinkOwner
		}

		if giftLink.RedeemedAt == nil && giftLink.Active {
			if _, err := s.creditService.UpdateCreditsInTx(tx, user.ID, giftLink.Credits); err != nil {
				return err
			}
		}

		giftLink.Active = false
		return s.giftLinkRepo.UpdateInTx(tx, giftLink)
	})
}

func (s *GiftService) GetGiftLinkByCode(code string) (*models.GiftLink, error) {
	giftLink, err := s.giftLinkRepo.FindByCode(code)
	if err != nil {
		return nil, err
	}
	if giftLink == nil {
		return nil, ErrGiftLinkNotFound
	}
	return giftLink, nil
}
