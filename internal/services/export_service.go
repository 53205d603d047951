package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/arpanp11/imaginify-saas/internal/repository"
)

var ErrInvalidExport = errors.New("invalid export data")

// PurchaseExport is a signed snapshot of a user's purchase history and
// balance, verifiable offline with the signing key.
type PurchaseExport struct {
	UserID        uint                 `json:"user_id"`
	ClerkID       string               `json:"clerk_id"`
	Username      string               `json:"username"`
	Email         string               `json:"email"`
	CreditBalance int                  `json:"credit_balance"`
	Purchases     []PurchaseExportItem `json:"purchases"`
	ExportedAt    time.Time            `json:"exported_at"`
	Signature     string               `json:"signature"`
}

type PurchaseExportItem struct {
	ID        uint      `json:"id"`
	StripeID  string    `json:"stripe_id"`
	Plan      string    `json:"plan"`
	Credits   int       `json:"credits"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportService struct {
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
	signingKey      string
}

func NewExportService(userRepo *repository.UserRepository, transactionRepo *repository.TransactionRepository, signingKey string) *ExportService {
	return &ExportService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		signingKey:      signingKey,
	}
}

func (s *ExportService) ExportPurchases(clerkID string) (*PurchaseExport, error) {
	user, err := s.userRepo.FindByClerkID(clerkID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	transactions, err := s.transactionRepo.FindByBuyerID(user.ID)
	if err != nil {
		return nil, err
	}

	exportItems := make([]PurchaseExportItem, len(transactions))
	for i, tx := range transactions {
		exportItems[i] = PurchaseExportItem{
			ID:        tx.ID,
			StripeID:  tx.StripeID,
			Plan:      tx.Plan,
			Credits:   tx.Credits,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt,
		}
	}

	export := &PurchaseExport{
		UserID:        user.ID,
		ClerkID:       user.ClerkID,
		Username:      user.Username,
		Email:         user.Email,
		CreditBalance: user.CreditBalance,
		Purchases:     exportItems,
		ExportedAt:    time.Now(),
	}

	signature, err := s.signExport(export)
	if err != nil {
		return nil, err
	}
	export.Signature = signature

	return export, nil
}

func (s *ExportService) VerifyExport(exportData *PurchaseExport) (bool, error) {
	if exportData.Signature == "" {
		return false, ErrInvalidExport
	}

	providedSignature := exportData.Signature

	exportCopy := *exportData
	exportCopy.Signature = ""

	computedSignature, err := s.signExport(&exportCopy)
	if err != nil {
		return false, err
	}

	return hmac.Equal([]byte(computedSignature), []byte(providedSignature)), nil
}

func (s *ExportService) signExport(export *PurchaseExport) (string, error) {
	exportCopy := *export
	exportCopy.Signature = ""

	data, err := json.Marshal(exportCopy)
	if err != nil {
		return "", err
	}

	h := hmac.New(sha256.New, []byte(s.signingKey))
	h.Write(data)

	return hex.EncodeToString(h.Sum(nil)), nil
}
