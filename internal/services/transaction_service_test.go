package services

import (
	"testing"

	"github.com/arpanp11/imaginify-saas/internal/database"
	"github.com/arpanp11/imaginify-saas/internal/models"
	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/stretchr/testify/assert"
)

func setupTransactionTestDB(t *testing.T) (*repository.UserRepository, *repository.TransactionRepository, *TransactionService, *CreditService) {
	db, err := database.Connect(":memory:")
	assert.NoError(t, err)

	err = database.Migrate(db)
	assert.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	creditService := NewCreditService(userRepo, db)
	transactionService := NewTransactionService(transactionRepo, userRepo, creditService, db)

	return userRepo, transactionRepo, transactionService, creditService
}

func TestTransactionService_CreateGrantsCredits(t *testing.T) {
	userRepo, _, transactionService, creditService := setupTransactionTestDB(t)

	buyer := &models.User{ClerkID: "user_buyer", Username: "buyer", Email: "buyer@example.com", CreditBalance: 10}
	err := userRepo.Create(buyer)
	assert.NoError(t, err)

	transaction, err := transactionService.CreateTransaction(CreateTransactionParams{
		StripeID:     "cs_test_1",
		Plan:         "Pro Package",
		Credits:      120,
		Amount:       40,
		BuyerClerkID: "user_buyer",
	})
	assert.NoError(t, err)
	assert.Equal(t, "cs_test_1", transaction.StripeID)
	assert.Equal(t, buyer.ID, transaction.BuyerID)

	balance, err := creditService.GetBalance("user_buyer")
	assert.NoError(t, err)
	assert.Equal(t, 130, balance, "balance read right after createTransaction reflects the grant")

	buyerAfter, _ := userRepo.FindByClerkID("user_buyer")
	assert.Equal(t, "Pro Package", buyerAfter.Plan)
}

func TestTransactionService_DuplicateStripeID(t *testing.T) {
	userRepo, transactionRepo, transactionService, creditService := setupTransactionTestDB(t)

	buyer := &models.User{ClerkID: "user_buyer", Username: "buyer", Email: "buyer@example.com", CreditBalance: 10}
	userRepo.Create(buyer)

	params := CreateTransactionParams{
		StripeID:     "cs_test_dup",
		Plan:         "Pro Package",
		Credits:      120,
		Amount:       40,
		BuyerClerkID: "user_buyer",
	}

	_, err := transactionService.CreateTransaction(params)
	assert.NoError(t, err)

	_, err = transactionService.CreateTransaction(params)
	assert.Equal(t, ErrDuplicateTransaction, err)

	balance, _ := creditService.GetBalance("user_buyer")
	assert.Equal(t, 130, balance, "redelivery must not grant twice")

	transactions, _ := transactionRepo.FindAll()
	assert.Len(t, transactions, 1)
}

func TestTransactionService_UnknownBuyerWritesNothing(t *testing.T) {
	_, transactionRepo, transactionService, _ := setupTransactionTestDB(t)

	_, err := transactionService.CreateTransaction(CreateTransactionParams{
		StripeID:     "cs_test_ghost",
		Plan:         "Pro Package",
		Credits:      120,
		Amount:       40,
		BuyerClerkID: "user_ghost",
	})
	assert.Equal(t, ErrUserNotFound, err)

	transactions, _ := transactionRepo.FindAll()
	assert.Empty(t, transactions, "no transaction row without a credit grant")
}

func TestTransactionService_InvalidCredits(t *testing.T) {
	userRepo, _, transactionService, _ := setupTransactionTestDB(t)

	buyer := &models.User{ClerkID: "user_buyer", Username: "buyer", Email: "buyer@example.com", CreditBalance: 10}
	userRepo.Create(buyer)

	_, err := transactionService.CreateTransaction(CreateTransactionParams{
		StripeID:     "cs_test_zero",
		Plan:         "Free",
		Credits:      0,
		Amount:       0,
		BuyerClerkID: "user_buyer",
	})
	assert.Equal(t, ErrInvalidCredits, err)
}

func TestTransactionService_PurchaseHistory(t *testing.T) {
	userRepo, _, transactionService, _ := setupTransactionTestDB(t)

	buyer := &models.User{ClerkID: "user_buyer", Username: "buyer", Email: "buyer@example.com", CreditBalance: 10}
	other := &models.User{ClerkID: "user_other", Username: "other", Email: "other@example.com", CreditBalance: 10}
	userRepo.Create(buyer)
	userRepo.Create(other)

	_, err := transactionService.CreateTransaction(CreateTransactionParams{
		StripeID: "cs_test_a", Plan: "Pro Package", Credits: 120, Amount: 40, BuyerClerkID: "user_buyer",
	})
	assert.NoError(t, err)
	_, err = transactionService.CreateTransaction(CreateTransactionParams{
		StripeID: "cs_test_b", Plan: "Premium Package", Credits: 2000, Amount: 199, BuyerClerkID: "user_other",
	})
	assert.NoError(t, err)

	history, err := transactionService.GetPurchaseHistory("user_buyer")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "cs_test_a", history[0].StripeID)

	_, err = transactionService.GetPurchaseHistory("user_ghost")
	assert.Equal(t, ErrUserNotFound, err)
}
