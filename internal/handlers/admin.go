package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/repository"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	userRepo           *repository.UserRepository
	transactionService *services.TransactionService
	creditService      *services.CreditService
}

func NewAdminHandler(userRepo *repository.UserRepository, transactionService *services.TransactionService, creditService *services.CreditService) *AdminHandler {
	return &AdminHandler{
		userRepo:           userRepo,
		transactionService: transactionService,
		creditService:      creditService,
	}
}

type UserListResponse struct {
	ClerkID       string `json:"clerk_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Plan          string `json:"plan"`
	CreditBalance int    `json:"credit_balance"`
	CreatedAt     string `json:"created_at"`
}

type AdminTransactionResponse struct {
	ID        uint    `json:"id"`
	StripeID  string  `json:"stripe_id"`
	Buyer     string  `json:"buyer"`
	Plan      string  `json:"plan"`
	Credits   int     `json:"credits"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type SetBalanceRequest struct {
	CreditBalance int `json:"credit_balance" binding:"gte=0"`
}

// ListUsers godoc
// @Summary List all users (Admin)
// @Description Get a list of all users and their credit balances
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserListResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.userRepo.FindAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]UserListResponse, len(users))
	for i, user := range users {
		response[i] = UserListResponse{
			ClerkID:       user.ClerkID,
			Username:      user.Username,
			Email:         user.Email,
			Plan:          user.Plan,
			CreditBalance: user.CreditBalance,
			CreatedAt:     user.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, response)
}

// ListAllTransactions godoc
// @Summary List all transactions (Admin)
// @Description Get a list of all purchase transactions in the system
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdminTransactionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/transactions [get]
func (h *AdminHandler) ListAllTransactions(c *gin.Context) {
	transactions, err := h.transactionService.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]AdminTransactionResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = AdminTransactionResponse{
			ID:        tx.ID,
			StripeID:  tx.StripeID,
			Buyer:     tx.Buyer.Username,
			Plan:      tx.Plan,
			Credits:   tx.Credits,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, response)
}

// SetBalance godoc
// @Summary Set credit balance (Admin)
// @Description Set a user's credit balance directly
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param request body SetBalanceRequest true "New balance"
// @Success 200 {object} BalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/credits/{username} [put]
func (h *AdminHandler) SetBalance(c *gin.Context) {
	username := c.Param("username")

	var req SetBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	err := h.creditService.SetBalance(username, req.CreditBalance)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{CreditBalance: req.CreditBalance})
}
