package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type CreditsHandler struct {
	creditService      *services.CreditService
	transactionService *services.TransactionService
}

func NewCreditsHandler(creditService *services.CreditService, transactionService *services.TransactionService) *CreditsHandler {
	return &CreditsHandler{
		creditService:      creditService,
		transactionService: transactionService,
	}
}

type BalanceResponse struct {
	CreditBalance int `json:"credit_balance"`
}

// GetBalance godoc
// @Summary Get credit balance
// @Description Get the authenticated user's credit balance
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /credits [get]
func (h *CreditsHandler) GetBalance(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	balance, err := h.creditService.GetBalance(clerkID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{CreditBalance: balance})
}

type PurchaseHistoryResponse struct {
	ID        uint    `json:"id"`
	Plan      string  `json:"plan"`
	Credits   int     `json:"credits"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

// GetPurchaseHistory godoc
// @Summary Get purchase history
// @Description Get the authenticated user's credit purchase history
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PurchaseHistoryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /transactions [get]
func (h *CreditsHandler) GetPurchaseHistory(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	transactions, err := h.transactionService.GetPurchaseHistory(clerkID)
	if err != nil {
		if err == services.ErrUserNotFound {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	response := make([]PurchaseHistoryResponse, len(transactions))
	for i, tx := range transactions {
		response[i] = PurchaseHistoryResponse{
			ID:        tx.ID,
			Plan:      tx.Plan,
			Credits:   tx.Credits,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	c.JSON(http.StatusOK, response)
}
