package handlers

import (
	"net/http"

	"github.com/arpanp11/imaginify-saas/internal/middleware"
	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// CheckoutCredits godoc
// @Summary Start a credit purchase
// @Description Create a hosted checkout session for a credit plan and redirect to it
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "Plan to purchase"
// @Success 303 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) CheckoutCredits(c *gin.Context) {
	clerkID := middleware.GetClerkID(c)

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return
	}

	plan, ok := services.PlanByName(req.Plan)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown plan"})
		return
	}

	url, err := h.checkoutService.CheckoutCredits(services.CheckoutParams{
		Plan:         plan.Name,
		Credits:      plan.Credits,
		Amount:       plan.Price,
		BuyerClerkID: clerkID,
	})
	if err != nil {
		// Provider failures surface to the caller; nothing was persisted.
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		return
	}

	c.Header("Location", url)
	c.JSON(http.StatusSeeOther, CheckoutResponse{URL: url})
}
