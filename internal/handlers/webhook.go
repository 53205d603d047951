package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/arpanp11/imaginify-saas/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
)

// WebhookHandler receives the out-of-band provider callbacks: payment
// confirmations from Stripe and account lifecycle events from the identity
// provider.
type WebhookHandler struct {
	transactionService *services.TransactionService
	userService        *services.UserService
	stripeWebhookKey   string
}

func NewWebhookHandler(transactionService *services.TransactionService, userService *services.UserService, stripeWebhookKey string) *WebhookHandler {
	return &WebhookHandler{
		transactionService: transactionService,
		userService:        userService,
		stripeWebhookKey:   stripeWebhookKey,
	}
}

// HandleStripe godoc
// @Summary Stripe webhook
// @Description Record a completed checkout session as a credit purchase
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /webhooks/stripe [post]
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read webhook body"})
		return
	}

	event, err := h.parseEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to parse webhook payload"})
		return
	}

	if event.Type == "checkout.session.completed" {
		var checkoutSession stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to parse checkout session"})
			return
		}

		if checkoutSession.PaymentStatus == "paid" && checkoutSession.Status == "complete" {
			if err := h.recordPurchase(&checkoutSession); err != nil {
				// Duplicate deliveries are acknowledged so Stripe stops
				// retrying them.
				if err != services.ErrDuplicateTransaction {
					log.Printf("Failed to record purchase for session %s: %v", checkoutSession.ID, err)
					c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
					return
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *WebhookHandler) parseEvent(payload []byte, signature string) (stripe.Event, error) {
	if h.stripeWebhookKey != "" {
		return webhook.ConstructEvent(payload, signature, h.stripeWebhookKey)
	}

	var event stripe.Event
	err := json.Unmarshal(payload, &event)
	return event, err
}

func (h *WebhookHandler) recordPurchase(checkoutSession *stripe.CheckoutSession) error {
	credits, err := strconv.Atoi(checkoutSession.Metadata["credits"])
	if err != nil {
		return err
	}

	buyerID := checkoutSession.Metadata["buyerId"]
	if buyerID == "" {
		buyerID = checkoutSession.ClientReferenceID
	}

	_, err = h.transactionService.CreateTransaction(services.CreateTransactionParams{
		StripeID:     checkoutSession.ID,
		Plan:         checkoutSession.Metadata["plan"],
		Credits:      credits,
		Amount:       float64(checkoutSession.AmountTotal) / 100,
		BuyerClerkID: buyerID,
	})
	return err
}

type clerkWebhookEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		Username       string `json:"username"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

// HandleClerk godoc
// @Summary Identity provider webhook
// @Description Mirror identity provider account events into the user store
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Router /webhooks/clerk [post]
func (h *WebhookHandler) HandleClerk(c *gin.Context) {
	var event clerkWebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to parse webhook payload"})
		return
	}

	email := ""
	if len(event.Data.EmailAddresses) > 0 {
		email = event.Data.EmailAddresses[0].EmailAddress
	}

	var err error
	switch event.Type {
	case "user.created":
		_, err = h.userService.CreateUser(services.CreateUserParams{
			ClerkID:   event.Data.ID,
			Email:     email,
			Username:  event.Data.Username,
			Photo:     event.Data.ImageURL,
			FirstName: event.Data.FirstName,
			LastName:  event.Data.LastName,
		})
		if err == services.ErrUserAlreadyExists {
			err = nil
		}
	case "user.updated":
		_, err = h.userService.UpdateUser(event.Data.ID, services.UpdateUserParams{
			Username:  event.Data.Username,
			Photo:     event.Data.ImageURL,
			FirstName: event.Data.FirstName,
			LastName:  event.Data.LastName,
		})
	case "user.deleted":
		err = h.userService.DeleteUser(event.Data.ID)
	}

	if err != nil && err != services.ErrUserNotFound {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
