package services

import (
	"math"
	"strconv"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/checkout/session"
)

// CheckoutService initiates hosted payment sessions. No local persistence
// happens here; the Transaction row is written later when the provider's
// webhook confirms payment.
type CheckoutService struct {
	serverURL string
}

func NewCheckoutService(secretKey, serverURL string) *CheckoutService {
	stripe.Key = secretKey
	return &CheckoutService{serverURL: serverURL}
}

type CheckoutParams struct {
	Plan         string
	Credits      int
	Amount       float64
	BuyerClerkID string
}

// CheckoutCredits creates the provider-hosted checkout session for one
// priced line item and returns its redirect URL. Provider errors propagate
// to the caller unwrapped.
func (s *CheckoutService) CheckoutCredits(params CheckoutParams) (string, error) {
	sess, err := session.New(s.buildSessionParams(params))
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}

// buildSessionParams is split out so the minor-unit conversion and metadata
// shape stay unit-testable without a provider call.
func (s *CheckoutService) buildSessionParams(params CheckoutParams) *stripe.CheckoutSessionParams {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(int64(math.Round(params.Amount * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.Plan),
					},
				},
			},
		},
		ClientReferenceID: stripe.String(params.BuyerClerkID),
		SuccessURL:        stripe.String(s.serverURL + "/profile"),
		CancelURL:         stripe.String(s.serverURL + "/"),
	}

	sessionParams.AddMetadata("plan", params.Plan)
	sessionParams.AddMetadata("credits", strconv.Itoa(params.Credits))
	sessionParams.AddMetadata("buyerId", params.BuyerClerkID)

	return sessionParams
}
