package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutService_SessionParamsShape(t *testing.T) {
	checkoutService := NewCheckoutService("sk_test_key", "https://imaginify.example.com")

	params := checkoutService.buildSessionParams(CheckoutParams{
		Plan:         "Pro",
		Credits:      120,
		Amount:       10.00,
		BuyerClerkID: "user_buyer",
	})

	assert.Equal(t, "payment", *params.Mode)
	assert.Len(t, params.LineItems, 1)

	item := params.LineItems[0]
	assert.Equal(t, int64(1), *item.Quantity)
	assert.Equal(t, "usd", *item.PriceData.Currency)
	assert.Equal(t, int64(1000), *item.PriceData.UnitAmount, "10.00 converts to 1000 minor units")
	assert.Equal(t, "Pro", *item.PriceData.ProductData.Name)

	assert.Equal(t, "user_buyer", *params.ClientReferenceID)
	assert.Equal(t, "https://imaginify.example.com/profile", *params.SuccessURL)
	assert.Equal(t, "https://imaginify.example.com/", *params.CancelURL)

	assert.Equal(t, "Pro", params.Metadata["plan"])
	assert.Equal(t, "120", params.Metadata["credits"])
	assert.Equal(t, "user_buyer", params.Metadata["buyerId"])
}

func TestCheckoutService_FractionalAmountsRound(t *testing.T) {
	checkoutService := NewCheckoutService("sk_test_key", "https://imaginify.example.com")

	params := checkoutService.buildSessionParams(CheckoutParams{
		Plan:         "Premium Package",
		Credits:      2000,
		Amount:       199.99,
		BuyerClerkID: "user_buyer",
	})

	assert.Equal(t, int64(19999), *params.LineItems[0].PriceData.UnitAmount)
}
