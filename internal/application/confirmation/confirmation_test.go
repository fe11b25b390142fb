package confirmation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/checkout"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() checkout.Order {
	items := []cart.Line{{ProductID: "1", Name: "Phone", Price: decimal.RequireFromString("50"), Quantity: 2, Image: "p.jpg"}}
	summary := checkout.Summarize(items, checkout.ShippingExpress)
	return checkout.Order{
		OrderID:        "ORD-1",
		Source:         checkout.SourceCart,
		Items:          items,
		Contact:        checkout.ContactForm{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", Phone: "5551234567"},
		Address:        valueobject.MustNewAddress("1 Main Street", "Austin", valueobject.WithState("TX"), valueobject.WithZipCode("73301"), valueobject.WithCountry("US")),
		ShippingMethod: checkout.ShippingExpress,
		ShippingCost:   summary.Shipping,
		Subtotal:       summary.Subtotal,
		Total:          summary.Total,
		PaymentLast4:   "****4242",
		CardHolder:     "Jane Doe",
		OrderDate:      time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender(t *testing.T) {
	t.Run("no order", func(t *testing.T) {
		assert.Equal(t, View{Valid: false}, Render(nil))
	})

	t.Run("placed order", func(t *testing.T) {
		order := sampleOrder()
		v := Render(&order)

		assert.True(t, v.Valid)
		assert.Equal(t, "ORD-1", v.OrderID)
		assert.Equal(t, "Jane Doe", v.CustomerName)
		assert.Equal(t, []string{"1 Main Street", "Austin, TX 73301", "US"}, v.AddressLines)
		assert.Equal(t, "Express Shipping", v.ShippingMethod)
		assert.Equal(t, "100.00", v.Subtotal)
		assert.Equal(t, "25.00", v.Shipping)
		assert.Equal(t, "125.00", v.Total)
		assert.Equal(t, "****4242", v.Payment)
		assert.Equal(t, "March 1, 2024", v.OrderDate)
		require.Len(t, v.Items, 1)
		assert.Equal(t, "100.00", v.Items[0].Total)
	})
}

func TestShippingLabel(t *testing.T) {
	assert.Equal(t, "Standard Shipping", ShippingLabel(checkout.ShippingStandard))
	assert.Equal(t, "Overnight Shipping", ShippingLabel(checkout.ShippingOvernight))
	assert.Empty(t, ShippingLabel(""))
}

func TestInbox(t *testing.T) {
	inbox := NewInbox(nil)
	assert.False(t, inbox.View().Valid)

	order := sampleOrder()
	require.NoError(t, inbox.Handle(context.Background(), checkout.NewOrderPlacedEvent(order)))

	latest, ok := inbox.Latest()
	require.True(t, ok)
	assert.Equal(t, "ORD-1", latest.OrderID)

	latest.Items[0].Quantity = 99
	again, _ := inbox.Latest()
	assert.Equal(t, 2, again.Items[0].Quantity)
	assert.True(t, inbox.View().Valid)
	assert.Equal(t, []string{checkout.EventTypeOrderPlaced}, inbox.EventTypes())
}
