package models_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/aushadhi/app/models"
)

func TestOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[A-Z0-9]{9}$`)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		n := models.NewOrderNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	// 200 draws from a 36^9 space should never collide.
	assert.Len(t, seen, 200)
}

func TestPaymentMethodClosedSet(t *testing.T) {
	for _, m := range []string{
		models.PaymentMethodCOD,
		models.PaymentMethodCard,
		models.PaymentMethodBranch,
	} {
		assert.True(t, models.ValidPaymentMethod(m), m)
	}
	for _, m := range []string{"", "bitcoin", "CARD", "cheque"} {
		assert.False(t, models.ValidPaymentMethod(m), m)
	}
}

func TestOrderStatusForwardTransitions(t *testing.T) {
	assert.True(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusProcessing))
	assert.True(t, models.CanTransition(models.OrderStatusProcessing, models.OrderStatusShipped))
	assert.True(t, models.CanTransition(models.OrderStatusShipped, models.OrderStatusDelivered))
}

func TestOrderStatusNoSkipping(t *testing.T) {
	assert.False(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusShipped))
	assert.False(t, models.CanTransition(models.OrderStatusPending, models.OrderStatusDelivered))
	assert.False(t, models.CanTransition(models.OrderStatusProcessing, models.OrderStatusDelivered))
	assert.False(t, models.CanTransition(models.OrderStatusShipped, models.OrderStatusProcessing))
}

func TestOrderCancellableFromNonTerminal(t *testing.T) {
	for _, from := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
	} {
		assert.True(t, models.CanTransition(from, models.OrderStatusCancelled), "from %s", from)
	}
}

func TestOrderTerminalStatuses(t *testing.T) {
	for _, next := range []string{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusCancelled,
	} {
		assert.False(t, models.CanTransition(models.OrderStatusDelivered, next), "delivered -> %s", next)
		assert.False(t, models.CanTransition(models.OrderStatusCancelled, next), "cancelled -> %s", next)
	}
}

func TestProductFirstImage(t *testing.T) {
	p := models.Product{}
	assert.Equal(t, "", p.FirstImage())

	p.Images = []models.ProductImage{
		{URL: "/storage/products/a.jpg"},
		{URL: "/storage/products/b.jpg"},
	}
	assert.Equal(t, "/storage/products/a.jpg", p.FirstImage())
}

func TestUserFullNameDerived(t *testing.T) {
	u := models.User{FirstName: "Nimal", LastName: "Perera"}
	assert.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, "Nimal Perera", u.FullName)
}
