package models

import (
	"crypto/rand"
	"fmt"

	"gorm.io/gorm"
)

// Order statuses. Delivered and cancelled are terminal.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Delivery methods.
const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// Payment methods.
const (
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodBranch = "branch"
)

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodBranch:
		return true
	}
	return false
}

// orderTransitions is the forward lifecycle. Cancelled is additionally
// reachable from every non-terminal status.
var orderTransitions = map[string]string{
	OrderStatusPending:    OrderStatusProcessing,
	OrderStatusProcessing: OrderStatusShipped,
	OrderStatusShipped:    OrderStatusDelivered,
}

// ValidOrderStatus reports whether s is a known status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from one status to next.
func CanTransition(from, next string) bool {
	if from == OrderStatusDelivered || from == OrderStatusCancelled {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderTransitions[from] == next
}

// Order is a placed order. Everything except Status is immutable after
// creation; the contact fields are a snapshot, not a FK into users.
type Order struct {
	gorm.Model
	OrderNumber string `gorm:"size:20;uniqueIndex;not null" json:"orderNumber"`
	UserID      uint   `gorm:"not null;index"               json:"userId"`
	User        *User  `gorm:"foreignKey:UserID"            json:"user,omitempty"`

	FirstName  string `gorm:"size:100" json:"firstName"`
	LastName   string `gorm:"size:100" json:"lastName"`
	Email      string `gorm:"size:255" json:"email"`
	Phone      string `gorm:"size:30"  json:"phone"`
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20"  json:"postalCode"`

	DeliveryMethod string  `gorm:"size:20;not null"  json:"deliveryMethod"`
	BranchID       string  `gorm:"size:50"           json:"branchId"`
	PaymentMethod  string  `gorm:"size:20;not null"  json:"paymentMethod"`
	Subtotal       float64 `gorm:"not null"          json:"subtotal"`
	ShippingFee    float64 `gorm:"not null"          json:"shippingFee"`
	Total          float64 `gorm:"not null"          json:"total"`
	Status         string  `gorm:"size:20;not null;default:pending;index" json:"status"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem snapshots one product line at purchase time.
type OrderItem struct {
	gorm.Model
	OrderID   uint    `gorm:"not null;index" json:"orderId"`
	ProductID uint    `gorm:"not null;index" json:"productId"`
	Name      string  `gorm:"size:255;not null" json:"name"`
	Price     float64 `gorm:"not null"       json:"price"`
	Quantity  int     `gorm:"not null"       json:"quantity"`
}

const orderNumberAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewOrderNumber returns an order number of the form ORD- followed by nine
// random upper-case alphanumerics.
func NewOrderNumber() string {
	b := make([]byte, 9)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("order number entropy: %v", err))
	}
	for i := range b {
		b[i] = orderNumberAlphabet[int(b[i])%len(orderNumberAlphabet)]
	}
	return "ORD-" + string(b)
}
