package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/app/repositories"
	"github.com/shashiranjanraj/aushadhi/config"
	"github.com/shashiranjanraj/aushadhi/pkg/collection"
	"github.com/shashiranjanraj/aushadhi/pkg/event"
	"github.com/shashiranjanraj/aushadhi/pkg/metrics"
	"github.com/shashiranjanraj/aushadhi/pkg/orm"
)

// EventOrderPlaced is fired after an order is persisted. Payload is the
// *models.Order.
const EventOrderPlaced = "order.placed"

var (
	ErrEmptyOrder           = errors.New("order has no items")
	ErrUnknownProduct       = errors.New("order references an unknown product")
	ErrUnknownBranch        = errors.New("order references an unknown branch")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrIllegalTransition    = errors.New("illegal order status transition")
	ErrUnknownOrderStatus   = errors.New("unknown order status")
)

// OrderService places orders and walks them through the status lifecycle.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	branches *repositories.BranchRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		branches: repositories.NewBranchRepository(),
	}
}

// PlaceInput is a finalized checkout draft plus the cart lines.
type PlaceInput struct {
	UserID         uint
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Street         string
	City           string
	PostalCode     string
	DeliveryMethod string
	BranchID       string
	PaymentMethod  string
	Items          []PlaceItem
}

// PlaceItem is one cart line in a PlaceInput.
type PlaceItem struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// Place validates the input, snapshots prices, assigns an order number, and
// persists the order as pending. Fires EventOrderPlaced on success.
func (s *OrderService) Place(in PlaceInput) (models.Order, error) {
	if len(in.Items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return models.Order{}, fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, in.PaymentMethod)
	}
	if in.DeliveryMethod == models.DeliveryMethodPickup && !s.branches.Exists(in.BranchID) {
		return models.Order{}, ErrUnknownBranch
	}

	var items []models.OrderItem
	for _, line := range in.Items {
		if line.Quantity <= 0 {
			continue
		}
		product, err := s.products.FindByID(line.ProductID)
		if err != nil {
			return models.Order{}, fmt.Errorf("%w: id %d", ErrUnknownProduct, line.ProductID)
		}
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  line.Quantity,
		})
	}
	if len(items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}
	subtotal := collection.Sum(items, func(it models.OrderItem) float64 {
		return it.Price * float64(it.Quantity)
	})

	shipping := 0.0
	if in.DeliveryMethod == models.DeliveryMethodDelivery {
		shipping, _ = strconv.ParseFloat(config.ShippingFee(), 64)
	}

	order := models.Order{
		OrderNumber:    models.NewOrderNumber(),
		UserID:         in.UserID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Street:         in.Street,
		City:           in.City,
		PostalCode:     in.PostalCode,
		DeliveryMethod: in.DeliveryMethod,
		BranchID:       in.BranchID,
		PaymentMethod:  in.PaymentMethod,
		Subtotal:       subtotal,
		ShippingFee:    shipping,
		Total:          subtotal + shipping,
		Status:         models.OrderStatusPending,
		Items:          items,
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, err
	}

	metrics.OrdersPlaced.WithLabelValues(order.PaymentMethod).Inc()
	event.FireAsync(EventOrderPlaced, &order)

	return order, nil
}

// Get returns one order.
func (s *OrderService) Get(id uint) (models.Order, error) {
	return s.orders.FindByID(id)
}

// List returns all orders (admin view).
func (s *OrderService) List(page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.All(page, limit)
}

// ListForUser returns one customer's orders.
func (s *OrderService) ListForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ForUser(userID, page, limit)
}

// UpdateStatus moves an order through the lifecycle, rejecting skips and
// moves out of a terminal status.
func (s *OrderService) UpdateStatus(id uint, next string) (models.Order, error) {
	if !models.ValidOrderStatus(next) {
		return models.Order{}, ErrUnknownOrderStatus
	}
	order, err := s.orders.FindByID(id)
	if err != nil {
		return models.Order{}, err
	}
	if !models.CanTransition(order.Status, next) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, next)
	}
	if err := s.orders.UpdateStatus(id, next); err != nil {
		return models.Order{}, err
	}
	order.Status = next
	return order, nil
}

// FeedMessage renders the websocket payload broadcast to the admin order
// feed when an order is placed.
func FeedMessage(order *models.Order) []byte {
	msg, _ := json.Marshal(map[string]interface{}{
		"event":       EventOrderPlaced,
		"orderNumber": order.OrderNumber,
		"total":       order.Total,
		"status":      order.Status,
	})
	return msg
}
