package checkout

import (
	"context"

	"github.com/shashiranjanraj/aushadhi/app/services"
)

// orderSubmitter places the finalized draft through OrderService on behalf
// of one authenticated user.
type orderSubmitter struct {
	orders *services.OrderService
	userID uint
}

// NewOrderSubmitter returns the production Submitter: an in-process call
// into the order service for the given user.
func NewOrderSubmitter(orders *services.OrderService, userID uint) Submitter {
	return &orderSubmitter{orders: orders, userID: userID}
}

func (s *orderSubmitter) Submit(_ context.Context, draft Draft) (string, error) {
	items := make([]services.PlaceItem, 0, len(draft.Items))
	for _, it := range draft.Items {
		items = append(items, services.PlaceItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := s.orders.Place(services.PlaceInput{
		UserID:         s.userID,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		Email:          draft.Email,
		Phone:          draft.Phone,
		Street:         draft.Street,
		City:           draft.City,
		PostalCode:     draft.PostalCode,
		DeliveryMethod: draft.DeliveryMethod,
		BranchID:       draft.BranchID,
		PaymentMethod:  draft.PaymentMethod,
		Items:          items,
	})
	if err != nil {
		return "", err
	}
	return order.OrderNumber, nil
}
