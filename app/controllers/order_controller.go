package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/router"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{orders: services.NewOrderService()}
}

// Index handles GET /api/orders. Customers see their own orders, admins
// see every order.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	page, limit := pageParams(r)

	if identity.Role == auth.RoleAdmin {
		orders, pagination, err := c.orders.List(page, limit)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not load orders")
			return
		}
		response.Paginated(w, orders, pagination)
		return
	}

	orders, pagination, err := c.orders.ListForUser(identity.ID, page, limit)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not load orders")
		return
	}
	response.Paginated(w, orders, pagination)
}

// Show handles GET /api/orders/{id}. Owner or admin only; anyone else
// gets 404 rather than confirmation that the order exists.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	order, err := c.orders.Get(router.ParamUint(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}
	if identity.Role != auth.RoleAdmin && order.UserID != identity.ID {
		response.NotFound(w)
		return
	}
	response.Success(w, order)
}

type placeOrderInput struct {
	FirstName      string `json:"firstName"  validate:"required,min=2,max=100"`
	LastName       string `json:"lastName"   validate:"required,min=2,max=100"`
	Email          string `json:"email"      validate:"required,email"`
	Phone          string `json:"phone"      validate:"required,digits=10"`
	Street         string `json:"street"     validate:"nullable,max=255"`
	City           string `json:"city"       validate:"nullable,max=100"`
	PostalCode     string `json:"postalCode" validate:"nullable,max=20"`
	DeliveryMethod string `json:"deliveryMethod" validate:"required,in=delivery,pickup"`
	PaymentMethod  string `json:"paymentMethod"  validate:"required,in=cod,card,branch"`
	BranchID       string `json:"branchId"   validate:"nullable,max=50"`
	Items          []struct {
		ProductID uint `json:"productId" validate:"required"`
		Quantity  int  `json:"quantity"  validate:"required,numeric,min=1"`
	} `json:"items" validate:"required"`
}

// Store handles POST /api/orders, placing an order directly without the
// staged checkout session.
func (c *OrderController) Store(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	var in placeOrderInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	place := services.PlaceInput{
		UserID:         identity.ID,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Street:         in.Street,
		City:           in.City,
		PostalCode:     in.PostalCode,
		DeliveryMethod: in.DeliveryMethod,
		PaymentMethod:  in.PaymentMethod,
		BranchID:       in.BranchID,
	}
	for _, item := range in.Items {
		if item.ProductID == 0 || item.Quantity < 1 {
			response.BadRequest(w, "Each item needs a product and a quantity of at least 1")
			return
		}
		place.Items = append(place.Items, services.PlaceItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := c.orders.Place(place)
	switch {
	case errors.Is(err, services.ErrEmptyOrder),
		errors.Is(err, services.ErrUnknownProduct),
		errors.Is(err, services.ErrUnknownBranch):
		response.BadRequest(w, err.Error())
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not place order")
		return
	}
	response.Created(w, order)
}

type orderStatusInput struct {
	Status string `json:"status" validate:"required,in=pending,processing,shipped,delivered,cancelled"`
}

// UpdateStatus handles PATCH /api/orders/{id}/status (admin). Illegal
// lifecycle moves come back as 422.
func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in orderStatusInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(router.ParamUint(r, "id"), in.Status)
	switch {
	case errors.Is(err, services.ErrIllegalTransition):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, services.ErrUnknownOrderStatus):
		response.BadRequest(w, err.Error())
		return
	case err != nil:
		response.NotFound(w)
		return
	}
	response.Success(w, order)
}
