package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/aushadhi/app/checkout"
	"github.com/shashiranjanraj/aushadhi/app/services"
	"github.com/shashiranjanraj/aushadhi/pkg/auth"
	"github.com/shashiranjanraj/aushadhi/pkg/bind"
	"github.com/shashiranjanraj/aushadhi/pkg/crypt"
	"github.com/shashiranjanraj/aushadhi/pkg/response"
	"github.com/shashiranjanraj/aushadhi/pkg/session"
)

// checkoutKey names the session slot holding the encrypted flow snapshot.
// Keyed per user so a second account on the same browser session cannot
// resume another user's draft.
func checkoutKey(userID uint) string {
	return fmt.Sprintf("checkout:%d", userID)
}

// CheckoutController drives the three-stage order wizard. The flow state
// lives encrypted in the Redis session, never on the client, so card
// fields entered at the payment stage stay server-side.
type CheckoutController struct {
	orders *services.OrderService
}

func NewCheckoutController() *CheckoutController {
	return &CheckoutController{orders: services.NewOrderService()}
}

func (c *CheckoutController) load(r *http.Request, userID uint) (*checkout.Flow, *session.Session, bool) {
	sess, ok := session.Current(r)
	if !ok {
		return nil, nil, false
	}
	var sealed string
	found, err := sess.Get(r.Context(), checkoutKey(userID), &sealed)
	if err != nil || !found {
		return nil, sess, false
	}
	var st checkout.State
	if err := crypt.DecryptJSON(sealed, &st); err != nil {
		return nil, sess, false
	}
	return checkout.Resume(st, checkout.NewOrderSubmitter(c.orders, userID)), sess, true
}

func (c *CheckoutController) save(w http.ResponseWriter, r *http.Request, sess *session.Session, flow *checkout.Flow, userID uint) error {
	if sess == nil {
		sess = session.Start(w, r)
	}
	sealed, err := crypt.EncryptJSON(flow.State())
	if err != nil {
		return err
	}
	return sess.Put(r.Context(), checkoutKey(userID), sealed)
}

// stageView is what every wizard endpoint returns: where the user is and
// what the form currently holds. Card fields are masked before leaving
// the server.
type stageView struct {
	Stage  string           `json:"stage"`
	Draft  checkout.Draft   `json:"draft"`
	Result *checkout.Result `json:"result,omitempty"`
}

func view(flow *checkout.Flow) stageView {
	draft := flow.Draft()
	if n := len(draft.CardNumber); n > 4 {
		draft.CardNumber = "**** **** **** " + draft.CardNumber[n-4:]
	}
	draft.CVV = ""

	v := stageView{Stage: flow.Stage().String(), Draft: draft}
	if result, done := flow.Result(); done {
		v.Result = &result
	}
	return v
}

type startCheckoutInput struct {
	Items []checkout.Item `json:"items" validate:"required"`
}

// Start handles POST /api/checkout. Any in-flight flow is replaced.
func (c *CheckoutController) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}

	var in startCheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	for _, item := range in.Items {
		if item.ProductID == 0 || item.Quantity < 1 {
			response.BadRequest(w, "Each item needs a product and a quantity of at least 1")
			return
		}
	}

	flow := checkout.New(checkout.NewOrderSubmitter(c.orders, identity.ID))
	flow.Update(checkout.Draft{Items: in.Items})

	sess, _ := session.Current(r)
	if err := c.save(w, r, sess, flow, identity.ID); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not start checkout")
		return
	}
	response.Created(w, view(flow))
}

// Show handles GET /api/checkout.
func (c *CheckoutController) Show(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	flow, _, found := c.load(r, identity.ID)
	if !found {
		response.NotFound(w)
		return
	}
	response.Success(w, view(flow))
}

// Update handles PUT /api/checkout, merging form fields into the draft.
func (c *CheckoutController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	flow, sess, found := c.load(r, identity.ID)
	if !found {
		response.NotFound(w)
		return
	}

	var patch checkout.Draft
	if _, err := bind.JSON(r, &patch); err != nil {
		response.BadRequest(w, err.Error())
		return
	}
	flow.Update(patch)

	if err := c.save(w, r, sess, flow, identity.ID); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}
	response.Success(w, view(flow))
}

// Continue handles POST /api/checkout/continue, advancing the wizard one
// stage. Gate failures come back as 422 with per-field messages; a
// terminated flow answers 409.
func (c *CheckoutController) Continue(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	flow, sess, found := c.load(r, identity.ID)
	if !found {
		response.NotFound(w)
		return
	}

	err := flow.Continue(r.Context())
	var vErr *checkout.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.ValidationError(w, vErr.Fields)
		return
	case errors.Is(err, checkout.ErrTerminal):
		response.Error(w, http.StatusConflict, "Checkout already completed")
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not continue checkout")
		return
	}

	if err := c.save(w, r, sess, flow, identity.ID); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}
	response.Success(w, view(flow))
}

// Back handles POST /api/checkout/back.
func (c *CheckoutController) Back(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromRequest(r)
	if !ok {
		response.Unauthenticated(w)
		return
	}
	flow, sess, found := c.load(r, identity.ID)
	if !found {
		response.NotFound(w)
		return
	}

	err := flow.Back()
	switch {
	case errors.Is(err, checkout.ErrCannotGoBack):
		response.Error(w, http.StatusConflict, "Already at the first step")
		return
	case errors.Is(err, checkout.ErrTerminal):
		response.Error(w, http.StatusConflict, "Checkout already completed")
		return
	case err != nil:
		response.Error(w, http.StatusInternalServerError, "Could not go back")
		return
	}

	if err := c.save(w, r, sess, flow, identity.ID); err != nil {
		response.Error(w, http.StatusInternalServerError, "Could not save checkout")
		return
	}
	response.Success(w, view(flow))
}
