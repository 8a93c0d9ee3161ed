// Package checkout implements the three-stage checkout wizard as an
// explicit finite-state machine:
//
//	DeliveryInfo (1) → Payment (2) → Confirmation (3, terminal)
//
// Each forward transition is gated by a validation predicate over the
// accumulated draft. Stage 2→1 back-navigation is unconditional. Passing
// the payment gate submits the order through a Submitter; both the
// confirmed and the declined outcome land in the terminal stage, carrying
// a Result that never includes card fields.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shashiranjanraj/aushadhi/app/models"
	"github.com/shashiranjanraj/aushadhi/pkg/metrics"
)

// Stage identifies one wizard step.
type Stage int

const (
	StageDeliveryInfo Stage = iota + 1
	StagePayment
	StageConfirmation
)

// String names the stage for logs and metrics.
func (s Stage) String() string {
	switch s {
	case StageDeliveryInfo:
		return "delivery_info"
	case StagePayment:
		return "payment"
	case StageConfirmation:
		return "confirmation"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Result statuses.
const (
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
)

var (
	// ErrTerminal is returned by Continue and Back once the flow has
	// reached the confirmation stage.
	ErrTerminal = errors.New("checkout: flow is terminal")

	// ErrCannotGoBack is returned by Back at the first stage.
	ErrCannotGoBack = errors.New("checkout: already at the first stage")
)

// ValidationError reports the fields that failed a stage gate. It is
// recoverable: the flow stays on the same stage and the caller may retry.
type ValidationError struct {
	Stage  Stage
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("checkout: %s validation failed: %s", e.Stage, strings.Join(names, ", "))
}

// Item is one cart line carried through the draft into submission.
type Item struct {
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

// Draft accumulates the order-entry form state. It lives only in the
// session (encrypted) and is discarded once the flow terminates.
type Draft struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`

	DeliveryMethod string `json:"deliveryMethod"`
	BranchID       string `json:"branchId"`
	PaymentMethod  string `json:"paymentMethod"`

	CardNumber     string `json:"cardNumber"`
	CardHolderName string `json:"cardHolderName"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`

	Items []Item `json:"items"`
}

// Result is the terminal outcome. It deliberately carries no draft or
// card data, only what the confirmation page needs.
type Result struct {
	Status      string `json:"status"` // confirmed | declined
	OrderNumber string `json:"orderNumber,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// Submitter performs the order-creation call once both gates pass.
// Returning an error declines the attempt; the flow does not retry.
type Submitter interface {
	Submit(ctx context.Context, draft Draft) (orderNumber string, err error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, draft Draft) (string, error)

func (f SubmitterFunc) Submit(ctx context.Context, draft Draft) (string, error) {
	return f(ctx, draft)
}

// Flow is one user's progress through the wizard.
type Flow struct {
	stage     Stage
	draft     Draft
	result    *Result
	submitter Submitter
}

// New starts a flow at the delivery-info stage. The draft opens in
// delivery mode, which couples the payment method to card.
func New(s Submitter) *Flow {
	f := &Flow{stage: StageDeliveryInfo, submitter: s}
	f.SetDeliveryMethod(models.DeliveryMethodDelivery)
	return f
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage { return f.stage }

// Draft returns a copy of the accumulated form state.
func (f *Flow) Draft() Draft { return f.draft }

// Result returns the terminal outcome once the flow has confirmed or
// declined.
func (f *Flow) Result() (Result, bool) {
	if f.result == nil {
		return Result{}, false
	}
	return *f.result, true
}

// ─── Field mutation ───────────────────────────────────────────────────────────

// SetDeliveryMethod changes the delivery method and applies the payment
// coupling at field-change time: delivery forces card, pickup defaults to
// branch payment.
func (f *Flow) SetDeliveryMethod(method string) {
	f.draft.DeliveryMethod = method
	switch method {
	case models.DeliveryMethodDelivery:
		f.draft.PaymentMethod = models.PaymentMethodCard
	case models.DeliveryMethodPickup:
		f.draft.PaymentMethod = models.PaymentMethodBranch
	}
}

// SetPaymentMethod overrides the payment method, e.g. a pickup customer
// choosing to pay by card in advance.
func (f *Flow) SetPaymentMethod(method string) {
	f.draft.PaymentMethod = method
}

// Update merges non-empty fields of patch into the draft. A changed
// delivery method goes through SetDeliveryMethod so the coupling applies;
// a changed payment method is applied after, so an explicit choice in the
// same patch wins.
func (f *Flow) Update(patch Draft) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&f.draft.FirstName, patch.FirstName)
	set(&f.draft.LastName, patch.LastName)
	set(&f.draft.Email, patch.Email)
	set(&f.draft.Phone, patch.Phone)
	set(&f.draft.Street, patch.Street)
	set(&f.draft.City, patch.City)
	set(&f.draft.PostalCode, patch.PostalCode)
	set(&f.draft.BranchID, patch.BranchID)
	set(&f.draft.CardNumber, patch.CardNumber)
	set(&f.draft.CardHolderName, patch.CardHolderName)
	set(&f.draft.ExpiryDate, patch.ExpiryDate)
	set(&f.draft.CVV, patch.CVV)
	if patch.Items != nil {
		f.draft.Items = patch.Items
	}

	if patch.DeliveryMethod != "" && patch.DeliveryMethod != f.draft.DeliveryMethod {
		f.SetDeliveryMethod(patch.DeliveryMethod)
	}
	if patch.PaymentMethod != "" {
		f.draft.PaymentMethod = patch.PaymentMethod
	}
}

// ─── Transitions ──────────────────────────────────────────────────────────────

// Continue attempts the forward transition from the current stage.
// A gate failure returns a *ValidationError and the stage is unchanged.
// Passing the payment gate submits the order; both outcomes terminate the
// flow at the confirmation stage, and only the Result distinguishes them.
func (f *Flow) Continue(ctx context.Context) error {
	switch f.stage {
	case StageDeliveryInfo:
		if errs := f.validateDeliveryInfo(); len(errs) > 0 {
			metrics.CheckoutRejections.WithLabelValues(f.stage.String()).Inc()
			return &ValidationError{Stage: f.stage, Fields: errs}
		}
		f.stage = StagePayment
		return nil

	case StagePayment:
		if errs := f.validatePayment(); len(errs) > 0 {
			metrics.CheckoutRejections.WithLabelValues(f.stage.String()).Inc()
			return &ValidationError{Stage: f.stage, Fields: errs}
		}

		orderNumber, err := f.submitter.Submit(ctx, f.draft)
		if err != nil {
			f.result = &Result{Status: StatusDeclined, Reason: err.Error()}
		} else {
			f.result = &Result{Status: StatusConfirmed, OrderNumber: orderNumber}
		}
		f.stage = StageConfirmation
		return nil

	default:
		return ErrTerminal
	}
}

// Back moves from the payment stage to delivery info. The draft is kept
// as-is; in particular the payment-method coupling set on the way forward
// is not reset.
func (f *Flow) Back() error {
	switch f.stage {
	case StagePayment:
		f.stage = StageDeliveryInfo
		return nil
	case StageDeliveryInfo:
		return ErrCannotGoBack
	default:
		return ErrTerminal
	}
}

// ─── Gates ────────────────────────────────────────────────────────────────────

func (f *Flow) validateDeliveryInfo() map[string]string {
	errs := map[string]string{}

	switch f.draft.DeliveryMethod {
	case models.DeliveryMethodPickup:
		if f.draft.BranchID == "" {
			errs["branchId"] = "Select a pickup branch."
		}
	default:
		required := map[string]string{
			"firstName":  f.draft.FirstName,
			"lastName":   f.draft.LastName,
			"email":      f.draft.Email,
			"phone":      f.draft.Phone,
			"street":     f.draft.Street,
			"city":       f.draft.City,
			"postalCode": f.draft.PostalCode,
		}
		for field, value := range required {
			if strings.TrimSpace(value) == "" {
				errs[field] = "This field is required."
			}
		}
	}
	return errs
}

func (f *Flow) validatePayment() map[string]string {
	errs := map[string]string{}
	if !models.ValidPaymentMethod(f.draft.PaymentMethod) {
		errs["paymentMethod"] = "Select a valid payment method."
		return errs
	}
	if f.draft.PaymentMethod == models.PaymentMethodCard {
		required := map[string]string{
			"cardNumber":     f.draft.CardNumber,
			"cardHolderName": f.draft.CardHolderName,
			"expiryDate":     f.draft.ExpiryDate,
			"cvv":            f.draft.CVV,
		}
		for field, value := range required {
			if strings.TrimSpace(value) == "" {
				errs[field] = "This field is required."
			}
		}
	}
	return errs
}

// ─── Persistence ──────────────────────────────────────────────────────────────

// State is the serialisable snapshot stored (encrypted) in the session
// between HTTP requests.
type State struct {
	Stage  Stage   `json:"stage"`
	Draft  Draft   `json:"draft"`
	Result *Result `json:"result,omitempty"`
}

// State snapshots the flow.
func (f *Flow) State() State {
	return State{Stage: f.stage, Draft: f.draft, Result: f.result}
}

// Resume rebuilds a flow from a snapshot.
func Resume(st State, s Submitter) *Flow {
	if st.Stage < StageDeliveryInfo || st.Stage > StageConfirmation {
		st.Stage = StageDeliveryInfo
	}
	return &Flow{stage: st.Stage, draft: st.Draft, result: st.Result, submitter: s}
}
