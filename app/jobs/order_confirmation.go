// Package jobs holds the queued background jobs. Each job registers its
// type name in init so workers can rebuild it from the wire envelope.
package jobs

import (
	"fmt"

	"github.com/shashiranjanraj/aushadhi/pkg/notification"
	"github.com/shashiranjanraj/aushadhi/pkg/queue"
)

func init() {
	queue.Register(fmt.Sprintf("%T", &OrderConfirmationJob{}), func() queue.Job {
		return &OrderConfirmationJob{}
	})
}

// OrderConfirmationJob emails the customer after an order is placed. It is
// dispatched from the order-placed event listener so checkout never waits
// on SMTP.
type OrderConfirmationJob struct {
	OrderNumber    string  `json:"orderNumber"`
	Email          string  `json:"email"`
	FirstName      string  `json:"firstName"`
	Total          float64 `json:"total"`
	DeliveryMethod string  `json:"deliveryMethod"`
	BranchID       string  `json:"branchId"`
}

func (j *OrderConfirmationJob) Handle() error {
	errs := notification.Send(j.Email, orderConfirmation{job: j})
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

type orderConfirmation struct {
	job *OrderConfirmationJob
}

func (n orderConfirmation) Via() []string { return []string{"mail"} }

func (n orderConfirmation) ToMail() notification.MailData {
	var pickup string
	if n.job.DeliveryMethod == "pickup" {
		pickup = fmt.Sprintf("<p>Your order will be ready for pickup at our %s branch.</p>", n.job.BranchID)
	} else {
		pickup = "<p>Your order will be delivered to the address you provided.</p>"
	}

	return notification.MailData{
		Subject: fmt.Sprintf("Order %s confirmed", n.job.OrderNumber),
		Body: fmt.Sprintf(
			"<h2>Thank you, %s!</h2><p>Your order <strong>%s</strong> has been received. Total: Rs. %.2f.</p>%s",
			n.job.FirstName, n.job.OrderNumber, n.job.Total, pickup,
		),
		Text: fmt.Sprintf(
			"Thank you, %s! Your order %s has been received. Total: Rs. %.2f.",
			n.job.FirstName, n.job.OrderNumber, n.job.Total,
		),
	}
}
