// Package notification delivers customer and staff notifications over
// mail, Slack, and plain webhooks.
//
// A notification names its channels and provides a payload per channel:
//
//	type OrderPlaced struct { Order models.Order }
//	func (n *OrderPlaced) Via() []string { return []string{"mail", "slack"} }
//	func (n *OrderPlaced) ToMail() notification.MailData {
//	    return notification.MailData{
//	        Subject: "Order " + n.Order.OrderNumber + " confirmed",
//	        Body:    "<h1>Thank you for your order</h1>",
//	    }
//	}
//	func (n *OrderPlaced) ToSlack() notification.SlackData {
//	    return notification.SlackData{Text: "New order: " + n.Order.OrderNumber}
//	}
//
//	notification.Send(user.Email, &OrderPlaced{Order: order})
package notification

import (
	"fmt"
	"time"

	"github.com/shashiranjanraj/aushadhi/pkg/http"
	"github.com/shashiranjanraj/aushadhi/pkg/logger"
	"github.com/shashiranjanraj/aushadhi/pkg/mail"
)

// MailData is the payload for the mail channel.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback when Body is empty
}

// SlackData is the payload for the Slack channel.
type SlackData struct {
	WebhookURL  string // override the default webhook if set
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is one attachment block. Color is "good", "warning"
// or "danger".
type SlackAttachment struct {
	Color  string `json:"color,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// WebhookData is an arbitrary JSON payload POSTed to a URL.
type WebhookData struct {
	URL     string
	Payload interface{}
	Headers map[string]string
}

// Notification names the channels a message goes out on. A notification
// must also implement the payload interface for each channel it names.
type Notification interface {
	// Via returns channel names: "mail", "slack", "webhook".
	Via() []string
}

type Mailable interface{ ToMail() MailData }
type Slackable interface{ ToSlack() SlackData }
type Webhookable interface{ ToWebhook() WebhookData }

var defaultSlackWebhook string

// SetSlackWebhook sets the default Slack incoming webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// Send dispatches the notification on every channel Via() names. A failed
// channel is logged and collected; the remaining channels still run.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := deliver(address, channel, n); err != nil {
			logger.Error("notification: channel failed",
				"channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// SendAsync dispatches in a background goroutine. Errors are logged only.
func SendAsync(address string, n Notification) {
	go Send(address, n)
}

func deliver(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		if m, ok := n.(Mailable); ok {
			return toMail(address, m.ToMail())
		}
	case "slack":
		if s, ok := n.(Slackable); ok {
			return toSlack(s.ToSlack())
		}
	case "webhook":
		if wh, ok := n.(Webhookable); ok {
			return toWebhook(wh.ToWebhook())
		}
	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
	return fmt.Errorf("notification: %T has no payload for channel %q", n, channel)
}

func toMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	if d.Body != "" {
		return mail.To(to).Subject(d.Subject).Body(d.Body).Send()
	}
	return mail.To(to).Subject(d.Subject).Text(d.Text).Send()
}

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func toSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	resp, err := http.Post(url).
		Body(slackPayload{Text: d.Text, Attachments: d.Attachments}).
		Timeout(5 * time.Second).
		Retry(2, time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	return resp.Throw()
}

func toWebhook(d WebhookData) error {
	if d.URL == "" {
		return fmt.Errorf("notification: webhook URL is empty")
	}

	resp, err := http.Post(d.URL).
		Headers(d.Headers).
		Body(d.Payload).
		Timeout(10 * time.Second).
		Retry(2, 2*time.Second).
		Send()
	if err != nil {
		return fmt.Errorf("notification: webhook send: %w", err)
	}
	return resp.Throw()
}
