// Package mail sends transactional email over SMTP: order confirmations,
// prescription-ready notices, and password resets.
//
//	mail.To("customer@example.com").
//	    Subject("Order ORD-4F7K2M9QX confirmed").
//	    Body("<h1>Thank you for your order</h1>").
//	    Send()
package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/shashiranjanraj/aushadhi/config"
)

// Account holds the SMTP credentials and the sender identity that appears
// in the From header.
type Account struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func accountFromEnv() Account {
	return Account{
		Host:     config.Get("MAIL_HOST", "smtp.mailtrap.io"),
		Port:     config.Get("MAIL_PORT", "587"),
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
		From:     config.Get("MAIL_FROM", "orders@aushadhi.lk"),
		FromName: config.Get("MAIL_FROM_NAME", "Aushadhi Pharmacy"),
	}
}

// Envelope accumulates recipients, subject and body before delivery.
type Envelope struct {
	rcpt    []string
	copies  []string
	hidden  []string
	subject string
	body    string
	html    bool
	account Account
}

// To starts an envelope addressed to the given recipients. The body is
// treated as HTML unless Text is called.
func To(addresses ...string) *Envelope {
	return &Envelope{rcpt: addresses, html: true, account: accountFromEnv()}
}

// CC adds carbon-copy recipients.
func (e *Envelope) CC(addresses ...string) *Envelope {
	e.copies = append(e.copies, addresses...)
	return e
}

// BCC adds blind-copy recipients. They receive the mail but never appear
// in its headers.
func (e *Envelope) BCC(addresses ...string) *Envelope {
	e.hidden = append(e.hidden, addresses...)
	return e
}

// Subject sets the subject line.
func (e *Envelope) Subject(s string) *Envelope {
	e.subject = s
	return e
}

// Body sets an HTML body.
func (e *Envelope) Body(html string) *Envelope {
	e.body = html
	e.html = true
	return e
}

// Text sets a plain-text body.
func (e *Envelope) Text(text string) *Envelope {
	e.body = text
	e.html = false
	return e
}

// Template renders an html/template file with data and uses the result as
// the body. Render failures leave the error in an HTML comment so the
// broken mail is visible in a mailbox rather than silently empty.
func (e *Envelope) Template(path string, data interface{}) *Envelope {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		e.body = fmt.Sprintf("<!-- template error: %v -->", err)
		return e
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		e.body = fmt.Sprintf("<!-- render error: %v -->", err)
		return e
	}
	e.body = buf.String()
	e.html = true
	return e
}

// UseAccount overrides the SMTP account for this envelope only.
func (e *Envelope) UseAccount(a Account) *Envelope {
	e.account = a
	return e
}

// Send delivers the envelope. Port 465 gets an implicit TLS connection;
// anything else goes through net/smtp which negotiates STARTTLS when the
// server offers it.
func (e *Envelope) Send() error {
	a := e.account
	if a.Username == "" {
		return fmt.Errorf("mail: MAIL_USERNAME not configured")
	}

	sender := fmt.Sprintf("%s <%s>", a.FromName, a.From)
	everyone := append(append(append([]string{}, e.rcpt...), e.copies...), e.hidden...)
	raw := e.render(sender)

	addr := a.Host + ":" + a.Port
	auth := smtp.PlainAuth("", a.Username, a.Password, a.Host)

	if a.Port == "465" {
		return e.deliverTLS(addr, a.Host, auth, a.From, everyone, raw)
	}
	return smtp.SendMail(addr, auth, a.From, everyone, raw)
}

func (e *Envelope) deliverTLS(addr, host string, auth smtp.Auth, from string, rcpt []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("mail: TLS dial: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, r := range rcpt {
		if err := client.Rcpt(r); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(raw)
	return err
}

func (e *Envelope) render(sender string) []byte {
	ctype := "text/plain"
	if e.html {
		ctype = "text/html"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", sender)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.rcpt, ", "))
	if len(e.copies) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(e.copies, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", e.subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s; charset=\"UTF-8\"\r\n", ctype)
	b.WriteString("\r\n")
	b.WriteString(e.body)
	return []byte(b.String())
}
