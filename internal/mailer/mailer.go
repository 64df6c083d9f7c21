// Package mailer delivers transactional email over SMTP and renders the
// order-summary notification.
package mailer

import (
	"context"

	"github.com/go-faster/errors"
	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single HTML email. Delivery is best-effort: there is no
// retry and no queue, a transport outage surfaces as an error to the caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTP is a Mailer backed by an SMTP server via gomail.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTP creates an SMTP mailer. From is used as the envelope and header
// sender.
func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send dials the SMTP server and delivers one message. gomail has no
// context support, so cancellation is only honored before dialing.
func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}
