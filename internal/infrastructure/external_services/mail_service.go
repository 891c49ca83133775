package external_services

import (
	"context"
	"fmt"
	"time"

	mail "gopkg.in/mail.v2"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
)

const maxSendRetries = 3

// EmailService delivers plain-text mail over SMTP.
type EmailService struct {
	dialer  *mail.Dialer
	from    string
	backoff time.Duration
}

func NewEmailService(host string, port int, username, appPassword, from string) *EmailService {
	d := mail.NewDialer(host, port, username, appPassword)
	d.Timeout = 10 * time.Second
	return &EmailService{
		dialer:  d,
		from:    from,
		backoff: time.Second,
	}
}

var _ contract.IEmailService = (*EmailService)(nil)

func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", es.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	var err error
	for attempt := 1; attempt <= maxSendRetries; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = es.dialer.DialAndSend(m); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(es.backoff * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("failed to send email to %s after %d attempts: %w", to, maxSendRetries, err)
}
