package external_services

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// MailNotifier renders a notification and hands it straight to a mail transport.
type MailNotifier struct {
	mail contract.IEmailService
}

func NewMailNotifier(mail contract.IEmailService) *MailNotifier {
	return &MailNotifier{mail: mail}
}

var _ contract.INotifier = (*MailNotifier)(nil)

func (n *MailNotifier) Send(ctx context.Context, to string, kind contract.NotificationKind, data map[string]any) error {
	subject, body, err := Render(kind, data)
	if err != nil {
		return err
	}
	return n.mail.SendEmail(ctx, to, subject, body)
}

// LogNotifier only logs what would have been sent. Used when SEND_EMAILS=false.
type LogNotifier struct {
	logger usecasecontract.IAppLogger
}

func NewLogNotifier(logger usecasecontract.IAppLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ contract.INotifier = (*LogNotifier)(nil)

func (n *LogNotifier) Send(_ context.Context, to string, kind contract.NotificationKind, data map[string]any) error {
	subject, body, err := Render(kind, data)
	if err != nil {
		return err
	}
	n.logger.Infof("email disabled; would send %s to %s: %s\n%s", kind, to, subject, body)
	return nil
}
