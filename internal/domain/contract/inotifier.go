package contract

import "context"

// NotificationKind selects the template of an outbound notification.
type NotificationKind string

const (
	NotificationVerifyEmail          NotificationKind = "verify_email"
	NotificationWelcome              NotificationKind = "welcome"
	NotificationAdminNewStudent      NotificationKind = "admin_new_student"
	NotificationVerificationDecision NotificationKind = "verification_decision"
)

// INotifier dispatches templated notifications. Callers log failures and
// carry on.
type INotifier interface {
	Send(ctx context.Context, to string, kind NotificationKind, data map[string]any) error
}
