package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

type IEmailVerificationUC interface {
	// RequestVerificationEmail issues a fresh token for the user and dispatches it.
	RequestVerificationEmail(ctx context.Context, user *entity.User) error
	ConfirmEmail(ctx context.Context, plainToken string) (*entity.User, error)
	ResendVerification(ctx context.Context, email string) error
}
