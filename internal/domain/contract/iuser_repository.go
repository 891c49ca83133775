package contract

import (
	"context"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// UserFilterOptions narrows admin user listings.
type UserFilterOptions struct {
	Kind               *entity.AccountKind
	VerificationStatus *entity.VerificationStatus
	EmailVerified      *bool
	Pagination         Pagination
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	// GetUserByEmail retrieves a user by (lower-cased) email.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetUserByStudentID retrieves a student by institutional ID.
	GetUserByStudentID(ctx context.Context, studentID string) (*entity.User, error)
	// SetVerificationToken replaces the stored verification token hash and expiry.
	SetVerificationToken(ctx context.Context, id, tokenHash string, expires time.Time) error
	// ConsumeVerificationToken atomically finds the user holding an unexpired
	// token with this hash, clears the token and confirms the email as
	// entity.User.ConfirmEmail does. Returns ErrNotFound otherwise.
	ConsumeVerificationToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	// UpdateVerificationState persists the verification flags of the user.
	UpdateVerificationState(ctx context.Context, user *entity.User) error
	UpdateUserRole(ctx context.Context, id string, role entity.UserRole) error
	ListUsers(ctx context.Context, opts *UserFilterOptions) ([]*entity.User, int64, error)
	CountUsers(ctx context.Context, opts *UserFilterOptions) (int64, error)
}
