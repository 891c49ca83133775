package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// RegisterInput carries a registration. Profile is the kind-specific payload
// and determines the account kind.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    string
	Profile  entity.KindProfile
}

// IUserUseCase defines the interface for user-related operations.
type IUserUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	Authenticate(ctx context.Context, accessToken string) (*entity.User, error)
	GetUserByID(ctx context.Context, userID string) (*entity.User, error)
	EnsureSuperAdmin(ctx context.Context, email, password string) error
}
