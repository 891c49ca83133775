package usecasecontract

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// DashboardStats is the admin overview.
type DashboardStats struct {
	UsersByKind          map[entity.AccountKind]int64 `json:"users_by_kind"`
	PendingVerifications int64                        `json:"pending_verifications"`
	RejectedAccounts     int64                        `json:"rejected_accounts"`
	Places               int64                        `json:"places"`
	Reviews              int64                        `json:"reviews"`
}

type IAdminUseCase interface {
	// DecideVerification applies an admin decision to an account of the given kind.
	DecideVerification(ctx context.Context, caller entity.Caller, kind entity.AccountKind, userID string, decision entity.VerificationStatus, reason string) (*entity.User, error)
	ListPendingVerifications(ctx context.Context, kind entity.AccountKind, pagination contract.Pagination) ([]*entity.User, int64, error)
	SetUserRole(ctx context.Context, caller entity.Caller, userID string, role entity.UserRole) (*entity.User, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}
