package usecase

import (
	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
)

// JWTService defines the interface for JWT operations.
type JWTService interface {
	GenerateAccessToken(userID string, role entity.UserRole, kind entity.AccountKind) (string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
}

// Metrics records domain events. A nil Metrics is replaced by a no-op.
type Metrics interface {
	RegistrationCompleted(kind entity.AccountKind)
	ReviewCreated()
	ModerationApplied(action entity.ModerationAction)
	RecomputeFailed()
	NotificationFailed(kind contract.NotificationKind)
}

type nopMetrics struct{}

func (nopMetrics) RegistrationCompleted(entity.AccountKind)     {}
func (nopMetrics) ReviewCreated()                               {}
func (nopMetrics) ModerationApplied(entity.ModerationAction)    {}
func (nopMetrics) RecomputeFailed()                             {}
func (nopMetrics) NotificationFailed(contract.NotificationKind) {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}
