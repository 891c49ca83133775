package mocks

import (
	"context"
	"fmt"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type MockAdminUsecase struct {
	ShouldFailDecide  bool
	ShouldFailList    bool
	ShouldFailSetRole bool
	ShouldFailStats   bool
	Err               error

	MockUser  entity.User
	MockStats usecasecontract.DashboardStats

	LastCaller   entity.Caller
	LastKind     entity.AccountKind
	LastDecision entity.VerificationStatus
	LastReason   string
	LastRole     entity.UserRole
}

var _ usecasecontract.IAdminUseCase = (*MockAdminUsecase)(nil)

func NewMockAdminUsecase() *MockAdminUsecase {
	return &MockAdminUsecase{
		MockUser: entity.User{
			ID:                 "student-id",
			Name:               "Asha",
			Email:              "asha@university.edu",
			Kind:               entity.AccountKindStudent,
			Role:               entity.UserRoleUser,
			EmailVerified:      true,
			VerificationStatus: entity.VerificationPending,
			Student:            &entity.StudentProfile{StudentID: "CS2021001", Year: 3, Branch: "CSE"},
		},
		MockStats: usecasecontract.DashboardStats{
			UsersByKind:          map[entity.AccountKind]int64{entity.AccountKindStudent: 2, entity.AccountKindPublic: 5},
			PendingVerifications: 1,
			Places:               3,
			Reviews:              9,
		},
	}
}

func (m *MockAdminUsecase) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockAdminUsecase) DecideVerification(ctx context.Context, caller entity.Caller, kind entity.AccountKind, userID string, decision entity.VerificationStatus, reason string) (*entity.User, error) {
	m.LastCaller = caller
	m.LastKind = kind
	m.LastDecision = decision
	m.LastReason = reason
	if m.ShouldFailDecide {
		return nil, m.fail(fmt.Errorf("%s account %w", kind, entity.ErrNotFound))
	}
	user := m.MockUser
	user.VerificationStatus = decision
	user.AccountVerified = decision == entity.VerificationApproved
	if decision == entity.VerificationRejected {
		user.RejectionReason = reason
	}
	user.VerifiedBy = caller.UserID
	return &user, nil
}

func (m *MockAdminUsecase) ListPendingVerifications(ctx context.Context, kind entity.AccountKind, pagination contract.Pagination) ([]*entity.User, int64, error) {
	m.LastKind = kind
	if m.ShouldFailList {
		return nil, 0, m.fail(entity.ErrInternal)
	}
	return []*entity.User{&m.MockUser}, 1, nil
}

func (m *MockAdminUsecase) SetUserRole(ctx context.Context, caller entity.Caller, userID string, role entity.UserRole) (*entity.User, error) {
	m.LastCaller = caller
	m.LastRole = role
	if m.ShouldFailSetRole {
		return nil, m.fail(entity.ErrForbidden)
	}
	user := m.MockUser
	user.Role = role
	return &user, nil
}

func (m *MockAdminUsecase) GetDashboardStats(ctx context.Context) (*usecasecontract.DashboardStats, error) {
	if m.ShouldFailStats {
		return nil, m.fail(entity.ErrInternal)
	}
	stats := m.MockStats
	return &stats, nil
}
