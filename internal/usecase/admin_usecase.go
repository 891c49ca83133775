package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// AdminUseCase implements the account side of the moderation surface.
type AdminUseCase struct {
	userRepo   contract.IUserRepository
	placeRepo  contract.IPlaceRepository
	reviewRepo contract.IReviewRepository
	notifier   contract.INotifier
	logger     usecasecontract.IAppLogger
	metrics    Metrics
	now        func() time.Time
}

func NewAdminUseCase(
	userRepo contract.IUserRepository,
	placeRepo contract.IPlaceRepository,
	reviewRepo contract.IReviewRepository,
	notifier contract.INotifier,
	logger usecasecontract.IAppLogger,
	metrics Metrics,
) *AdminUseCase {
	return &AdminUseCase{
		userRepo:   userRepo,
		placeRepo:  placeRepo,
		reviewRepo: reviewRepo,
		notifier:   notifier,
		logger:     logger,
		metrics:    metricsOrNop(metrics),
		now:        time.Now,
	}
}

var _ usecasecontract.IAdminUseCase = (*AdminUseCase)(nil)

// DecideVerification approves or rejects a student or business account.
// Targets of any other kind than the one the endpoint serves are reported as
// not found.
func (uc *AdminUseCase) DecideVerification(ctx context.Context, caller entity.Caller, kind entity.AccountKind, userID string, decision entity.VerificationStatus, reason string) (*entity.User, error) {
	if err := Authorize(caller, "", Authenticated, isAdmin); err != nil {
		return nil, err
	}
	if !kind.RequiresAdminApproval() {
		return nil, entity.Validationf("%s accounts are not verified by admins", kind)
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found", entity.ErrNotFound, kind)
		}
		uc.logger.Errorf("failed to load user %s: %v", userID, err)
		return nil, entity.ErrInternal
	}
	if user.Kind != kind {
		return nil, fmt.Errorf("%w: %s not found", entity.ErrNotFound, kind)
	}

	if err := user.Decide(decision, reason, caller.UserID, uc.now().UTC()); err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdateVerificationState(ctx, user); err != nil {
		uc.logger.Errorf("failed to persist verification decision for %s: %v", userID, err)
		return nil, entity.ErrInternal
	}

	data := map[string]any{
		"Name":     user.Name,
		"Decision": string(decision),
		"Reason":   user.RejectionReason,
	}
	if decision == entity.VerificationApproved {
		data["Reason"] = ""
	}
	if err := uc.notifier.Send(ctx, user.Email, contract.NotificationVerificationDecision, data); err != nil {
		uc.metrics.NotificationFailed(contract.NotificationVerificationDecision)
		uc.logger.Warnf("failed to notify %s about verification decision: %v", user.Email, err)
	}
	return user, nil
}

func (uc *AdminUseCase) ListPendingVerifications(ctx context.Context, kind entity.AccountKind, pagination contract.Pagination) ([]*entity.User, int64, error) {
	if !kind.RequiresAdminApproval() {
		return nil, 0, entity.Validationf("%s accounts are not verified by admins", kind)
	}
	status := entity.VerificationPending
	users, total, err := uc.userRepo.ListUsers(ctx, &contract.UserFilterOptions{
		Kind:               &kind,
		VerificationStatus: &status,
		Pagination:         pagination.Normalize(),
	})
	if err != nil {
		uc.logger.Errorf("failed to list pending %s accounts: %v", kind, err)
		return nil, 0, entity.ErrInternal
	}
	return users, total, nil
}

// SetUserRole changes a user's privilege role. Only super admins may do this,
// and they cannot demote themselves.
func (uc *AdminUseCase) SetUserRole(ctx context.Context, caller entity.Caller, userID string, role entity.UserRole) (*entity.User, error) {
	if err := Authorize(caller, "", Authenticated, HasRole(entity.UserRoleSuperAdmin)); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, entity.Validationf("unknown role %q", role)
	}
	if strings.TrimSpace(userID) == caller.UserID && role != entity.UserRoleSuperAdmin {
		return nil, fmt.Errorf("%w: super admins cannot demote themselves", entity.ErrForbidden)
	}

	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", entity.ErrNotFound)
		}
		uc.logger.Errorf("failed to load user %s: %v", userID, err)
		return nil, entity.ErrInternal
	}
	if err := uc.userRepo.UpdateUserRole(ctx, userID, role); err != nil {
		uc.logger.Errorf("failed to update role of %s: %v", userID, err)
		return nil, entity.ErrInternal
	}
	user.Role = role
	return user, nil
}

func (uc *AdminUseCase) GetDashboardStats(ctx context.Context) (*usecasecontract.DashboardStats, error) {
	stats := &usecasecontract.DashboardStats{UsersByKind: map[entity.AccountKind]int64{}}
	for _, kind := range []entity.AccountKind{entity.AccountKindStudent, entity.AccountKindPublic, entity.AccountKindBusiness, entity.AccountKindAdmin} {
		k := kind
		n, err := uc.userRepo.CountUsers(ctx, &contract.UserFilterOptions{Kind: &k})
		if err != nil {
			uc.logger.Errorf("failed to count %s users: %v", kind, err)
			return nil, entity.ErrInternal
		}
		stats.UsersByKind[kind] = n
	}

	pending, rejected := entity.VerificationPending, entity.VerificationRejected
	var err error
	if stats.PendingVerifications, err = uc.userRepo.CountUsers(ctx, &contract.UserFilterOptions{VerificationStatus: &pending}); err != nil {
		uc.logger.Errorf("failed to count pending users: %v", err)
		return nil, entity.ErrInternal
	}
	if stats.RejectedAccounts, err = uc.userRepo.CountUsers(ctx, &contract.UserFilterOptions{VerificationStatus: &rejected}); err != nil {
		uc.logger.Errorf("failed to count rejected users: %v", err)
		return nil, entity.ErrInternal
	}
	if stats.Places, err = uc.placeRepo.CountPlaces(ctx); err != nil {
		uc.logger.Errorf("failed to count places: %v", err)
		return nil, entity.ErrInternal
	}
	if stats.Reviews, err = uc.reviewRepo.CountReviews(ctx); err != nil {
		uc.logger.Errorf("failed to count reviews: %v", err)
		return nil, entity.ErrInternal
	}
	return stats, nil
}
