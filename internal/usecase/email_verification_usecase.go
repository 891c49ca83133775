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

const verificationTokenBytes = 32

type EmailVerificationUseCase struct {
	userRepository  contract.IUserRepository
	notifier        contract.INotifier
	hasher          contract.IHasher
	RandomGenerator contract.IRandomGenerator
	logger          usecasecontract.IAppLogger
	config          usecasecontract.IConfigProvider
	metrics         Metrics
	now             func() time.Time
}

func NewEmailVerificationUseCase(ur contract.IUserRepository, n contract.INotifier, h contract.IHasher, rg contract.IRandomGenerator, logger usecasecontract.IAppLogger, cfg usecasecontract.IConfigProvider, metrics Metrics) *EmailVerificationUseCase {
	return &EmailVerificationUseCase{
		userRepository:  ur,
		notifier:        n,
		hasher:          h,
		RandomGenerator: rg,
		logger:          logger,
		config:          cfg,
		metrics:         metricsOrNop(metrics),
		now:             time.Now,
	}
}

var _ usecasecontract.IEmailVerificationUC = (*EmailVerificationUseCase)(nil)

// RequestVerificationEmail replaces the user's verification token with a fresh
// one and dispatches the link. Only token persistence failures are returned.
func (eu *EmailVerificationUseCase) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	plainToken, err := eu.RandomGenerator.GenerateRandomToken(verificationTokenBytes)
	if err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	tokenHash := eu.hasher.HashString(plainToken)
	expires := eu.now().Add(eu.config.GetEmailVerificationTokenExpiry()).UTC()
	if err := eu.userRepository.SetVerificationToken(ctx, user.ID, tokenHash, expires); err != nil {
		return fmt.Errorf("failed to store verification token: %w", err)
	}
	user.SetVerificationToken(tokenHash, expires)

	link := fmt.Sprintf("%s/api/v1/auth/verify-email/%s", strings.TrimRight(eu.config.GetAppBaseURL(), "/"), plainToken)
	data := map[string]any{
		"Name":      user.Name,
		"Link":      link,
		"ExpiresAt": expires.Format(time.RFC1123),
	}
	if err := eu.notifier.Send(ctx, user.Email, contract.NotificationVerifyEmail, data); err != nil {
		eu.metrics.NotificationFailed(contract.NotificationVerifyEmail)
		eu.logger.Warnf("failed to send verification email to %s: %v", user.Email, err)
	}
	return nil
}

// ConfirmEmail consumes a verification token. Unknown, expired and already
// used tokens are all reported as ErrTokenInvalid.
func (eu *EmailVerificationUseCase) ConfirmEmail(ctx context.Context, plainToken string) (*entity.User, error) {
	if strings.TrimSpace(plainToken) == "" {
		return nil, entity.ErrTokenInvalid
	}
	now := eu.now().UTC()
	user, err := eu.userRepository.ConsumeVerificationToken(ctx, eu.hasher.HashString(plainToken), now)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.ErrTokenInvalid
		}
		eu.logger.Errorf("failed to consume verification token: %v", err)
		return nil, entity.ErrInternal
	}

	data := map[string]any{
		"Name":               user.Name,
		"AccountKind":        string(user.Kind),
		"VerificationStatus": string(user.VerificationStatus),
	}
	if err := eu.notifier.Send(ctx, user.Email, contract.NotificationWelcome, data); err != nil {
		eu.metrics.NotificationFailed(contract.NotificationWelcome)
		eu.logger.Warnf("failed to send welcome email to %s: %v", user.Email, err)
	}
	return user, nil
}

// ResendVerification issues a new token for an unverified account.
func (eu *EmailVerificationUseCase) ResendVerification(ctx context.Context, email string) error {
	user, err := eu.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("%w: no account with this email", entity.ErrNotFound)
		}
		eu.logger.Errorf("failed to fetch user for resend: %v", err)
		return entity.ErrInternal
	}
	if user.EmailVerified {
		return entity.ErrAlreadyVerified
	}
	if err := eu.RequestVerificationEmail(ctx, user); err != nil {
		eu.logger.Errorf("failed to reissue verification token for %s: %v", user.ID, err)
		return entity.ErrInternal
	}
	return nil
}
