package mocks

import (
	"context"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type MockEmailVerificationUC struct {
	ShouldFailRequest bool
	ShouldFailConfirm bool
	ShouldFailResend  bool
	Err               error

	MockUser entity.User

	LastToken string
	LastEmail string
}

var _ usecasecontract.IEmailVerificationUC = (*MockEmailVerificationUC)(nil)

func NewMockEmailVerificationUC() *MockEmailVerificationUC {
	return &MockEmailVerificationUC{
		MockUser: entity.User{
			ID:                 "mock-user-id",
			Name:               "testuser",
			Email:              "test@example.com",
			Kind:               entity.AccountKindPublic,
			Role:               entity.UserRoleUser,
			EmailVerified:      true,
			AccountVerified:    true,
			VerificationStatus: entity.VerificationApproved,
		},
	}
}

func (m *MockEmailVerificationUC) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockEmailVerificationUC) RequestVerificationEmail(ctx context.Context, user *entity.User) error {
	if m.ShouldFailRequest {
		return m.fail(entity.ErrInternal)
	}
	return nil
}

func (m *MockEmailVerificationUC) ConfirmEmail(ctx context.Context, plainToken string) (*entity.User, error) {
	m.LastToken = plainToken
	if m.ShouldFailConfirm {
		return nil, m.fail(entity.ErrTokenInvalid)
	}
	return &m.MockUser, nil
}

func (m *MockEmailVerificationUC) ResendVerification(ctx context.Context, email string) error {
	m.LastEmail = email
	if m.ShouldFailResend {
		return m.fail(entity.ErrAlreadyVerified)
	}
	return nil
}
