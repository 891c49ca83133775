package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// MockUserUsecase is a mock implementation of the UserUsecase interface
type MockUserUsecase struct {
	// Control mock behavior
	ShouldFailCreateUser       bool
	ShouldFailLogin            bool
	ShouldFailGetByID          bool
	ShouldFailAuthenticate     bool
	ShouldFailEnsureSuperAdmin bool
	// Err, when set, is returned instead of the default failure.
	Err error

	// Return values
	MockUser        entity.User
	MockAccessToken string

	// Recorded calls
	LastRegisterInput usecasecontract.RegisterInput
	LastAccessToken   string
}

// Ensure MockUserUsecase implements the correct interface for handler.NewUserHandler
var _ usecasecontract.IUserUseCase = (*MockUserUsecase)(nil)

func NewMockUserUsecase() *MockUserUsecase {
	return &MockUserUsecase{
		MockUser: entity.User{
			ID:                 "mock-user-id",
			Name:               "testuser",
			Email:              "test@example.com",
			Kind:               entity.AccountKindPublic,
			Role:               entity.UserRoleUser,
			EmailVerified:      true,
			AccountVerified:    true,
			VerificationStatus: entity.VerificationApproved,
			CreatedAt:          time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		MockAccessToken: "mock_access_token",
	}
}

func (m *MockUserUsecase) fail(def error) error {
	if m.Err != nil {
		return m.Err
	}
	return def
}

func (m *MockUserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	m.LastRegisterInput = in
	if m.ShouldFailCreateUser {
		return nil, m.fail(fmt.Errorf("%w: email already registered", entity.ErrDuplicateIdentity))
	}
	user := m.MockUser
	user.Email = in.Email
	user.Name = in.Name
	if in.Profile != nil {
		user.Kind = in.Profile.Kind()
	}
	user.EmailVerified = false
	user.AccountVerified = false
	user.VerificationStatus = entity.VerificationApproved
	if user.Kind.RequiresAdminApproval() {
		user.VerificationStatus = entity.VerificationPending
	}
	return &user, nil
}

func (m *MockUserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	if m.ShouldFailLogin {
		return nil, "", m.fail(entity.ErrInvalidCredentials)
	}
	return &m.MockUser, m.MockAccessToken, nil
}

func (m *MockUserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	m.LastAccessToken = accessToken
	if m.ShouldFailAuthenticate {
		return nil, m.fail(fmt.Errorf("%w: invalid access token", entity.ErrUnauthenticated))
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	if m.ShouldFailGetByID {
		return nil, m.fail(fmt.Errorf("user %w", entity.ErrNotFound))
	}
	return &m.MockUser, nil
}

func (m *MockUserUsecase) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if m.ShouldFailEnsureSuperAdmin {
		return m.fail(entity.ErrInternal)
	}
	return nil
}
