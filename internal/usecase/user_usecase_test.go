package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/contract"
	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

const testPassword = "Password1!"

func studentInput(email, studentID string) usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Email:    email,
		Password: testPassword,
		Name:     "Asha",
		Profile:  entity.StudentProfile{StudentID: studentID, Year: 2, Branch: "CSE"},
	}
}

func publicInput(email string) usecasecontract.RegisterInput {
	return usecasecontract.RegisterInput{
		Email:    email,
		Password: testPassword,
		Name:     "Ravi",
		Profile:  entity.NoProfile{AccountKind: entity.AccountKindPublic},
	}
}

func TestRegister_InitialState(t *testing.T) {
	tests := []struct {
		name       string
		input      usecasecontract.RegisterInput
		wantKind   entity.AccountKind
		wantStatus entity.VerificationStatus
	}{
		{"student", studentInput("asha@university.edu", "S-1"), entity.AccountKindStudent, entity.VerificationPending},
		{"business", usecasecontract.RegisterInput{Email: "shop@mail.com", Password: testPassword, Name: "Shop", Profile: entity.BusinessProfile{BusinessName: "Chai Point"}}, entity.AccountKindBusiness, entity.VerificationPending},
		{"public", publicInput("ravi@mail.com"), entity.AccountKindPublic, entity.VerificationApproved},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv()
			user, err := e.user.Register(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, user.Kind)
			assert.Equal(t, entity.UserRoleUser, user.Role)
			assert.False(t, user.EmailVerified)
			assert.False(t, user.AccountVerified)
			assert.Equal(t, tt.wantStatus, user.VerificationStatus)

			stored, err := e.users.GetUserByID(context.Background(), user.ID)
			require.NoError(t, err)
			assert.Equal(t, "sha:token-1", stored.VerificationToken)
			require.NotNil(t, stored.VerificationTokenExpires)
			assert.Equal(t, e.clock.Add(24*time.Hour), *stored.VerificationTokenExpires)

			sent, ok := e.notifier.last(contract.NotificationVerifyEmail)
			require.True(t, ok)
			assert.Equal(t, user.Email, sent.To)
			assert.Equal(t, "http://localhost:8080/api/v1/auth/verify-email/token-1", sent.Data["Link"])
		})
	}
}

func TestRegister_StudentNotifiesAdmin(t *testing.T) {
	e := newEnv()
	_, err := e.user.Register(context.Background(), studentInput("asha@university.edu", "S-1"))
	require.NoError(t, err)

	sent, ok := e.notifier.last(contract.NotificationAdminNewStudent)
	require.True(t, ok)
	assert.Equal(t, "admin@university.edu", sent.To)
	assert.Equal(t, "S-1", sent.Data["StudentID"])

	e2 := newEnv()
	_, err = e2.user.Register(context.Background(), publicInput("ravi@mail.com"))
	require.NoError(t, err)
	_, ok = e2.notifier.last(contract.NotificationAdminNewStudent)
	assert.False(t, ok)
}

func TestRegister_Failures(t *testing.T) {
	e := newEnv()
	_, err := e.user.Register(context.Background(), studentInput("asha@university.edu", "S-1"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   usecasecontract.RegisterInput
		wantErr error
	}{
		{"student with outside email", studentInput("asha@gmail.com", "S-2"), entity.ErrInvalidIdentity},
		{"duplicate email", publicInput("ASHA@university.edu"), entity.ErrDuplicateIdentity},
		{"duplicate student id", studentInput("other@university.edu", "S-1"), entity.ErrDuplicateIdentity},
		{"missing student fields", usecasecontract.RegisterInput{Email: "x@university.edu", Password: testPassword, Profile: entity.StudentProfile{StudentID: "S-9"}}, entity.ErrValidationFailed},
		{"business without name", usecasecontract.RegisterInput{Email: "b@mail.com", Password: testPassword, Profile: entity.BusinessProfile{}}, entity.ErrValidationFailed},
		{"student kind without payload", usecasecontract.RegisterInput{Email: "y@university.edu", Password: testPassword, Profile: entity.NoProfile{AccountKind: entity.AccountKindStudent}}, entity.ErrValidationFailed},
		{"weak password", usecasecontract.RegisterInput{Email: "w@mail.com", Password: "short", Profile: entity.NoProfile{AccountKind: entity.AccountKindPublic}}, entity.ErrValidationFailed},
		{"bad email", publicInput("not-an-email"), entity.ErrValidationFailed},
		{"no profile", usecasecontract.RegisterInput{Email: "z@mail.com", Password: testPassword}, entity.ErrValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.user.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, e.users.users, 1)
}

func TestRegister_SideEffectFailuresDoNotFailRegistration(t *testing.T) {
	e := newEnv()
	e.notifier.ShouldFail = true
	user, err := e.user.Register(context.Background(), studentInput("asha@university.edu", "S-1"))
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, 2, e.metrics.notificationFail)

	e2 := newEnv()
	e2.users.ShouldFailSetTok = true
	user, err = e2.user.Register(context.Background(), publicInput("ravi@mail.com"))
	require.NoError(t, err)
	_, err = e2.users.GetUserByID(context.Background(), user.ID)
	assert.NoError(t, err)
}

func TestRegister_StorageFailureIsInternal(t *testing.T) {
	e := newEnv()
	e.users.ShouldFailCreate = true
	_, err := e.user.Register(context.Background(), publicInput("ravi@mail.com"))
	assert.ErrorIs(t, err, entity.ErrInternal)
	_, sent := e.notifier.last(contract.NotificationVerifyEmail)
	assert.False(t, sent)
}

func TestLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	_, err := e.user.Register(ctx, publicInput("ravi@mail.com"))
	require.NoError(t, err)

	_, _, err = e.user.Login(ctx, "ravi@mail.com", testPassword)
	assert.ErrorIs(t, err, entity.ErrEmailNotVerified)

	_, _, err = e.user.Login(ctx, "ravi@mail.com", "WrongPass1!")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, _, err = e.user.Login(ctx, "nobody@mail.com", testPassword)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	_, err = e.email.ConfirmEmail(ctx, "token-1")
	require.NoError(t, err)

	user, token, err := e.user.Login(ctx, " Ravi@Mail.com ", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	authed, err := e.user.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	_, err = e.user.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, entity.ErrUnauthenticated)
}

func TestStudentScenario_RegisterConfirmApproveLogin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	user, err := e.user.Register(ctx, studentInput("asha@university.edu", "S-1"))
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, user.VerificationStatus)

	_, _, err = e.user.Login(ctx, "asha@university.edu", testPassword)
	assert.ErrorIs(t, err, entity.ErrEmailNotVerified)

	confirmed, err := e.email.ConfirmEmail(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, confirmed.EmailVerified)
	assert.False(t, confirmed.AccountVerified)
	assert.Equal(t, entity.VerificationPending, confirmed.VerificationStatus)

	// Login only gates on email verification; the pending status is reported.
	pending, _, err := e.user.Login(ctx, "asha@university.edu", testPassword)
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationPending, pending.VerificationStatus)

	approved, err := e.admin.DecideVerification(ctx, adminCaller, entity.AccountKindStudent, user.ID, entity.VerificationApproved, "")
	require.NoError(t, err)
	assert.True(t, approved.AccountVerified)
	assert.Equal(t, entity.VerificationApproved, approved.VerificationStatus)

	loggedIn, token, err := e.user.Login(ctx, "asha@university.edu", testPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, loggedIn.AccountVerified)
	assert.Equal(t, entity.VerificationApproved, loggedIn.VerificationStatus)
}

func TestEnsureSuperAdmin(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	require.NoError(t, e.user.EnsureSuperAdmin(ctx, "root@campus.io", "Sup3r!Secret"))
	require.NoError(t, e.user.EnsureSuperAdmin(ctx, "root@campus.io", "Sup3r!Secret"))
	assert.Len(t, e.users.users, 1)

	admin, _, err := e.user.Login(ctx, "root@campus.io", "Sup3r!Secret")
	require.NoError(t, err)
	assert.Equal(t, entity.UserRoleSuperAdmin, admin.Role)
	assert.Equal(t, entity.AccountKindAdmin, admin.Kind)
	assert.True(t, admin.AccountVerified)

	// An existing account under the configured address is promoted.
	e2 := newEnv()
	u := e2.seedUser("u1", entity.AccountKindPublic)
	require.NoError(t, e2.user.EnsureSuperAdmin(ctx, u.Email, "whatever"))
	assert.Equal(t, entity.UserRoleSuperAdmin, e2.users.users["u1"].Role)

	// Nothing configured means nothing to do.
	assert.NoError(t, newEnv().user.EnsureSuperAdmin(ctx, "", ""))
}
