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

// UserUsecase implements the UserUseCase interface.
type UserUsecase struct {
	userRepo      contract.IUserRepository
	emailUsecase  usecasecontract.IEmailVerificationUC
	hasher        contract.IHasher
	jwtService    JWTService
	notifier      contract.INotifier
	logger        usecasecontract.IAppLogger
	config        usecasecontract.IConfigProvider
	validator     usecasecontract.IValidator
	uuidGenerator contract.IUUIDGenerator
	metrics       Metrics
	now           func() time.Time
}

// NewUserUsecase creates a new UserUsecase instance.
func NewUserUsecase(
	userRepo contract.IUserRepository,
	emailUC usecasecontract.IEmailVerificationUC,
	hasher contract.IHasher,
	jwtService JWTService,
	notifier contract.INotifier,
	logger usecasecontract.IAppLogger,
	cfg usecasecontract.IConfigProvider,
	validator usecasecontract.IValidator,
	uuidGenerator contract.IUUIDGenerator,
	metrics Metrics,
) *UserUsecase {
	return &UserUsecase{
		userRepo:      userRepo,
		emailUsecase:  emailUC,
		hasher:        hasher,
		jwtService:    jwtService,
		notifier:      notifier,
		logger:        logger,
		config:        cfg,
		validator:     validator,
		uuidGenerator: uuidGenerator,
		metrics:       metricsOrNop(metrics),
		now:           time.Now,
	}
}

// check if UserUsecase implements the IUserUseCase
var _ usecasecontract.IUserUseCase = (*UserUsecase)(nil)

// Register creates an account and starts email verification. The account is
// committed once the record is persisted; token and notification failures
// after that point are only logged.
func (uc *UserUsecase) Register(ctx context.Context, in usecasecontract.RegisterInput) (*entity.User, error) {
	if in.Profile == nil {
		return nil, entity.Validationf("account kind is required")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := uc.validator.ValidateEmail(email); err != nil {
		return nil, entity.Validationf("invalid email format")
	}
	kind := in.Profile.Kind()
	if kind == entity.AccountKindStudent {
		domain := uc.config.GetStudentEmailDomain()
		if err := uc.validator.ValidateInstitutionalEmail(email, domain); err != nil {
			return nil, fmt.Errorf("%w: student accounts must use an @%s email address", entity.ErrInvalidIdentity, domain)
		}
	}
	if err := uc.validator.ValidatePasswordStrength(in.Password); err != nil {
		return nil, entity.Validationf("weak password: %v", err)
	}
	if err := in.Profile.Validate(); err != nil {
		return nil, err
	}

	// Check if user with same email or institutional id already exists
	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Errorf("failed to check for existing user by email: %v", err)
		return nil, entity.ErrInternal
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user with email %s already exists", entity.ErrDuplicateIdentity, email)
	}
	if sp, ok := studentProfile(in.Profile); ok {
		existing, err = uc.userRepo.GetUserByStudentID(ctx, sp.StudentID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Errorf("failed to check for existing student id: %v", err)
			return nil, entity.ErrInternal
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: student id %s already registered", entity.ErrDuplicateIdentity, sp.StudentID)
		}
	}

	hashedPassword, err := uc.hasher.HashPassword(in.Password)
	if err != nil {
		uc.logger.Errorf("failed to hash password: %v", err)
		return nil, entity.ErrInternal
	}

	user, err := entity.NewUser(uc.uuidGenerator.NewUUID(), email, hashedPassword, in.Name, in.Phone, in.Profile, uc.now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, entity.ErrDuplicateIdentity) {
			return nil, err
		}
		uc.logger.Errorf("failed to create user: %v", err)
		return nil, entity.ErrInternal
	}
	uc.metrics.RegistrationCompleted(user.Kind)

	if err := uc.emailUsecase.RequestVerificationEmail(ctx, user); err != nil {
		uc.logger.Errorf("registration of %s committed but verification token was not issued: %v", user.ID, err)
	}
	if user.Kind == entity.AccountKindStudent {
		uc.notifyAdminOfStudent(ctx, user)
	}

	return user, nil
}

func (uc *UserUsecase) notifyAdminOfStudent(ctx context.Context, user *entity.User) {
	adminEmail := uc.config.GetAdminNotificationEmail()
	if adminEmail == "" {
		return
	}
	data := map[string]any{
		"Name":  user.Name,
		"Email": user.Email,
	}
	if user.Student != nil {
		data["StudentID"] = user.Student.StudentID
		data["Year"] = user.Student.Year
		data["Branch"] = user.Student.Branch
	}
	if err := uc.notifier.Send(ctx, adminEmail, contract.NotificationAdminNewStudent, data); err != nil {
		uc.metrics.NotificationFailed(contract.NotificationAdminNewStudent)
		uc.logger.Warnf("failed to notify admin about student %s: %v", user.ID, err)
	}
}

func studentProfile(p entity.KindProfile) (*entity.StudentProfile, bool) {
	switch sp := p.(type) {
	case entity.StudentProfile:
		return &sp, true
	case *entity.StudentProfile:
		return sp, sp != nil
	}
	return nil, false
}

// Login checks credentials and the email verification gate, then issues an
// access token. Verification status is reported but never blocks login.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		uc.logger.Errorf("failed to retrieve user for login: %v", err)
		return nil, "", entity.ErrInternal
	}

	if err := uc.hasher.ComparePasswordHash(password, user.PasswordHash); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, "", fmt.Errorf("%w: please verify your email before logging in", entity.ErrEmailNotVerified)
	}

	accessToken, err := uc.jwtService.GenerateAccessToken(user.ID, user.Role, user.Kind)
	if err != nil {
		uc.logger.Errorf("failed to generate access token: %v", err)
		return nil, "", entity.ErrInternal
	}

	return user, accessToken, nil
}

// Authenticate handles user authentication using access tokens.
func (uc *UserUsecase) Authenticate(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := uc.jwtService.ParseAccessToken(accessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid access token", entity.ErrUnauthenticated)
	}

	user, err := uc.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("%w: user no longer exists", entity.ErrUnauthenticated)
		}
		uc.logger.Errorf("failed to retrieve user during authentication: %v", err)
		return nil, entity.ErrInternal
	}

	return user, nil
}

func (uc *UserUsecase) GetUserByID(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
		uc.logger.Errorf("failed to retrieve user by ID: %v", err)
		return nil, entity.ErrInternal
	}

	return user, nil
}

// EnsureSuperAdmin creates the bootstrap super admin if it does not exist yet,
// or restores its role if it does. Public registration never creates admins.
func (uc *UserUsecase) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	existing, err := uc.userRepo.GetUserByEmail(ctx, email)
	if err == nil {
		if existing.Role == entity.UserRoleSuperAdmin {
			return nil
		}
		return uc.userRepo.UpdateUserRole(ctx, existing.ID, entity.UserRoleSuperAdmin)
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("failed to look up super admin: %w", err)
	}

	hashedPassword, err := uc.hasher.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash super admin password: %w", err)
	}
	now := uc.now().UTC()
	admin, err := entity.NewUser(uc.uuidGenerator.NewUUID(), email, hashedPassword, "Super Admin", "", entity.NoProfile{AccountKind: entity.AccountKindAdmin}, now)
	if err != nil {
		return err
	}
	admin.Role = entity.UserRoleSuperAdmin
	admin.ConfirmEmail(now)
	if err := uc.userRepo.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create super admin: %w", err)
	}
	uc.logger.Infof("super admin %s created", email)
	return nil
}
