package entity

import (
	"strings"
	"time"
)

// AccountKind is the registration category of a user. It is fixed at creation.
type AccountKind string

const (
	AccountKindStudent  AccountKind = "student"
	AccountKindPublic   AccountKind = "public"
	AccountKindBusiness AccountKind = "business"
	AccountKindAdmin    AccountKind = "admin"
)

// Valid reports whether k is one of the known account kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountKindStudent, AccountKindPublic, AccountKindBusiness, AccountKindAdmin:
		return true
	}
	return false
}

// RequiresAdminApproval reports whether accounts of this kind stay pending
// after email confirmation until an admin decides.
func (k AccountKind) RequiresAdminApproval() bool {
	return k == AccountKindStudent || k == AccountKindBusiness
}

// UserRole represents the privilege role of a user in the system
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) Valid() bool {
	return r == UserRoleUser || r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// IsAdmin reports whether the role grants access to the moderation surface.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// DefaultRole derives the privilege role from the account kind. It runs once,
// when the user record is built.
func DefaultRole(kind AccountKind) UserRole {
	if kind == AccountKindAdmin {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// VerificationStatus is the admin-approval track of an account.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// StudentProfile is the kind payload of student accounts.
type StudentProfile struct {
	StudentID string `bson:"student_id" json:"student_id"`
	Year      int    `bson:"year" json:"year"`
	Branch    string `bson:"branch" json:"branch"`
}

// BusinessProfile is the kind payload of business accounts.
type BusinessProfile struct {
	BusinessName  string `bson:"business_name" json:"business_name"`
	BusinessType  string `bson:"business_type,omitempty" json:"business_type,omitempty"`
	LicenseNumber string `bson:"license_number,omitempty" json:"license_number,omitempty"`
	Address       string `bson:"address,omitempty" json:"address,omitempty"`
}

// KindProfile is the kind-specific part of a registration. Exactly one
// implementation matches each account kind.
type KindProfile interface {
	Kind() AccountKind
	Validate() error
}

// NoProfile is the payload for kinds without extra fields.
type NoProfile struct {
	AccountKind AccountKind
}

func (p NoProfile) Kind() AccountKind { return p.AccountKind }

func (p NoProfile) Validate() error {
	if p.AccountKind.RequiresAdminApproval() {
		return Validationf("%s accounts require profile details", p.AccountKind)
	}
	return nil
}

func (p StudentProfile) Kind() AccountKind { return AccountKindStudent }

func (p StudentProfile) Validate() error {
	if strings.TrimSpace(p.StudentID) == "" {
		return Validationf("student_id is required for student accounts")
	}
	if p.Year < 1 || p.Year > 6 {
		return Validationf("year must be between 1 and 6")
	}
	if strings.TrimSpace(p.Branch) == "" {
		return Validationf("branch is required for student accounts")
	}
	return nil
}

func (p BusinessProfile) Kind() AccountKind { return AccountKindBusiness }

func (p BusinessProfile) Validate() error {
	if strings.TrimSpace(p.BusinessName) == "" {
		return Validationf("business_name is required for business accounts")
	}
	return nil
}

// User represents a registered user in the system
type User struct {
	ID                       string             `bson:"_id,omitempty" json:"id"`
	Email                    string             `bson:"email" json:"email"`
	PasswordHash             string             `bson:"password_hash" json:"-"`
	Name                     string             `bson:"name" json:"name"`
	Phone                    string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Kind                     AccountKind        `bson:"account_kind" json:"account_kind"`
	Role                     UserRole           `bson:"role" json:"role"`
	EmailVerified            bool               `bson:"email_verified" json:"email_verified"`
	AccountVerified          bool               `bson:"account_verified" json:"account_verified"`
	VerificationStatus       VerificationStatus `bson:"verification_status" json:"verification_status"`
	RejectionReason          string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	VerifiedBy               string             `bson:"verified_by,omitempty" json:"verified_by,omitempty"`
	VerifiedAt               *time.Time         `bson:"verified_at,omitempty" json:"verified_at,omitempty"`
	VerificationToken        string             `bson:"verification_token,omitempty" json:"-"`
	VerificationTokenExpires *time.Time         `bson:"verification_token_expires,omitempty" json:"-"`
	Student                  *StudentProfile    `bson:"student,omitempty" json:"student,omitempty"`
	Business                 *BusinessProfile   `bson:"business,omitempty" json:"business,omitempty"`
	CreatedAt                time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt                time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewUser builds a user record for a fresh registration. Role and initial
// verification status are derived from the profile kind here and nowhere else.
func NewUser(id, email, passwordHash, name, phone string, profile KindProfile, now time.Time) (*User, error) {
	if profile == nil {
		return nil, Validationf("account kind is required")
	}
	kind := profile.Kind()
	if !kind.Valid() {
		return nil, Validationf("unknown account kind %q", kind)
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	status := VerificationApproved
	if kind.RequiresAdminApproval() {
		status = VerificationPending
	}
	u := &User{
		ID:                 id,
		Email:              strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:       passwordHash,
		Name:               strings.TrimSpace(name),
		Phone:              phone,
		Kind:               kind,
		Role:               DefaultRole(kind),
		EmailVerified:      false,
		AccountVerified:    false,
		VerificationStatus: status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	switch p := profile.(type) {
	case StudentProfile:
		u.Student = &p
	case *StudentProfile:
		u.Student = p
	case BusinessProfile:
		u.Business = &p
	case *BusinessProfile:
		u.Business = p
	}
	return u, nil
}

// SetVerificationToken stores the hash of a freshly issued token, replacing any prior one.
func (u *User) SetVerificationToken(tokenHash string, expires time.Time) {
	u.VerificationToken = tokenHash
	u.VerificationTokenExpires = &expires
}

// ConfirmEmail applies a successful email confirmation. The token is cleared so
// it cannot be presented again. Kinds without an admin step are approved here.
func (u *User) ConfirmEmail(now time.Time) {
	u.EmailVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExpires = nil
	if !u.Kind.RequiresAdminApproval() {
		u.VerificationStatus = VerificationApproved
		u.AccountVerified = true
	}
	u.UpdatedAt = now
}

// Decide records an admin verification decision. A rejection reason, when
// given, overwrites the previous one.
func (u *User) Decide(decision VerificationStatus, reason, adminID string, now time.Time) error {
	if decision != VerificationApproved && decision != VerificationRejected {
		return Validationf("decision must be approved or rejected")
	}
	u.VerificationStatus = decision
	u.AccountVerified = decision == VerificationApproved
	if decision == VerificationRejected && strings.TrimSpace(reason) != "" {
		u.RejectionReason = strings.TrimSpace(reason)
	}
	u.VerifiedBy = adminID
	u.VerifiedAt = &now
	u.UpdatedAt = now
	return nil
}
