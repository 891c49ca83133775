package dto

import (
	"strings"

	"github.com/mikiasgoitom/CampusGuide/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

type StudentDetails struct {
	StudentID string `json:"student_id" binding:"max=50"`
	Year      int    `json:"year" binding:"omitempty,min=1,max=6"`
	Branch    string `json:"branch" binding:"max=100"`
}

type BusinessDetails struct {
	BusinessName  string `json:"business_name" binding:"max=150"`
	BusinessType  string `json:"business_type" binding:"max=100"`
	LicenseNumber string `json:"license_number" binding:"max=100"`
	Address       string `json:"address" binding:"max=300"`
}

// RegisterRequest is the body of POST /auth/register. Exactly the details
// block matching account_kind may be present.
type RegisterRequest struct {
	AccountKind string           `json:"account_kind" binding:"required,oneof=student public business"`
	Email       string           `json:"email" binding:"required,email"`
	Password    string           `json:"password" binding:"required,min=8,containsuppercase,containslowercase,containsdigit,containssymbol"`
	Name        string           `json:"name" binding:"required,max=100"`
	Phone       string           `json:"phone" binding:"omitempty,max=20"`
	Student     *StudentDetails  `json:"student"`
	Business    *BusinessDetails `json:"business"`
}

// ToInput maps the request to the registration input, rejecting a details
// block that does not belong to the account kind.
func (r RegisterRequest) ToInput() (usecasecontract.RegisterInput, error) {
	in := usecasecontract.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		Name:     r.Name,
		Phone:    r.Phone,
	}
	kind := entity.AccountKind(strings.ToLower(r.AccountKind))
	switch kind {
	case entity.AccountKindStudent:
		if r.Business != nil {
			return in, entity.Validationf("business details are not accepted for student accounts")
		}
		if r.Student == nil {
			return in, entity.Validationf("student details are required for student accounts")
		}
		in.Profile = entity.StudentProfile{
			StudentID: strings.TrimSpace(r.Student.StudentID),
			Year:      r.Student.Year,
			Branch:    strings.TrimSpace(r.Student.Branch),
		}
	case entity.AccountKindBusiness:
		if r.Student != nil {
			return in, entity.Validationf("student details are not accepted for business accounts")
		}
		if r.Business == nil {
			return in, entity.Validationf("business details are required for business accounts")
		}
		in.Profile = entity.BusinessProfile{
			BusinessName:  strings.TrimSpace(r.Business.BusinessName),
			BusinessType:  r.Business.BusinessType,
			LicenseNumber: r.Business.LicenseNumber,
			Address:       r.Business.Address,
		}
	case entity.AccountKindPublic:
		if r.Student != nil || r.Business != nil {
			return in, entity.Validationf("public accounts take no profile details")
		}
		in.Profile = entity.NoProfile{AccountKind: kind}
	default:
		return in, entity.Validationf("unsupported account kind %q", r.AccountKind)
	}
	return in, nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}
