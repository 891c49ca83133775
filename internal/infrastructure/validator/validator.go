package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	usecasecontract "github.com/mikiasgoitom/CampusGuide/internal/usecase/contract"
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	return &AppValidator{validate: validator.New()}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidateInstitutionalEmail checks that the address is a valid email whose
// domain is the institutional domain or one of its subdomains, so
// cs.university.edu passes for university.edu but fakeuniversity.edu does not.
func (av *AppValidator) ValidateInstitutionalEmail(email, domain string) error {
	if err := av.ValidateEmail(email); err != nil {
		return err
	}
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "@")
	host := strings.ToLower(email[strings.LastIndex(email, "@")+1:])
	if domain == "" || (host != domain && !strings.HasSuffix(host, "."+domain)) {
		return fmt.Errorf("email must belong to the %s domain", domain)
	}
	return nil
}

// ValidatePasswordStrength checks if the password meets the strength requirements.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !containsUppercase(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !containsLowercase(password) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !containsNumber(password) {
		return fmt.Errorf("password must contain at least one number")
	}
	if !containsSpecial(password) {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("containsuppercase", containsUppercaseFL)
		_ = v.RegisterValidation("containslowercase", containsLowercaseFL)
		_ = v.RegisterValidation("containsdigit", containsNumberFL)
		_ = v.RegisterValidation("containssymbol", containsSpecialFL)
		_ = v.RegisterValidation("lng", longitudeFL)
		_ = v.RegisterValidation("lat", latitudeFL)
	}
}

func containsUppercase(s string) bool {
	for _, char := range s {
		if unicode.IsUpper(char) {
			return true
		}
	}
	return false
}
func containsUppercaseFL(fl validator.FieldLevel) bool {
	return containsUppercase(fl.Field().String())
}

func containsLowercase(s string) bool {
	for _, char := range s {
		if unicode.IsLower(char) {
			return true
		}
	}
	return false
}
func containsLowercaseFL(fl validator.FieldLevel) bool {
	return containsLowercase(fl.Field().String())
}

func containsNumber(s string) bool {
	for _, char := range s {
		if unicode.IsNumber(char) {
			return true
		}
	}
	return false
}
func containsNumberFL(fl validator.FieldLevel) bool {
	return containsNumber(fl.Field().String())
}

func containsSpecial(s string) bool {
	for _, char := range s {
		if strings.ContainsRune("!@#$%^&*()_+-=[]{};:'\\|,.<>/?", char) {
			return true
		}
	}
	return false
}
func containsSpecialFL(fl validator.FieldLevel) bool {
	return containsSpecial(fl.Field().String())
}

// longitudeFL and latitudeFL accept float fields within GeoJSON bounds.
func longitudeFL(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= -180 && v <= 180
}

func latitudeFL(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return v >= -90 && v <= 90
}
