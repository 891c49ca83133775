package usecasecontract

type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
	// ValidateInstitutionalEmail checks that email belongs to the given domain.
	ValidateInstitutionalEmail(email, domain string) error
}
