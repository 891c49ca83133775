package usecasecontract

import "time"

// IConfigProvider exposes the configuration values usecases depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetEmailVerificationTokenExpiry() time.Duration
	GetStudentEmailDomain() string
	GetAdminNotificationEmail() string
}
