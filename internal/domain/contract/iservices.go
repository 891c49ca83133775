package contract

import "context"

// IHasher hashes passwords (slow, salted) and opaque tokens (fast, deterministic).
type IHasher interface {
	HashPassword(password string) (string, error)
	ComparePasswordHash(password, hashedPassword string) error
	HashString(s string) string
	CheckHash(s, hash string) bool
}

type IRandomGenerator interface {
	GenerateRandomToken(n int) (string, error)
}

type IUUIDGenerator interface {
	NewUUID() string
}

// IEmailService delivers a rendered email.
type IEmailService interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}
