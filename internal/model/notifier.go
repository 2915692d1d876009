package model

import "context"

// Notifier delivers verification codes out of band.
type Notifier interface {
	SendCode(ctx context.Context, email string, code string, purpose CodePurpose) error
}

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}
