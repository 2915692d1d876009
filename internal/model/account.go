package model

import (
	"context"
	"time"
)

// Role is the account role.
type Role string

const (
	RoleStudent  Role = "STUDENT"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id int64) (Account, error)
	GetByIdentifier(ctx context.Context, kind IdentityKind, naturalID string) (Account, error)
	// Create returns ErrAlreadyExists when the email is taken.
	Create(ctx context.Context, account Account) (Account, error)
	MarkVerified(ctx context.Context, id int64, passwordHash string) (Account, error)
	BindIdentifier(ctx context.Context, id int64, kind IdentityKind, naturalID string) error
}

// Account represents a person who has authenticated.
type Account struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	PasswordHash  string
	StudentCode   *string
	NationalID    *string
	Role          Role
	Active        bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Identifier returns the natural identifier bound for the account role.
func (a Account) Identifier() string {
	if a.Role == RoleEmployee && a.NationalID != nil {
		return *a.NationalID
	}
	if a.StudentCode != nil {
		return *a.StudentCode
	}
	if a.NationalID != nil {
		return *a.NationalID
	}
	return ""
}

// BoundIdentifier returns the identifier bound for kind, if any.
func (a Account) BoundIdentifier(kind IdentityKind) (string, bool) {
	switch kind {
	case KindStudent:
		if a.StudentCode != nil {
			return *a.StudentCode, true
		}
	case KindEmployee:
		if a.NationalID != nil {
			return *a.NationalID, true
		}
	}
	return "", false
}
