package model

import (
	"context"
	"strings"
)

// IdentityKind selects which registry and numbering rule applies.
type IdentityKind string

const (
	// KindStudent is identified by a student code.
	KindStudent IdentityKind = "STUDENT"
	// KindEmployee is identified by a national id.
	KindEmployee IdentityKind = "EMPLOYEE"
)

// Valid reports whether k is one of the supported kinds.
func (k IdentityKind) Valid() bool {
	return k == KindStudent || k == KindEmployee
}

// Role returns the account role implied by the kind.
func (k IdentityKind) Role() Role {
	if k == KindEmployee {
		return RoleEmployee
	}
	return RoleStudent
}

// ParseIdentityKind maps accepted spellings onto a kind.
func ParseIdentityKind(s string) (IdentityKind, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "STUDENT", "ESTUDIANTE":
		return KindStudent, true
	case "EMPLOYEE", "EMPLEADO":
		return KindEmployee, true
	default:
		return "", false
	}
}

// IdentityRegistry looks up authoritative student and employee records.
type IdentityRegistry interface {
	Find(ctx context.Context, kind IdentityKind, naturalID string) (IdentityRecord, error)
	UpdateJobTitle(ctx context.Context, nationalID string, jobTitle string) error
}

// IdentityRecord is a registry row: a student (major) or an employee (job title).
type IdentityRecord struct {
	Kind      IdentityKind
	NaturalID string
	Email     string
	Attribute *string
}
