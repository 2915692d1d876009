package model

import (
	"context"
	"time"
)

// CodePurpose tells registration codes apart from add-credential codes.
type CodePurpose string

const (
	PurposeRegistration  CodePurpose = "REGISTRATION"
	PurposeAddCredential CodePurpose = "ADD_CREDENTIAL"
)

// VerificationCodeStore persists one-time verification codes.
type VerificationCodeStore interface {
	Create(ctx context.Context, code VerificationCode) (VerificationCode, error)
	// Redeem flips used to true on the newest matching unused, unexpired code.
	// It returns ErrNotFound when nothing matches.
	Redeem(ctx context.Context, params RedeemParams, now time.Time) (VerificationCode, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// VerificationCode is a one-time proof of control over an identity claim.
type VerificationCode struct {
	ID        int64
	OwnerID   *int64
	Code      string
	Email     string
	NaturalID string
	Kind      IdentityKind
	Purpose   CodePurpose
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Redeemable reports whether the code can still be redeemed at now.
func (c VerificationCode) Redeemable(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// RedeemParams identifies the code being redeemed. OwnerID nil matches any
// owner and an empty Email matches any address; Email is compared ignoring case.
type RedeemParams struct {
	OwnerID   *int64
	Email     string
	NaturalID string
	Kind      IdentityKind
	Purpose   CodePurpose
	Code      string
}
