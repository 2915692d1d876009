package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
)

const codeDigits = 6

var codeSpace = big.NewInt(1_000_000)

// IssueParams scopes a new verification code. A zero TTL uses the service default.
type IssueParams struct {
	OwnerID   *int64
	Email     string
	NaturalID string
	Kind      model.IdentityKind
	Purpose   model.CodePurpose
	TTL       time.Duration
}

// Verification issues and redeems one-time codes.
type Verification struct {
	store    model.VerificationCodeStore
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
	metrics  *metrics.Metrics
	logger   *logger.Logger
}

func NewVerification(store model.VerificationCodeStore, ttl time.Duration, metrics *metrics.Metrics, logger *logger.Logger) *Verification {
	return &Verification{
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		generate: GenerateCode,
		metrics:  metrics,
		logger:   logger,
	}
}

// GenerateCode returns a uniformly random zero-padded 6 digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// Issue persists a fresh code. Outstanding codes for the same identifier are left alone.
func (v *Verification) Issue(ctx context.Context, params IssueParams) (model.VerificationCode, error) {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = v.ttl
	}

	code, err := v.generate()
	if err != nil {
		return model.VerificationCode{}, err
	}

	now := v.now()
	saved, err := v.store.Create(ctx, model.VerificationCode{
		OwnerID:   params.OwnerID,
		Code:      code,
		Email:     params.Email,
		NaturalID: params.NaturalID,
		Kind:      params.Kind,
		Purpose:   params.Purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		v.logger.Error("Verification service: failed to persist code",
			"natural_id", params.NaturalID,
			"kind", params.Kind,
			"error", err.Error())
		return model.VerificationCode{}, fmt.Errorf("failed to create verification code: %w", err)
	}

	v.metrics.IncrementCodeIssued(string(params.Purpose))
	v.logger.Debug("Verification service: code issued",
		"natural_id", params.NaturalID,
		"kind", params.Kind,
		"purpose", params.Purpose,
		"expires_at", saved.ExpiresAt)

	return saved, nil
}

// Redeem consumes the matching code. Wrong, expired and already used codes
// are reported the same way.
func (v *Verification) Redeem(ctx context.Context, params model.RedeemParams) (model.VerificationCode, error) {
	if !wellFormedCode(params.Code) {
		v.metrics.IncrementRedemption(string(params.Purpose), false)
		return model.VerificationCode{}, apierror.NewErrInvalidOrExpiredCode()
	}

	code, err := v.store.Redeem(ctx, params, v.now())
	if errors.Is(err, model.ErrNotFound) {
		v.metrics.IncrementRedemption(string(params.Purpose), false)
		v.logger.Info("Verification service: code rejected",
			"natural_id", params.NaturalID,
			"kind", params.Kind,
			"purpose", params.Purpose)
		return model.VerificationCode{}, apierror.NewErrInvalidOrExpiredCode()
	}
	if err != nil {
		return model.VerificationCode{}, fmt.Errorf("failed to redeem verification code: %w", err)
	}

	v.metrics.IncrementRedemption(string(params.Purpose), true)
	return code, nil
}

func wellFormedCode(code string) bool {
	if len(code) != codeDigits {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
