package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.VerificationCodeStore = (*VerificationRepository)(nil)

const verificationColumns = `id, owner_id, code, email, natural_id, kind, purpose, expires_at, used, created_at`

type VerificationRepository struct {
	db *Connection
}

func NewVerificationRepository(db *Connection) *VerificationRepository {
	return &VerificationRepository{
		db: db,
	}
}

func scanVerificationCode(row pgx.Row) (model.VerificationCode, error) {
	var c model.VerificationCode
	err := row.Scan(
		&c.ID, &c.OwnerID, &c.Code, &c.Email, &c.NaturalID, &c.Kind, &c.Purpose,
		&c.ExpiresAt, &c.Used, &c.CreatedAt,
	)
	return c, err
}

func (r *VerificationRepository) Create(ctx context.Context, code model.VerificationCode) (model.VerificationCode, error) {
	query := `INSERT INTO verification_codes (owner_id, code, email, natural_id, kind, purpose, expires_at, used, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
			  RETURNING ` + verificationColumns

	saved, err := scanVerificationCode(r.db.QueryRow(ctx, query,
		code.OwnerID, code.Code, code.Email, code.NaturalID, code.Kind, code.Purpose,
		code.ExpiresAt, code.CreatedAt,
	))
	if err != nil {
		return model.VerificationCode{}, fmt.Errorf("failed to create verification code: %w", err)
	}

	return saved, nil
}

// Redeem marks the newest matching code as used in a single statement, so two
// concurrent redemptions of the same code cannot both succeed.
func (r *VerificationRepository) Redeem(ctx context.Context, params model.RedeemParams, now time.Time) (model.VerificationCode, error) {
	query := `UPDATE verification_codes
			  SET used = TRUE
			  WHERE id = (
				  SELECT id FROM verification_codes
				  WHERE natural_id = $1 AND kind = $2 AND purpose = $3 AND code = $4
					AND ($5::BIGINT IS NULL OR owner_id = $5)
					AND ($7::TEXT = '' OR lower(email) = lower($7))
					AND used = FALSE AND expires_at > $6
				  ORDER BY created_at DESC, id DESC
				  LIMIT 1
				  FOR UPDATE SKIP LOCKED
			  ) AND used = FALSE
			  RETURNING ` + verificationColumns

	code, err := scanVerificationCode(r.db.QueryRow(ctx, query,
		params.NaturalID, params.Kind, params.Purpose, params.Code, params.OwnerID, now, strings.TrimSpace(params.Email),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.VerificationCode{}, model.ErrNotFound
		}
		return model.VerificationCode{}, fmt.Errorf("failed to redeem verification code: %w", err)
	}

	return code, nil
}

// DeleteExpired removes codes that expired or were used before the cutoff.
func (r *VerificationRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM verification_codes WHERE expires_at < $1 OR (used = TRUE AND created_at < $1)`

	tag, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired verification codes: %w", err)
	}

	return tag.RowsAffected(), nil
}
