package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = `id, first_name, last_name, email, password_hash, student_code, national_id,
	role, active, email_verified, created_at, updated_at`

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func scanAccount(row pgx.Row) (model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.PasswordHash, &a.StudentCode, &a.NationalID,
		&a.Role, &a.Active, &a.EmailVerified, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE lower(email) = lower($1)`

	account, err := scanAccount(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by id: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) GetByIdentifier(ctx context.Context, kind model.IdentityKind, naturalID string) (model.Account, error) {
	column, err := identifierColumn(kind)
	if err != nil {
		return model.Account{}, err
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + column + ` = $1`

	account, err := scanAccount(r.db.QueryRow(ctx, query, naturalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by identifier: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (first_name, last_name, email, password_hash, student_code, national_id,
				role, active, email_verified)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + accountColumns

	saved, err := scanAccount(r.db.QueryRow(ctx, query,
		account.FirstName, account.LastName, account.Email, account.PasswordHash,
		account.StudentCode, account.NationalID, account.Role, account.Active, account.EmailVerified,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrAlreadyExists
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) MarkVerified(ctx context.Context, id int64, passwordHash string) (model.Account, error) {
	query := `UPDATE accounts
			  SET email_verified = TRUE, active = TRUE, password_hash = $2, updated_at = now()
			  WHERE id = $1
			  RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRow(ctx, query, id, passwordHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to mark account verified: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) BindIdentifier(ctx context.Context, id int64, kind model.IdentityKind, naturalID string) error {
	column, err := identifierColumn(kind)
	if err != nil {
		return err
	}
	query := `UPDATE accounts SET ` + column + ` = $2, updated_at = now() WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, naturalID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to bind identifier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func identifierColumn(kind model.IdentityKind) (string, error) {
	switch kind {
	case model.KindStudent:
		return "student_code", nil
	case model.KindEmployee:
		return "national_id", nil
	default:
		return "", fmt.Errorf("unsupported identity kind %q", kind)
	}
}
