package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.CredentialStore = (*CredentialRepository)(nil)

const credentialColumns = `id, account_id, natural_id, kind, title, number, qr_code, photo_key, active,
	created_at, updated_at`

type CredentialRepository struct {
	db *Connection
}

func NewCredentialRepository(db *Connection) *CredentialRepository {
	return &CredentialRepository{
		db: db,
	}
}

func scanCredential(row pgx.Row) (model.Credential, error) {
	var c model.Credential
	err := row.Scan(
		&c.ID, &c.AccountID, &c.NaturalID, &c.Kind, &c.Title, &c.Number, &c.QRCode, &c.PhotoKey,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *CredentialRepository) Create(ctx context.Context, credential model.Credential) (model.Credential, error) {
	query := `INSERT INTO credentials (account_id, natural_id, kind, title, number, qr_code, photo_key, active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + credentialColumns

	saved, err := scanCredential(r.db.QueryRow(ctx, query,
		credential.AccountID, credential.NaturalID, credential.Kind, credential.Title, credential.Number,
		credential.QRCode, credential.PhotoKey, credential.Active,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Credential{}, model.ErrAlreadyExists
		}
		return model.Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}

	return saved, nil
}

func (r *CredentialRepository) GetByID(ctx context.Context, id int64) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE id = $1`

	credential, err := scanCredential(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by id: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) GetByAccountAndKind(ctx context.Context, accountID int64, kind model.IdentityKind) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE account_id = $1 AND kind = $2`

	credential, err := scanCredential(r.db.QueryRow(ctx, query, accountID, kind))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by account and kind: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) GetByNumber(ctx context.Context, number string) (model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE number = $1`

	credential, err := scanCredential(r.db.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to get credential by number: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Credential, error) {
	query := `SELECT ` + credentialColumns + ` FROM credentials WHERE account_id = $1 ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	credentials := make([]model.Credential, 0)
	for rows.Next() {
		credential, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		credentials = append(credentials, credential)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return credentials, nil
}

func (r *CredentialRepository) UpdatePhoto(ctx context.Context, id int64, photoKey string) (model.Credential, error) {
	query := `UPDATE credentials SET photo_key = $2, updated_at = now() WHERE id = $1
			  RETURNING ` + credentialColumns

	credential, err := scanCredential(r.db.QueryRow(ctx, query, id, photoKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Credential{}, model.ErrNotFound
		}
		return model.Credential{}, fmt.Errorf("failed to update credential photo: %w", err)
	}

	return credential, nil
}

func (r *CredentialRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM credentials WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
