package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/idwallet-server/internal/model"
)

var _ model.IdentityRegistry = (*IdentityRepository)(nil)

// IdentityRepository reads the student and employee registries.
type IdentityRepository struct {
	db *Connection
}

func NewIdentityRepository(db *Connection) *IdentityRepository {
	return &IdentityRepository{
		db: db,
	}
}

func (r *IdentityRepository) Find(ctx context.Context, kind model.IdentityKind, naturalID string) (model.IdentityRecord, error) {
	var query string
	switch kind {
	case model.KindStudent:
		query = `SELECT student_code, email, major FROM students WHERE student_code = $1`
	case model.KindEmployee:
		query = `SELECT national_id, email, job_title FROM employees WHERE national_id = $1`
	default:
		return model.IdentityRecord{}, fmt.Errorf("unsupported identity kind %q", kind)
	}

	record := model.IdentityRecord{Kind: kind}
	err := r.db.QueryRow(ctx, query, naturalID).Scan(&record.NaturalID, &record.Email, &record.Attribute)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.IdentityRecord{}, model.ErrNotFound
		}
		return model.IdentityRecord{}, fmt.Errorf("failed to find identity record: %w", err)
	}

	return record, nil
}

func (r *IdentityRepository) UpdateJobTitle(ctx context.Context, nationalID string, jobTitle string) error {
	query := `UPDATE employees SET job_title = $2, updated_at = now() WHERE national_id = $1`

	tag, err := r.db.Exec(ctx, query, nationalID, jobTitle)
	if err != nil {
		return fmt.Errorf("failed to update job title: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
