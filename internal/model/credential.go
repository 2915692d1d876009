package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// CredentialStore defines persistence operations for credentials.
type CredentialStore interface {
	// Create returns ErrAlreadyExists when a unique constraint rejects the row.
	Create(ctx context.Context, credential Credential) (Credential, error)
	GetByID(ctx context.Context, id int64) (Credential, error)
	GetByAccountAndKind(ctx context.Context, accountID int64, kind IdentityKind) (Credential, error)
	GetByNumber(ctx context.Context, number string) (Credential, error)
	ListByAccount(ctx context.Context, accountID int64) ([]Credential, error)
	UpdatePhoto(ctx context.Context, id int64, photoKey string) (Credential, error)
	Delete(ctx context.Context, id int64) error
}

// Credential is an issued digital ID card.
type Credential struct {
	ID        int64
	AccountID int64
	NaturalID string
	Kind      IdentityKind
	Title     string
	Number    string
	QRCode    []byte
	PhotoKey  *string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CredentialNumber derives the display number of a credential.
func CredentialNumber(kind IdentityKind, naturalID string) string {
	prefix := "EST"
	if kind == KindEmployee {
		prefix = "EMP"
	}
	return fmt.Sprintf("%s-%s", prefix, strings.TrimSpace(naturalID))
}

// CredentialTitle is the printed card type.
func CredentialTitle(kind IdentityKind) string {
	if kind == KindEmployee {
		return "Carnet Empleado"
	}
	return "Carnet Universitario"
}

// CredentialPayload is the content embedded in the QR code.
type CredentialPayload struct {
	AccountID int64        `json:"account_id"`
	NaturalID string       `json:"natural_id"`
	Kind      IdentityKind `json:"kind"`
}
