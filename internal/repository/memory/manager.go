// Package memory keeps every store in process memory. It backs local runs
// without Postgres and the service tests.
package memory

import (
	"context"
	"strings"
)

// RepositoryManager vends the in-memory stores.
type RepositoryManager struct {
	accounts    *AccountRepository
	identities  *IdentityRepository
	codes       *VerificationRepository
	credentials *CredentialRepository
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{
		accounts:    NewAccountRepository(),
		identities:  NewIdentityRepository(),
		codes:       NewVerificationRepository(),
		credentials: NewCredentialRepository(),
	}
}

func (m *RepositoryManager) Accounts() *AccountRepository {
	return m.accounts
}

func (m *RepositoryManager) Identities() *IdentityRepository {
	return m.identities
}

func (m *RepositoryManager) Codes() *VerificationRepository {
	return m.codes
}

func (m *RepositoryManager) Credentials() *CredentialRepository {
	return m.credentials
}

// Ping always succeeds.
func (m *RepositoryManager) Ping(ctx context.Context) error {
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
