package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/password"
	"github.com/dtroode/idwallet-server/internal/repository/memory"
	"github.com/dtroode/idwallet-server/internal/testutil"
	"github.com/dtroode/idwallet-server/internal/token"
)

// outbox records codes instead of sending them.
type outbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (o *outbox) SendCode(ctx context.Context, email string, code string, purpose model.CodePurpose) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.codes[email] = code
	return nil
}

func (o *outbox) last(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.codes[email]
}

type testEnv struct {
	repos        *memory.RepositoryManager
	outbox       *outbox
	clock        *time.Time
	verification *Verification
	workflow     *Workflow
	tokens       *token.JWT
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	m := metrics.NewNoop()
	repos := memory.NewRepositoryManager()
	repos.Identities().Seed(
		model.IdentityRecord{Kind: model.KindStudent, NaturalID: "S001", Email: "a@b.com"},
		model.IdentityRecord{Kind: model.KindStudent, NaturalID: "S002", Email: "carla@uni.edu"},
		model.IdentityRecord{Kind: model.KindEmployee, NaturalID: "1712345678", Email: "a@b.com"},
		model.IdentityRecord{Kind: model.KindEmployee, NaturalID: "0999999999", Email: "dan@uni.edu"},
	)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &testEnv{
		repos:  repos,
		outbox: &outbox{codes: make(map[string]string)},
		clock:  &now,
		tokens: token.NewJWT("secret", 24*time.Hour),
	}

	env.verification = NewVerification(repos.Codes(), 10*time.Minute, m, lg)
	env.verification.now = func() time.Time { return *env.clock }

	hasher := password.NewBcrypt(bcrypt.MinCost)
	env.workflow = NewWorkflow(
		repos.Identities(),
		repos.Accounts(),
		NewDirectory(repos.Accounts(), hasher, lg),
		env.verification,
		NewIssuer(repos.Credentials(), m, lg),
		env.outbox,
		hasher,
		NewTokenService(env.tokens, lg),
		false,
		m,
		lg,
	)

	return env
}

func (e *testEnv) advance(d time.Duration) {
	next := e.clock.Add(d)
	*e.clock = next
}

func registration(kind model.IdentityKind, naturalID, email string) model.RegistrationRequest {
	return model.RegistrationRequest{
		Kind:      kind,
		NaturalID: naturalID,
		Email:     email,
		Password:  "s3cret",
		FirstName: "Ana",
		LastName:  "Pérez",
	}
}

// register runs a full registration and returns its result.
func (e *testEnv) register(t *testing.T, req model.RegistrationRequest) model.Issued {
	t.Helper()
	ctx := context.Background()

	_, err := e.workflow.StartRegistration(ctx, req)
	require.NoError(t, err)

	issued, err := e.workflow.CompleteRegistration(ctx, model.RegistrationCompletion{
		RegistrationRequest: req,
		Code:                e.outbox.last(req.Email),
	})
	require.NoError(t, err)
	return issued
}
