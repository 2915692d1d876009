package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/metrics"
	"github.com/dtroode/idwallet-server/internal/model"
)

var tracer = otel.Tracer("github.com/dtroode/idwallet-server/internal/service")

// Workflow drives registration, add-credential and login.
type Workflow struct {
	registry     model.IdentityRegistry
	accounts     model.AccountStore
	directory    *Directory
	verification *Verification
	issuer       *Issuer
	notifier     model.Notifier
	hasher       model.PasswordHasher
	tokenService *TokenService
	exposeCode   bool
	metrics      *metrics.Metrics
	logger       *logger.Logger
}

func NewWorkflow(
	registry model.IdentityRegistry,
	accounts model.AccountStore,
	directory *Directory,
	verification *Verification,
	issuer *Issuer,
	notifier model.Notifier,
	hasher model.PasswordHasher,
	tokenService *TokenService,
	exposeCode bool,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Workflow {
	return &Workflow{
		registry:     registry,
		accounts:     accounts,
		directory:    directory,
		verification: verification,
		issuer:       issuer,
		notifier:     notifier,
		hasher:       hasher,
		tokenService: tokenService,
		exposeCode:   exposeCode,
		metrics:      metrics,
		logger:       logger,
	}
}

func (w *Workflow) startSpan(ctx context.Context, name string, kind model.IdentityKind) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Workflow."+name, trace.WithAttributes(attribute.String("identity.kind", string(kind))))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// StartRegistration validates the claim against the registry, opens an
// unverified account for the email and emails a code.
func (w *Workflow) StartRegistration(ctx context.Context, req model.RegistrationRequest) (dispatch model.CodeDispatch, err error) {
	ctx, span := w.startSpan(ctx, "StartRegistration", req.Kind)
	defer func() { endSpan(span, err) }()

	w.logger.Debug("Workflow service: starting registration",
		"kind", req.Kind,
		"natural_id", req.NaturalID)

	if err := validateRegistration(req); err != nil {
		return model.CodeDispatch{}, err
	}

	if err := w.matchRegistry(ctx, req.Kind, req.NaturalID, req.Email, http.StatusBadRequest); err != nil {
		return model.CodeDispatch{}, err
	}

	existing, err := w.accounts.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.EmailVerified:
		w.logger.Info("Workflow service: email already registered",
			"account_id", existing.ID)
		return model.CodeDispatch{}, apierror.NewErrAlreadyRegistered(req.Email)
	case err != nil && !errors.Is(err, model.ErrNotFound):
		return model.CodeDispatch{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	owner, err := w.accounts.GetByIdentifier(ctx, req.Kind, req.NaturalID)
	switch {
	case err == nil && !strings.EqualFold(owner.Email, req.Email):
		w.logger.Warn("Workflow service: identifier bound to another account",
			"natural_id", req.NaturalID,
			"owner_id", owner.ID)
		return model.CodeDispatch{}, apierror.NewErrIdentifierOwnedByOther()
	case err != nil && !errors.Is(err, model.ErrNotFound):
		return model.CodeDispatch{}, fmt.Errorf("failed to get account by identifier: %w", err)
	}

	account, err := w.directory.Pending(ctx, newAccount(req))
	if err != nil {
		return model.CodeDispatch{}, err
	}
	if account.EmailVerified {
		w.logger.Info("Workflow service: email verified concurrently",
			"account_id", account.ID)
		return model.CodeDispatch{}, apierror.NewErrAlreadyRegistered(req.Email)
	}

	return w.sendCode(ctx, IssueParams{
		Email:     req.Email,
		NaturalID: req.NaturalID,
		Kind:      req.Kind,
		Purpose:   model.PurposeRegistration,
	})
}

// CompleteRegistration redeems the code and mints the first credential. The
// account is marked verified only once the credential exists, so a failed mint
// leaves it unverified and registration can be retried.
func (w *Workflow) CompleteRegistration(ctx context.Context, req model.RegistrationCompletion) (issued model.Issued, err error) {
	ctx, span := w.startSpan(ctx, "CompleteRegistration", req.Kind)
	defer func() { endSpan(span, err) }()

	w.logger.Debug("Workflow service: completing registration",
		"kind", req.Kind,
		"natural_id", req.NaturalID)

	if err := validateRegistration(req.RegistrationRequest); err != nil {
		return model.Issued{}, err
	}
	if strings.TrimSpace(req.Code) == "" {
		return model.Issued{}, apierror.NewErrValidation("code is required")
	}

	if err := w.matchRegistry(ctx, req.Kind, req.NaturalID, req.Email, http.StatusBadRequest); err != nil {
		return model.Issued{}, err
	}

	if _, err := w.verification.Redeem(ctx, model.RedeemParams{
		Email:     req.Email,
		NaturalID: req.NaturalID,
		Kind:      req.Kind,
		Purpose:   model.PurposeRegistration,
		Code:      req.Code,
	}); err != nil {
		return model.Issued{}, err
	}

	account, err := w.directory.Pending(ctx, newAccount(req.RegistrationRequest))
	if err != nil {
		return model.Issued{}, err
	}

	account, err = w.directory.Bind(ctx, account, req.Kind, req.NaturalID)
	if err != nil {
		return model.Issued{}, err
	}

	credential, err := w.issuer.Mint(ctx, account.ID, req.NaturalID, req.Kind)
	if err != nil {
		return model.Issued{}, err
	}

	account, err = w.directory.Verify(ctx, account, req.Password)
	if err != nil {
		return model.Issued{}, err
	}

	token, err := w.tokenService.Issue(ctx, account)
	if err != nil {
		return model.Issued{}, err
	}

	w.logger.Info("Workflow service: registration completed",
		"account_id", account.ID,
		"credential_id", credential.ID)

	return model.Issued{Account: account, Token: token, Credential: credential}, nil
}

// StartAddCredential emails a code to an authenticated account claiming another identity.
func (w *Workflow) StartAddCredential(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string) (dispatch model.CodeDispatch, err error) {
	ctx, span := w.startSpan(ctx, "StartAddCredential", kind)
	defer func() { endSpan(span, err) }()

	account, err := w.checkClaim(ctx, accountID, kind, naturalID)
	if err != nil {
		return model.CodeDispatch{}, err
	}

	if err := w.issuer.CheckAvailable(ctx, account.ID, naturalID, kind); err != nil {
		return model.CodeDispatch{}, err
	}

	return w.sendCode(ctx, IssueParams{
		OwnerID:   &account.ID,
		Email:     account.Email,
		NaturalID: naturalID,
		Kind:      kind,
		Purpose:   model.PurposeAddCredential,
	})
}

// CompleteAddCredential redeems an account-owned code and mints the credential.
func (w *Workflow) CompleteAddCredential(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string, code string) (credential model.Credential, err error) {
	ctx, span := w.startSpan(ctx, "CompleteAddCredential", kind)
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(code) == "" {
		return model.Credential{}, apierror.NewErrValidation("code is required")
	}

	account, err := w.checkClaim(ctx, accountID, kind, naturalID)
	if err != nil {
		return model.Credential{}, err
	}

	if _, err := w.verification.Redeem(ctx, model.RedeemParams{
		OwnerID:   &account.ID,
		NaturalID: naturalID,
		Kind:      kind,
		Purpose:   model.PurposeAddCredential,
		Code:      code,
	}); err != nil {
		return model.Credential{}, err
	}

	return w.bindAndMint(ctx, account, kind, naturalID)
}

// AddCredentialDirect mints a credential for an authenticated account without a
// code round trip. For employees a job title, when given, updates the registry
// first; a failed update is logged and does not block the mint.
func (w *Workflow) AddCredentialDirect(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string, jobTitle *string) (credential model.Credential, err error) {
	ctx, span := w.startSpan(ctx, "AddCredentialDirect", kind)
	defer func() { endSpan(span, err) }()

	account, err := w.checkClaim(ctx, accountID, kind, naturalID)
	if err != nil {
		return model.Credential{}, err
	}

	if kind == model.KindEmployee && jobTitle != nil && strings.TrimSpace(*jobTitle) != "" {
		if err := w.registry.UpdateJobTitle(ctx, naturalID, strings.TrimSpace(*jobTitle)); err != nil {
			w.logger.Warn("Workflow service: failed to update job title",
				"natural_id", naturalID,
				"error", err.Error())
		}
	}

	return w.bindAndMint(ctx, account, kind, naturalID)
}

// Login checks the password and issues a token.
func (w *Workflow) Login(ctx context.Context, email, password string) (session model.Session, err error) {
	ctx, span := tracer.Start(ctx, "Workflow.Login")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(email) == "" || password == "" {
		return model.Session{}, apierror.NewErrValidation("email and password are required")
	}

	account, err := w.accounts.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		w.metrics.IncrementLogin("invalid_credentials")
		return model.Session{}, apierror.NewErrInvalidCredentials()
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	if account.PasswordHash == "" || !w.hasher.Verify(password, account.PasswordHash) || !account.Active {
		w.metrics.IncrementLogin("invalid_credentials")
		w.logger.Info("Workflow service: login rejected",
			"account_id", account.ID)
		return model.Session{}, apierror.NewErrInvalidCredentials()
	}
	if !account.EmailVerified {
		w.metrics.IncrementLogin("email_not_verified")
		return model.Session{}, apierror.NewErrEmailNotVerified()
	}

	token, err := w.tokenService.Issue(ctx, account)
	if err != nil {
		return model.Session{}, err
	}

	w.metrics.IncrementLogin("success")
	w.logger.Info("Workflow service: login succeeded",
		"account_id", account.ID)

	return model.Session{Account: account, Token: token}, nil
}

// Profile returns the account behind the token.
func (w *Workflow) Profile(ctx context.Context, accountID int64) (model.Account, error) {
	return w.directory.Get(ctx, accountID)
}

func (w *Workflow) bindAndMint(ctx context.Context, account model.Account, kind model.IdentityKind, naturalID string) (model.Credential, error) {
	account, err := w.directory.Bind(ctx, account, kind, naturalID)
	if err != nil {
		return model.Credential{}, err
	}

	credential, err := w.issuer.Mint(ctx, account.ID, naturalID, kind)
	if err != nil {
		return model.Credential{}, err
	}

	w.logger.Info("Workflow service: credential added",
		"account_id", account.ID,
		"credential_id", credential.ID)

	return credential, nil
}

// checkClaim runs the ownership checks of the authenticated path.
func (w *Workflow) checkClaim(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string) (model.Account, error) {
	if !kind.Valid() {
		return model.Account{}, apierror.NewErrValidation("kind must be STUDENT or EMPLOYEE")
	}
	if strings.TrimSpace(naturalID) == "" {
		return model.Account{}, apierror.NewErrValidation(identifierField(kind) + " is required")
	}

	account, err := w.directory.Get(ctx, accountID)
	if err != nil {
		return model.Account{}, err
	}

	if err := w.matchRegistry(ctx, kind, naturalID, account.Email, http.StatusForbidden); err != nil {
		return model.Account{}, err
	}

	owner, err := w.accounts.GetByIdentifier(ctx, kind, naturalID)
	switch {
	case err == nil && owner.ID != account.ID:
		w.logger.Warn("Workflow service: identifier bound to another account",
			"natural_id", naturalID,
			"account_id", account.ID,
			"owner_id", owner.ID)
		return model.Account{}, apierror.NewErrIdentifierOwnedByOther()
	case err != nil && !errors.Is(err, model.ErrNotFound):
		return model.Account{}, fmt.Errorf("failed to get account by identifier: %w", err)
	}

	return account, nil
}

// matchRegistry requires a registry record whose email equals email, ignoring case.
func (w *Workflow) matchRegistry(ctx context.Context, kind model.IdentityKind, naturalID, email string, mismatchStatus int) error {
	record, err := w.registry.Find(ctx, kind, naturalID)
	if errors.Is(err, model.ErrNotFound) {
		return apierror.NewErrIdentityNotFound(naturalID)
	}
	if err != nil {
		return fmt.Errorf("failed to find identity record: %w", err)
	}

	if !strings.EqualFold(strings.TrimSpace(record.Email), strings.TrimSpace(email)) {
		w.logger.Warn("Workflow service: email does not match registry",
			"kind", kind,
			"natural_id", naturalID)
		return apierror.NewErrIdentityMismatch(mismatchStatus)
	}

	return nil
}

func (w *Workflow) sendCode(ctx context.Context, params IssueParams) (model.CodeDispatch, error) {
	code, err := w.verification.Issue(ctx, params)
	if err != nil {
		return model.CodeDispatch{}, err
	}

	if err := w.notifier.SendCode(ctx, params.Email, code.Code, params.Purpose); err != nil {
		w.logger.Error("Workflow service: failed to dispatch code",
			"natural_id", params.NaturalID,
			"error", err.Error())
		return model.CodeDispatch{}, apierror.NewErrNotificationFailed(err)
	}

	dispatch := model.CodeDispatch{
		MaskedEmail: MaskEmail(params.Email),
		TTLMinutes:  int(code.ExpiresAt.Sub(code.CreatedAt).Minutes()),
	}
	if w.exposeCode {
		dispatch.Code = code.Code
	}

	w.logger.Info("Workflow service: code sent",
		"natural_id", params.NaturalID,
		"purpose", params.Purpose,
		"to", dispatch.MaskedEmail)

	return dispatch, nil
}

func newAccount(req model.RegistrationRequest) NewAccount {
	return NewAccount{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Kind:      req.Kind,
	}
}

func validateRegistration(req model.RegistrationRequest) error {
	if !req.Kind.Valid() {
		return apierror.NewErrValidation("kind must be STUDENT or EMPLOYEE")
	}

	var missing []string
	if strings.TrimSpace(req.NaturalID) == "" {
		missing = append(missing, identifierField(req.Kind))
	}
	if strings.TrimSpace(req.Email) == "" {
		missing = append(missing, "email")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if strings.TrimSpace(req.FirstName) == "" {
		missing = append(missing, "first name")
	}
	if strings.TrimSpace(req.LastName) == "" {
		missing = append(missing, "last name")
	}
	if len(missing) > 0 {
		return apierror.NewErrValidation("missing required fields: " + strings.Join(missing, ", "))
	}

	return nil
}

func identifierField(kind model.IdentityKind) string {
	if kind == model.KindEmployee {
		return "national id"
	}
	return "student code"
}

// MaskEmail keeps the first two characters of the local part and the domain.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return "****"
	}
	local, domain := email[:at], email[at:]
	if len([]rune(local)) <= 2 {
		return "****" + domain
	}
	return string([]rune(local)[:2]) + "****" + domain
}
