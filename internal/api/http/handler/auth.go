package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// WorkflowService drives registration, add-credential and login.
type WorkflowService interface {
	StartRegistration(ctx context.Context, req model.RegistrationRequest) (model.CodeDispatch, error)
	CompleteRegistration(ctx context.Context, req model.RegistrationCompletion) (model.Issued, error)
	StartAddCredential(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string) (model.CodeDispatch, error)
	CompleteAddCredential(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string, code string) (model.Credential, error)
	AddCredentialDirect(ctx context.Context, accountID int64, kind model.IdentityKind, naturalID string, jobTitle *string) (model.Credential, error)
	Login(ctx context.Context, email string, password string) (model.Session, error)
	Profile(ctx context.Context, accountID int64) (model.Account, error)
}

// Auth serves the /auth endpoints.
type Auth struct {
	workflow       WorkflowService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewAuth(workflow WorkflowService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		workflow:       workflow,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register validates the claim and emails a registration code.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req, err := f.registration()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Debug("Auth handler: processing registration request",
		"kind", req.Kind,
		"natural_id", req.NaturalID)

	dispatch, err := h.workflow.StartRegistration(r.Context(), req)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Código de verificación enviado", newDispatchView(dispatch))
}

// VerifyRegistration redeems the code and returns the account, its first
// credential and an access token.
func (h *Auth) VerifyRegistration(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	req, err := f.registration()
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	issued, err := h.workflow.CompleteRegistration(r.Context(), model.RegistrationCompletion{
		RegistrationRequest: req,
		Code:                f.first(codeKeys...),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Auth handler: registration verified",
		"account_id", issued.Account.ID)

	writeJSON(w, http.StatusCreated, envelope{
		Success: true,
		Message: "Usuario registrado exitosamente",
		Data: map[string]any{
			"usuario": newAccountView(issued.Account),
			"carnet":  newCredentialView(issued.Credential, true),
		},
		Token: issued.Token,
	})
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	session, err := h.workflow.Login(r.Context(), f.first(emailKeys...), f.password())
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Login exitoso",
		Data:    newAccountView(session.Account),
		Token:   session.Token,
	})
}

func (h *Auth) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, apierror.NewErrMissingAuthorizationToken())
		return
	}

	account, err := h.workflow.Profile(r.Context(), claims.AccountID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", newAccountView(account))
}

// Verify echoes the claims of a valid token.
func (h *Auth) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, apierror.NewErrMissingAuthorizationToken())
		return
	}

	writeSuccess(w, http.StatusOK, "Token válido", map[string]any{
		"id":            claims.AccountID,
		"email":         claims.Email,
		"identificador": claims.Identifier,
		"rol":           claims.Role,
	})
}
