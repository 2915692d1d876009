package handler

import (
	"net/http"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
)

// Validation serves the authenticated add-credential code round trip.
type Validation struct {
	workflow       WorkflowService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewValidation(workflow WorkflowService, contextManager model.ContextManager, logger *logger.Logger) *Validation {
	return &Validation{
		workflow:       workflow,
		contextManager: contextManager,
		logger:         logger,
	}
}

func (h *Validation) SendCode(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, apierror.NewErrMissingAuthorizationToken())
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	kind, err := f.kind(model.KindEmployee)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	naturalID := f.first(naturalIDKeys...)

	h.logger.Debug("Validation handler: processing send code request",
		"account_id", claims.AccountID,
		"kind", kind,
		"natural_id", naturalID)

	dispatch, err := h.workflow.StartAddCredential(r.Context(), claims.AccountID, kind, naturalID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Código de verificación enviado", newDispatchView(dispatch))
}

func (h *Validation) VerifyCode(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, apierror.NewErrMissingAuthorizationToken())
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	kind, err := f.kind(model.KindEmployee)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	naturalID := f.first(naturalIDKeys...)

	credential, err := h.workflow.CompleteAddCredential(r.Context(), claims.AccountID, kind, naturalID, f.first(codeKeys...))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Validation handler: credential added",
		"account_id", claims.AccountID,
		"credential_id", credential.ID)

	writeSuccess(w, http.StatusCreated, "Código verificado exitosamente", map[string]any{
		"identificador": naturalID,
		"tipo":          kind,
		"verificado":    true,
		"carnet":        newCredentialView(credential, true),
	})
}
