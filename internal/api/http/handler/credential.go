package handler

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
	"github.com/dtroode/idwallet-server/internal/model"
	"github.com/dtroode/idwallet-server/internal/service"
)

// photoField is the multipart field carrying the credential photo.
const photoField = "foto"

// CredentialService reads and maintains issued credentials.
type CredentialService interface {
	List(ctx context.Context, accountID int64) ([]model.Credential, error)
	Get(ctx context.Context, accountID int64, id int64) (model.Credential, error)
	UpdatePhoto(ctx context.Context, accountID int64, id int64, contentType string, reader io.Reader, size int64) (model.Credential, error)
	Photo(ctx context.Context, accountID int64, id int64) (io.ReadCloser, error)
	Delete(ctx context.Context, accountID int64, id int64) error
}

// Credential serves the /carnets endpoints.
type Credential struct {
	workflow       WorkflowService
	credentials    CredentialService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewCredential(workflow WorkflowService, credentials CredentialService, contextManager model.ContextManager, logger *logger.Logger) *Credential {
	return &Credential{
		workflow:       workflow,
		credentials:    credentials,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Status is a public liveness probe for the credential routes.
func (h *Credential) Status(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "Las rutas de carnets están funcionando correctamente", map[string]any{
		"autenticacion": "Las rutas protegidas requieren token en header Authorization",
		"ejemplo":       "Authorization: Bearer <token>",
	})
}

// List omits QR images; they are fetched per credential.
func (h *Credential) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	credentials, err := h.credentials.List(r.Context(), claims.AccountID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	views := make([]credentialView, 0, len(credentials))
	for _, c := range credentials {
		views = append(views, newCredentialView(c, false))
	}

	writeSuccess(w, http.StatusOK, "", views)
}

func (h *Credential) AddStudent(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, model.KindStudent)
}

func (h *Credential) AddEmployee(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, model.KindEmployee)
}

func (h *Credential) add(w http.ResponseWriter, r *http.Request, kind model.IdentityKind) {
	claims, ok := h.claims(w, r)
	if !ok {
		return
	}

	f, err := decodeFields(w, r)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	var jobTitle *string
	if kind == model.KindEmployee {
		jobTitle = f.jobTitle()
	}

	credential, err := h.workflow.AddCredentialDirect(r.Context(), claims.AccountID, kind, f.first(naturalIDKeys...), jobTitle)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	h.logger.Info("Credential handler: credential added",
		"account_id", claims.AccountID,
		"credential_id", credential.ID,
		"kind", kind)

	writeSuccess(w, http.StatusCreated, "Carnet agregado exitosamente", newCredentialView(credential, true))
}

func (h *Credential) Get(w http.ResponseWriter, r *http.Request) {
	claims, id, ok := h.claimsAndID(w, r)
	if !ok {
		return
	}

	credential, err := h.credentials.Get(r.Context(), claims.AccountID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "", newCredentialView(credential, true))
}

// UpdatePhoto accepts a multipart upload in the "foto" field.
func (h *Credential) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	claims, id, ok := h.claimsAndID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxPhotoSize+(1<<20))
	file, header, err := r.FormFile(photoField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, h.logger, apierror.NewErrValidation("photo exceeds 5MB"))
			return
		}
		handleError(w, h.logger, apierror.NewErrValidation("photo file is required in field "+photoField))
		return
	}
	defer file.Close()

	credential, err := h.credentials.UpdatePhoto(r.Context(), claims.AccountID, id, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Foto actualizada exitosamente", newCredentialView(credential, false))
}

// Photo streams the stored image, sniffing its content type.
func (h *Credential) Photo(w http.ResponseWriter, r *http.Request) {
	claims, id, ok := h.claimsAndID(w, r)
	if !ok {
		return
	}

	reader, err := h.credentials.Photo(r.Context(), claims.AccountID, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}
	defer reader.Close()

	buffered := bufio.NewReaderSize(reader, 512)
	head, err := buffered.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(head))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, buffered); err != nil {
		h.logger.Warn("Credential handler: photo stream interrupted",
			"credential_id", id,
			"error", err.Error())
	}
}

func (h *Credential) Delete(w http.ResponseWriter, r *http.Request) {
	claims, id, ok := h.claimsAndID(w, r)
	if !ok {
		return
	}

	if err := h.credentials.Delete(r.Context(), claims.AccountID, id); err != nil {
		handleError(w, h.logger, err)
		return
	}

	writeSuccess(w, http.StatusOK, "Carnet eliminado exitosamente", nil)
}

func (h *Credential) claims(w http.ResponseWriter, r *http.Request) (model.Claims, bool) {
	claims, ok := h.contextManager.GetClaimsFromContext(r.Context())
	if !ok {
		handleError(w, h.logger, apierror.NewErrMissingAuthorizationToken())
		return model.Claims{}, false
	}
	return claims, true
}

func (h *Credential) claimsAndID(w http.ResponseWriter, r *http.Request) (model.Claims, int64, bool) {
	claims, ok := h.claims(w, r)
	if !ok {
		return model.Claims{}, 0, false
	}

	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, h.logger, err)
		return model.Claims{}, 0, false
	}

	return claims, id, true
}
