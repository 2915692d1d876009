package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/model"
)

const maxBodySize = 1 << 20

// Accepted spellings of each logical field, in order of preference.
var (
	passwordKeys  = []string{"password", "contrasena", "contraseña"}
	kindKeys      = []string{"kind", "tipo", "type"}
	naturalIDKeys = []string{"natural_id", "codigo_estudiante", "cedula"}
	firstNameKeys = []string{"first_name", "nombre"}
	lastNameKeys  = []string{"last_name", "apellidos"}
	emailKeys     = []string{"email", "correo"}
	codeKeys      = []string{"code", "codigo"}
	jobTitleKeys  = []string{"job_title", "cargo"}
)

// fields is a decoded JSON object whose aliases are resolved on read.
type fields map[string]any

func decodeFields(w http.ResponseWriter, r *http.Request) (fields, error) {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer body.Close()

	f := fields{}
	if err := json.NewDecoder(body).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return nil, apierror.NewErrValidation("request body must be a JSON object")
	}
	return f, nil
}

// first returns the first non-empty value among keys, trimmed. Numbers are
// accepted for identifiers sent as JSON numbers.
func (f fields) first(keys ...string) string {
	for _, key := range keys {
		switch v := f[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// password is not trimmed.
func (f fields) password() string {
	for _, key := range passwordKeys {
		if v, ok := f[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// kind resolves the identity kind. When absent it is inferred from which
// identifier alias was sent, falling back to fallback.
func (f fields) kind(fallback model.IdentityKind) (model.IdentityKind, error) {
	raw := f.first(kindKeys...)
	if raw == "" {
		switch {
		case f.first("codigo_estudiante") != "":
			return model.KindStudent, nil
		case f.first("cedula") != "":
			return model.KindEmployee, nil
		case fallback != "":
			return fallback, nil
		}
		return "", apierror.NewErrValidation("kind is required")
	}

	kind, ok := model.ParseIdentityKind(raw)
	if !ok {
		return "", apierror.NewErrValidation(fmt.Sprintf("unsupported kind %q", raw))
	}
	return kind, nil
}

func (f fields) email() (string, error) {
	email := f.first(emailKeys...)
	if email != "" && !govalidator.IsEmail(email) {
		return "", apierror.NewErrValidation("email is not valid")
	}
	return email, nil
}

func (f fields) registration() (model.RegistrationRequest, error) {
	kind, err := f.kind("")
	if err != nil {
		return model.RegistrationRequest{}, err
	}
	email, err := f.email()
	if err != nil {
		return model.RegistrationRequest{}, err
	}

	return model.RegistrationRequest{
		Kind:      kind,
		NaturalID: f.first(naturalIDKeys...),
		Email:     email,
		Password:  f.password(),
		FirstName: f.first(firstNameKeys...),
		LastName:  f.first(lastNameKeys...),
	}, nil
}

func (f fields) jobTitle() *string {
	title := f.first(jobTitleKeys...)
	if title == "" {
		return nil
	}
	return &title
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apierror.NewErrValidation("id must be a positive integer")
	}
	return id, nil
}
