package handler

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dtroode/idwallet-server/internal/model"
)

type accountView struct {
	ID            int64      `json:"id"`
	FirstName     string     `json:"nombre"`
	LastName      string     `json:"apellidos"`
	Email         string     `json:"email"`
	StudentCode   *string    `json:"codigo_estudiante,omitempty"`
	NationalID    *string    `json:"cedula,omitempty"`
	Role          model.Role `json:"rol"`
	EmailVerified bool       `json:"email_verificado"`
	Active        bool       `json:"activo"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newAccountView(a model.Account) accountView {
	return accountView{
		ID:            a.ID,
		FirstName:     a.FirstName,
		LastName:      a.LastName,
		Email:         a.Email,
		StudentCode:   a.StudentCode,
		NationalID:    a.NationalID,
		Role:          a.Role,
		EmailVerified: a.EmailVerified,
		Active:        a.Active,
		CreatedAt:     a.CreatedAt,
	}
}

type credentialView struct {
	ID        int64              `json:"id"`
	Kind      model.IdentityKind `json:"tipo"`
	Title     string             `json:"tipo_credencial"`
	Number    string             `json:"numero"`
	NaturalID string             `json:"identificador"`
	QRCode    string             `json:"codigo_qr,omitempty"`
	HasPhoto  bool               `json:"tiene_foto"`
	Active    bool               `json:"activo"`
	CreatedAt time.Time          `json:"fecha_expedicion"`
}

// newCredentialView renders a credential. The QR image is included as a data
// URL only when withQR is set.
func newCredentialView(c model.Credential, withQR bool) credentialView {
	view := credentialView{
		ID:        c.ID,
		Kind:      c.Kind,
		Title:     c.Title,
		Number:    c.Number,
		NaturalID: c.NaturalID,
		HasPhoto:  c.PhotoKey != nil,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
	}
	if withQR && len(c.QRCode) > 0 {
		view.QRCode = fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(c.QRCode))
	}
	return view
}

type dispatchView struct {
	MaskedEmail string `json:"correo"`
	TTLMinutes  int    `json:"tiempoExpiracion"`
	Code        string `json:"codigo,omitempty"`
}

func newDispatchView(d model.CodeDispatch) dispatchView {
	return dispatchView{MaskedEmail: d.MaskedEmail, TTLMinutes: d.TTLMinutes, Code: d.Code}
}
