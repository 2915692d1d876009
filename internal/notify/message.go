// Package notify delivers verification codes by email, or to the log in development.
package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/dtroode/idwallet-server/internal/model"
)

const subject = "Código de Verificación - HoldMyIDBack"

var bodyTemplate = template.Must(template.New("code").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Verificación de Identidad - HoldMyIDBack</h2>
  <p>Se ha solicitado {{.Action}} en tu cartera digital.</p>
  <div style="background-color: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0;">
    <p style="margin: 0; font-size: 12px; color: #666;">Tu código de verificación es:</p>
    <p style="margin: 10px 0 0 0; font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #7B3FE4;">{{.Code}}</p>
  </div>
  <p style="color: #666; font-size: 12px;">Este código expira en {{.Minutes}} minutos. Si no solicitaste esto, por favor ignora este correo.</p>
  <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
  <p style="color: #999; font-size: 11px; margin: 0;">HoldMyIDBack - Cartera Digital de Credenciales</p>
</div>`))

type bodyData struct {
	Action  string
	Code    string
	Minutes int
}

func action(purpose model.CodePurpose) string {
	if purpose == model.PurposeRegistration {
		return "crear tu cuenta"
	}
	return "agregar una nueva credencial"
}

func renderBody(code string, purpose model.CodePurpose, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := bodyTemplate.Execute(&buf, bodyData{
		Action:  action(purpose),
		Code:    code,
		Minutes: int(ttl.Minutes()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render email body: %w", err)
	}
	return buf.String(), nil
}
