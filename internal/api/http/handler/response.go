package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/idwallet-server/internal/apierror"
	"github.com/dtroode/idwallet-server/internal/logger"
)

// envelope is the success body shared by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Token   string `json:"token,omitempty"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

// handleError renders err. Errors that are not an APIError become a 500 and
// their text never reaches the client.
func handleError(w http.ResponseWriter, log *logger.Logger, err error) {
	apiErr, ok := apierror.As(err)
	if !ok {
		log.Error("HTTP handler: unexpected error",
			"error", err.Error())
		apiErr = apierror.NewErrInternalServerError(err)
	} else if apiErr.Status >= http.StatusInternalServerError {
		log.Error("HTTP handler: request failed",
			"code", apiErr.Code,
			"error", apiErr.Error())
	}

	writeJSON(w, apiErr.Status, errorEnvelope{
		Success: false,
		Code:    string(apiErr.Code),
		Message: apiErr.Message,
	})
}

// WriteError renders err with the error envelope. Middlewares use it so that
// every rejection has the same shape.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	handleError(w, log, err)
}
