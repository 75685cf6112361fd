package api

import (
	"encoding/json"
	"net/http"

	"hrdesk/internal/platform/logger"
)

// ErrorBody is the JSON error shape shared by every JSON endpoint.
type ErrorBody struct {
	Error string `json:"error"`
}

type MessageBody struct {
	Message string `json:"message"`
}

type SuccessBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Warn().Err(err).Msg("write json failed")
	}
}

func Fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, ErrorBody{Error: message})
}

func Message(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, r, status, MessageBody{Message: message})
}

func Success(w http.ResponseWriter, r *http.Request, message string) {
	WriteJSON(w, r, http.StatusOK, SuccessBody{Success: true, Message: message})
}

// InternalError logs err and replies with a generic 500.
func InternalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromContext(r.Context()).Error().Err(err).Msg(msg)
	Fail(w, r, http.StatusInternalServerError, "Internal server error")
}
