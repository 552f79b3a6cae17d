package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"blogstarter/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, ErrorResponse{Error: message}, statusCode)
}

func WriteJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// StatusFor maps an error kind onto an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrInternal):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// WriteServiceError hides the details of unclassified errors from clients
// and logs them instead.
func WriteServiceError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		WriteError(w, "internal server error", status)
		return
	}
	WriteError(w, err.Error(), status)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return strings.Join(msgs, "; ")
}

// decodeJSON reads the body into dst and validates it. It writes the 400
// response itself and reports false on failure.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}
