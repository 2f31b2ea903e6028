package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/api/middleware"
	"autohaus-crm/internal/domain/clientexperience"
	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/domain/employee"
	"autohaus-crm/internal/domain/kaufvertrag"
	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/pkg/apperrors"

	"log/slog"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	if payload == nil {
		w.WriteHeader(status)
		return
	}
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, message, field := http.StatusInternalServerError, "An unexpected error occurred.", ""
	var validationError *apperrors.ValidationError
	var appErr *apperrors.AppError

	switch {
	case isNotFound(err):
		status, message = http.StatusNotFound, "Resource not found."
	case errors.Is(err, user.ErrBadCredentials):
		status, message = http.StatusUnauthorized, "Invalid username or password."
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "Authentication required."
	case errors.Is(err, customer.ErrDuplicateKundenNr),
		errors.Is(err, user.ErrDuplicateUsername),
		errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, task.ErrInvalidStatus):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	case errors.As(err, &validationError):
		status, message, field = http.StatusBadRequest, validationError.Message, validationError.Field
	case errors.As(err, &appErr):
		message = appErr.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.ErrorResponse{
		Error: dto.ErrorDetail{
			Message: message,
			Field:   field,
		},
	}
	respondJSON(w, status, resp)
}

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, customer.ErrNotFound) ||
		errors.Is(err, vehicle.ErrNotFound) ||
		errors.Is(err, employee.ErrNotFound) ||
		errors.Is(err, task.ErrNotFound) ||
		errors.Is(err, user.ErrNotFound) ||
		errors.Is(err, clientexperience.ErrNotFound) ||
		errors.Is(err, kaufvertrag.ErrNotFound)
}

// currentUsername resolves the acting username for audit fields. On
// routes with auth disabled there is no principal; writes are then
// attributed to "system".
func currentUsername(r *http.Request) string {
	if p, ok := middleware.PrincipalFromContext(r.Context()); ok && p.Username != "" {
		return p.Username
	}
	return "system"
}
