package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	service user.UserService
	logger  *slog.Logger
}

func NewUserHandler(s user.UserService, l *slog.Logger) *UserHandler {
	if s == nil {
		panic("user service cannot be nil")
	}
	return &UserHandler{
		service: s,
		logger:  l.With("component", "UserHandler"),
	}
}

// CreateUser handles POST /users
// @Summary Create a user account
// @Description Creates a login account. Admin only.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User creation request"
// @Success 201 {object} dto.UserResponse "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 409 {object} dto.ErrorResponse "Username already taken"
// @Router /users [post]
// @Security BearerAuth
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateUser(r.Context(), req.Username, req.Name, req.Role, req.Password)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create user", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User created", slog.String("username", created.Username))
	respondJSON(w, http.StatusCreated, dto.NewUserResponse(created))
}

// ListUsers handles GET /users
// @Summary List user accounts
// @Tags Users
// @Produce json
// @Success 200 {array} dto.UserResponse "List of users"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list users", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.NewUserResponse(u)
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteUser handles DELETE /users/{userID}
// @Summary Delete a user account
// @Tags Users
// @Produce json
// @Param userID path int true "User ID" Minimum(1)
// @Success 204 "User deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid user ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{userID} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "userID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, fmt.Errorf("%w: invalid userID format: %s", apperrors.ErrInvalidArgument, idStr))
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete user", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User deleted", slog.Int64("userID", id))
	respondJSON(w, http.StatusNoContent, nil)
}
