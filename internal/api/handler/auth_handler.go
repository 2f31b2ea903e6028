package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/api/middleware"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	users  user.UserService
	cfg    config.AuthConfig
	logger *slog.Logger
}

func NewAuthHandler(users user.UserService, cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	if users == nil {
		panic("user service cannot be nil")
	}
	return &AuthHandler{
		users:  users,
		cfg:    cfg,
		logger: l.With("component", "AuthHandler"),
	}
}

// Login handles POST /auth/login
// @Summary Log in with username and password
// @Description Verifies credentials and returns a signed bearer token plus the user profile.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Token issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 401 {object} dto.ErrorResponse "Bad credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode login request", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Login failed", slog.String("username", req.Username), slog.Any("error", err))
		respondError(w, err)
		return
	}

	tokenString, err := h.signToken(u)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to sign token", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "User logged in", slog.String("username", u.Username))
	respondJSON(w, http.StatusOK, dto.LoginResponse{
		Token: tokenString,
		User:  dto.NewUserResponse(u),
	})
}

// Me handles GET /auth/me
// @Summary Return the authenticated user
// @Description Resolves the bearer token to the stored user record.
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.UserResponse "Authenticated user"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.ErrUnauthorized)
		return
	}

	u, err := h.users.GetUser(r.Context(), p.UserID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to resolve principal to user", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewUserResponse(u))
}

func (h *AuthHandler) signToken(u *user.User) (string, error) {
	expiry := h.cfg.TokenExpiry
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"name":     u.Name,
		"role":     u.Role,
		"exp":      time.Now().Add(expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign token: %v", apperrors.ErrInternalServer, err)
	}
	return signed, nil
}
