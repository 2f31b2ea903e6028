package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"autohaus-crm/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

type principalContextKey struct{}

// Principal is the authenticated session extracted from the bearer
// token. Handlers read it to attribute writes and enforce ownership.
type Principal struct {
	UserID   int64
	Username string
	Name     string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// PrincipalFromContext returns the session set by AuthMiddleware. The
// second return is false on routes that bypass authentication.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// ContextWithPrincipal is used by tests to fake an authenticated session.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

func AuthMiddleware(cfg config.AuthConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := parseBearerToken(r, cfg.JWTSecret)
			if err != nil {
				logger.Warn("AuthMiddleware: rejected request", "error", err)
				http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAdmin gates a route on the admin role. It must sit inside
// AuthMiddleware; without a principal the request is rejected.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, `{"error":{"message":"Unauthorized"}}`, http.StatusUnauthorized)
				return
			}
			if !p.IsAdmin() {
				logger.Warn("RequireAdmin: forbidden", "username", p.Username, "role", p.Role)
				http.Error(w, `{"error":{"message":"Forbidden"}}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseBearerToken(r *http.Request, secret string) (Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Principal{}, fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return Principal{}, fmt.Errorf("invalid Authorization header format")
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, fmt.Errorf("unexpected claims type")
	}

	p := Principal{}
	if sub, ok := claims["sub"].(float64); ok {
		p.UserID = int64(sub)
	}
	if username, ok := claims["username"].(string); ok {
		p.Username = username
	}
	if name, ok := claims["name"].(string); ok {
		p.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		p.Role = role
	}
	if p.Username == "" {
		return Principal{}, fmt.Errorf("token carries no username claim")
	}
	return p, nil
}
