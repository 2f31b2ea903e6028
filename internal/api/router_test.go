package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"autohaus-crm/internal/api"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/domain/clientexperience"
	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/domain/dashboard"
	"autohaus-crm/internal/domain/employee"
	"autohaus-crm/internal/domain/kaufvertrag"
	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/domain/user"
	"autohaus-crm/internal/domain/vehicle"

	"github.com/stretchr/testify/assert"
)

// The routing tests only exercise requests that are rejected by the
// auth middleware or the router itself, so the service stubs are never
// called and can stay method-free.
func stubDependencies() api.Dependencies {
	return api.Dependencies{
		Customers:     struct{ customer.CustomerService }{},
		Vehicles:      struct{ vehicle.VehicleService }{},
		Employees:     struct{ employee.EmployeeService }{},
		Tasks:         struct{ task.TaskService }{},
		Cases:         struct{ clientexperience.CaseService }{},
		Kaufvertraege: struct{ kaufvertrag.KaufvertragService }{},
		Users:         struct{ user.UserService }{},
		Dashboard:     struct{ dashboard.DashboardService }{},
	}
}

func routerTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Auth:      config.AuthConfig{Enabled: true, JWTSecret: "test-secret"},
			RateLimit: config.RateLimitConfig{Enabled: false},
		},
		Metrics: config.MetricsConfig{Path: "/metrics"},
	}
}

func TestSetupRouter_ResourceRoutesLiveUnderAPIPrefix(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := api.SetupRouter(stubDependencies(), routerTestConfig(), logger)

	serve := func(method, target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
		return rec
	}

	t.Run("gated resource routes exist under /api", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/customers").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/customers/import").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/vehicles/import").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/tasks/my").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodGet, "/api/dashboard/stats").Code)
		assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/users").Code)
	})

	t.Run("resource routes are not mounted at the root", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(http.MethodGet, "/customers").Code)
		assert.Equal(t, http.StatusNotFound, serve(http.MethodPost, "/vehicles/import").Code)
	})

	t.Run("operational endpoints stay at the root", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/health").Code)
		assert.Equal(t, http.StatusOK, serve(http.MethodGet, "/metrics").Code)
	})
}
