package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/domain/employee"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type EmployeeHandler struct {
	service employee.EmployeeService
	logger  *slog.Logger
}

func NewEmployeeHandler(s employee.EmployeeService, l *slog.Logger) *EmployeeHandler {
	if s == nil {
		panic("employee service cannot be nil")
	}
	return &EmployeeHandler{
		service: s,
		logger:  l.With("component", "EmployeeHandler"),
	}
}

func getEmployeeIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "employeeID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid employeeID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateEmployee handles POST /employees
// @Summary Create an employee record
// @Tags Employees
// @Accept json
// @Produce json
// @Param request body dto.EmployeeRequest true "Employee creation request"
// @Success 201 {object} dto.EmployeeResponse "Employee created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /employees [post]
// @Security BearerAuth
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateEmployee(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create employee", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Employee created successfully", slog.Int64("employeeID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewEmployeeResponse(created))
}

// GetEmployee handles GET /employees/{employeeID}
// @Summary Retrieve employee details
// @Tags Employees
// @Produce json
// @Param employeeID path int true "Employee ID" Minimum(1)
// @Success 200 {object} dto.EmployeeResponse "Employee details"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{employeeID} [get]
// @Security BearerAuth
func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := getEmployeeIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	e, err := h.service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, employee.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get employee", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewEmployeeResponse(e))
}

// ListEmployees handles GET /employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Success 200 {array} dto.EmployeeResponse "List of employees"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /employees [get]
// @Security BearerAuth
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list employees", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = dto.NewEmployeeResponse(e)
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateEmployee handles PUT /employees/{employeeID}
// @Summary Update employee fields
// @Tags Employees
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID" Minimum(1)
// @Param request body dto.EmployeeRequest true "New field values"
// @Success 200 {object} dto.EmployeeResponse "Updated employee"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{employeeID} [put]
// @Security BearerAuth
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := getEmployeeIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.EmployeeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateEmployee(r.Context(), employeeID, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to update employee", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Employee updated successfully", slog.Int64("employeeID", employeeID))
	respondJSON(w, http.StatusOK, dto.NewEmployeeResponse(updated))
}

// DeleteEmployee handles DELETE /employees/{employeeID}
// @Summary Delete an employee record
// @Tags Employees
// @Produce json
// @Param employeeID path int true "Employee ID" Minimum(1)
// @Success 204 "Employee deleted"
// @Failure 404 {object} dto.ErrorResponse "Employee not found"
// @Router /employees/{employeeID} [delete]
// @Security BearerAuth
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := getEmployeeIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteEmployee(r.Context(), employeeID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete employee", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Employee deleted successfully", slog.Int64("employeeID", employeeID))
	respondJSON(w, http.StatusNoContent, nil)
}
