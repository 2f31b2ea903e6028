package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/api/middleware"
	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	service task.TaskService
	logger  *slog.Logger
}

func NewTaskHandler(s task.TaskService, l *slog.Logger) *TaskHandler {
	if s == nil {
		panic("task service cannot be nil")
	}
	return &TaskHandler{
		service: s,
		logger:  l.With("component", "TaskHandler"),
	}
}

func getTaskIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "taskID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid taskID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateTask handles POST /tasks
// @Summary Create a follow-up task
// @Description Creates a contact reminder assigned to a user. New tasks start in status "offen".
// @Tags Tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse "Task created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /tasks [post]
// @Security BearerAuth
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateTask(r.Context(), req.ToDomain(currentUsername(r)))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create task", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Task created successfully", slog.Int64("taskID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewTaskResponse(created))
}

// ListTasks handles GET /tasks
// @Summary List tasks
// @Description Lists all tasks, optionally filtered by assignee or customer.
// @Tags Tasks
// @Produce json
// @Param assigned_to query int false "Filter by assignee user ID"
// @Param customer_id query int false "Filter by customer ID"
// @Success 200 {array} dto.TaskResponse "List of tasks"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter value"
// @Router /tasks [get]
// @Security BearerAuth
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || customerID <= 0 {
			respondError(w, fmt.Errorf("%w: invalid customer_id: %s", apperrors.ErrInvalidArgument, raw))
			return
		}
		tasks, err := h.service.ListTasksForCustomer(r.Context(), customerID)
		if err != nil {
			h.logger.ErrorContext(r.Context(), "Service failed to list tasks for customer", slog.Any("error", err))
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, toTaskResponses(tasks))
		return
	}

	var assignedTo *int64
	if raw := r.URL.Query().Get("assigned_to"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, fmt.Errorf("%w: invalid assigned_to: %s", apperrors.ErrInvalidArgument, raw))
			return
		}
		assignedTo = &id
	}

	tasks, err := h.service.ListTasks(r.Context(), assignedTo)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list tasks", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// ListMyTasks handles GET /tasks/my
// @Summary List tasks assigned to the caller
// @Tags Tasks
// @Produce json
// @Success 200 {array} dto.TaskResponse "Caller's tasks"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Router /tasks/my [get]
// @Security BearerAuth
func (h *TaskHandler) ListMyTasks(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.ErrUnauthorized)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), &p.UserID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list caller's tasks", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// UpdateTaskStatus handles PUT /tasks/{taskID}/status
// @Summary Set a task's status
// @Description Moves a task between "offen" and "erledigt".
// @Tags Tasks
// @Accept json
// @Produce json
// @Param taskID path int true "Task ID" Minimum(1)
// @Param request body dto.UpdateTaskStatusRequest true "New status"
// @Success 204 "Status updated"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{taskID}/status [put]
// @Security BearerAuth
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := getTaskIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.UpdateTaskStatus(r.Context(), taskID, req.Status); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to update task status", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Task status updated",
		slog.Int64("taskID", taskID), slog.String("status", req.Status))
	respondJSON(w, http.StatusNoContent, nil)
}

// DeleteTask handles DELETE /tasks/{taskID}
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Param taskID path int true "Task ID" Minimum(1)
// @Success 204 "Task deleted"
// @Failure 404 {object} dto.ErrorResponse "Task not found"
// @Router /tasks/{taskID} [delete]
// @Security BearerAuth
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getTaskIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete task", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Task deleted successfully", slog.Int64("taskID", taskID))
	respondJSON(w, http.StatusNoContent, nil)
}

func toTaskResponses(tasks []*task.Task) []dto.TaskResponse {
	resp := make([]dto.TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = dto.NewTaskResponse(t)
	}
	return resp
}
