package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type TaskService interface {
	CreateTask(ctx context.Context, t *Task) (*Task, error)
	ListTasks(ctx context.Context, assignedTo *int64) ([]*Task, error)
	ListTasksForCustomer(ctx context.Context, customerID int64) ([]*Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int64, status string) error
	DeleteTask(ctx context.Context, taskID int64) error
	ListOpenTasksDueOn(ctx context.Context, date string) ([]*Task, error)
}

var _ TaskService = (*taskService)(nil)

type taskService struct {
	repo   TaskRepository
	logger *slog.Logger
}

func NewTaskService(repo TaskRepository, logger *slog.Logger) TaskService {
	if repo == nil {
		panic("task repository cannot be nil")
	}
	return &taskService{
		repo:   repo,
		logger: logger.With(slog.String("component", "taskService")),
	}
}

func (s *taskService) CreateTask(ctx context.Context, t *Task) (*Task, error) {
	if t == nil {
		return nil, errors.New("task cannot be nil")
	}
	t.CustomerName = strings.TrimSpace(t.CustomerName)
	if t.CustomerName == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer name is empty")
		return nil, errors.New("customer_name cannot be empty")
	}
	if t.AssignedTo <= 0 {
		s.logger.WarnContext(ctx, "Validation failed: assigned_to is missing")
		return nil, errors.New("assigned_to must reference a user")
	}
	if t.Status == "" {
		t.Status = StatusOffen
	}

	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new task", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new task: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new task", slog.Int64("taskID", t.ID))
	return t, nil
}

func (s *taskService) ListTasks(ctx context.Context, assignedTo *int64) ([]*Task, error) {
	var (
		tasks []*Task
		err   error
	)
	if assignedTo != nil {
		tasks, err = s.repo.FindByAssignee(ctx, *assignedTo)
	} else {
		tasks, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing tasks", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) ListTasksForCustomer(ctx context.Context, customerID int64) ([]*Task, error) {
	tasks, err := s.repo.FindByCustomerID(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing tasks for customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list tasks for customer %d: %w", customerID, err)
	}
	return tasks, nil
}

func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID int64, status string) error {
	if status != StatusOffen && status != StatusErledigt {
		s.logger.WarnContext(ctx, "Rejected invalid task status", slog.String("status", status))
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	if err := s.repo.SetStatus(ctx, taskID, status); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error updating task status", slog.Any("error", err))
		return fmt.Errorf("failed to update status for task %d: %w", taskID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated task status", slog.Int64("taskID", taskID), slog.String("status", status))
	return nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID int64) error {
	if err := s.repo.Delete(ctx, taskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting task", slog.Any("error", err))
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	return nil
}

func (s *taskService) ListOpenTasksDueOn(ctx context.Context, date string) ([]*Task, error) {
	tasks, err := s.repo.FindOpenDueOn(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing due tasks", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list open tasks due on %s: %w", date, err)
	}
	return tasks, nil
}
