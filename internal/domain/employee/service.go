package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type EmployeeService interface {
	CreateEmployee(ctx context.Context, e *Employee) (*Employee, error)
	GetEmployee(ctx context.Context, employeeID int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, employeeID int64, fields *Employee) (*Employee, error)
	DeleteEmployee(ctx context.Context, employeeID int64) error
}

var _ EmployeeService = (*employeeService)(nil)

type employeeService struct {
	repo   EmployeeRepository
	logger *slog.Logger
}

func NewEmployeeService(repo EmployeeRepository, logger *slog.Logger) EmployeeService {
	if repo == nil {
		panic("employee repository cannot be nil")
	}
	return &employeeService{
		repo:   repo,
		logger: logger.With(slog.String("component", "employeeService")),
	}
}

func validateEmployee(e *Employee) error {
	e.Vorname = strings.TrimSpace(e.Vorname)
	e.Name = strings.TrimSpace(e.Name)
	if e.Vorname == "" {
		return errors.New("vorname cannot be empty")
	}
	if e.Name == "" {
		return errors.New("name cannot be empty")
	}
	return nil
}

func (s *employeeService) CreateEmployee(ctx context.Context, e *Employee) (*Employee, error) {
	if e == nil {
		return nil, errors.New("employee cannot be nil")
	}
	if err := validateEmployee(e); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}
	if err := s.repo.Save(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new employee", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new employee: %w", err)
	}
	s.logger.InfoContext(ctx, "Successfully created new employee", slog.Int64("employeeID", e.ID))
	return e, nil
}

func (s *employeeService) GetEmployee(ctx context.Context, employeeID int64) (*Employee, error) {
	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding employee", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get employee %d: %w", employeeID, err)
	}
	return e, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing employees", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID int64, fields *Employee) (*Employee, error) {
	if fields == nil {
		return nil, errors.New("employee fields cannot be nil")
	}
	if err := validateEmployee(fields); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}

	e, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot find employee %d to update: %w", employeeID, err)
	}

	e.Vorname = fields.Vorname
	e.Name = fields.Name
	e.Strasse = fields.Strasse
	e.PLZ = fields.PLZ
	e.Ort = fields.Ort
	e.Email = fields.Email
	e.Telefon = fields.Telefon
	e.EintrittFirma = fields.EintrittFirma
	e.Geburtstag = fields.Geburtstag

	if err := s.repo.Save(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated employee", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated employee %d: %w", employeeID, err)
	}
	return e, nil
}

func (s *employeeService) DeleteEmployee(ctx context.Context, employeeID int64) error {
	if err := s.repo.Delete(ctx, employeeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting employee", slog.Any("error", err))
		return fmt.Errorf("failed to delete employee %d: %w", employeeID, err)
	}
	return nil
}
