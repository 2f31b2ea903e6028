package clientexperience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

type CaseService interface {
	CreateCase(ctx context.Context, c *Case) (*Case, error)
	GetCase(ctx context.Context, caseID int64) (*Case, error)
	ListCases(ctx context.Context) ([]*Case, error)
	AddSolution(ctx context.Context, caseID int64, text, user string) error
}

var _ CaseService = (*caseService)(nil)

type caseService struct {
	repo   CaseRepository
	logger *slog.Logger
}

func NewCaseService(repo CaseRepository, logger *slog.Logger) CaseService {
	if repo == nil {
		panic("case repository cannot be nil")
	}
	return &caseService{
		repo:   repo,
		logger: logger.With(slog.String("component", "caseService")),
	}
}

func (s *caseService) CreateCase(ctx context.Context, c *Case) (*Case, error) {
	s.logger.InfoContext(ctx, "Attempting to create new client experience case")

	if c == nil {
		return nil, errors.New("case cannot be nil")
	}
	c.CustomerName = strings.TrimSpace(c.CustomerName)
	c.Kundenreklamation = strings.TrimSpace(c.Kundenreklamation)
	if c.CustomerName == "" {
		s.logger.WarnContext(ctx, "Validation failed: customer name is empty")
		return nil, errors.New("customer_name cannot be empty")
	}
	if c.Kundenreklamation == "" {
		s.logger.WarnContext(ctx, "Validation failed: kundenreklamation is empty")
		return nil, errors.New("kundenreklamation cannot be empty")
	}
	if c.Solutions == nil {
		c.Solutions = []Solution{}
	}

	if err := s.repo.Save(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new case", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new case: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new case", slog.Int64("caseID", c.ID))
	return c, nil
}

func (s *caseService) GetCase(ctx context.Context, caseID int64) (*Case, error) {
	c, err := s.repo.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding case", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get case %d: %w", caseID, err)
	}
	return c, nil
}

func (s *caseService) ListCases(ctx context.Context) ([]*Case, error) {
	cases, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing cases", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (s *caseService) AddSolution(ctx context.Context, caseID int64, text, user string) error {
	s.logger.InfoContext(ctx, "Attempting to add solution", slog.Int64("caseID", caseID))

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.WarnContext(ctx, "Validation failed: solution text is empty")
		return errors.New("solution text cannot be empty")
	}

	solution := Solution{Text: text, User: user, Timestamp: time.Now()}
	if err := s.repo.AppendSolution(ctx, caseID, solution); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error appending solution", slog.Any("error", err))
		return fmt.Errorf("failed to append solution for case %d: %w", caseID, err)
	}

	s.logger.InfoContext(ctx, "Successfully added solution")
	return nil
}
