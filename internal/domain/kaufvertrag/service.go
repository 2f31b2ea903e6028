package kaufvertrag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

type KaufvertragService interface {
	CreateKaufvertrag(ctx context.Context, kv *Kaufvertrag) (*Kaufvertrag, error)
	GetKaufvertrag(ctx context.Context, kaufvertragID int64) (*Kaufvertrag, error)
	ListKaufvertraege(ctx context.Context) ([]*Kaufvertrag, error)
	DeleteKaufvertrag(ctx context.Context, kaufvertragID int64) error
}

var _ KaufvertragService = (*kaufvertragService)(nil)

type kaufvertragService struct {
	repo   KaufvertragRepository
	logger *slog.Logger
}

func NewKaufvertragService(repo KaufvertragRepository, logger *slog.Logger) KaufvertragService {
	if repo == nil {
		panic("kaufvertrag repository cannot be nil")
	}
	return &kaufvertragService{
		repo:   repo,
		logger: logger.With(slog.String("component", "kaufvertragService")),
	}
}

func (s *kaufvertragService) CreateKaufvertrag(ctx context.Context, kv *Kaufvertrag) (*Kaufvertrag, error) {
	s.logger.InfoContext(ctx, "Attempting to create new kaufvertrag")

	if kv == nil {
		return nil, errors.New("kaufvertrag cannot be nil")
	}
	kv.KundeName = strings.TrimSpace(kv.KundeName)
	kv.FahrzeugMarke = strings.TrimSpace(kv.FahrzeugMarke)
	kv.FahrzeugModell = strings.TrimSpace(kv.FahrzeugModell)
	if kv.KundeName == "" {
		s.logger.WarnContext(ctx, "Validation failed: kunde_name is empty")
		return nil, errors.New("kunde_name cannot be empty")
	}
	if kv.FahrzeugMarke == "" || kv.FahrzeugModell == "" {
		s.logger.WarnContext(ctx, "Validation failed: fahrzeug marke/modell is empty")
		return nil, errors.New("fahrzeug_marke and fahrzeug_modell cannot be empty")
	}
	if kv.Verkaufspreis.IsNegative() {
		s.logger.WarnContext(ctx, "Validation failed: negative verkaufspreis")
		return nil, errors.New("verkaufspreis cannot be negative")
	}
	if kv.EintauschPreis.IsNegative() {
		s.logger.WarnContext(ctx, "Validation failed: negative eintausch_preis")
		return nil, errors.New("eintausch_preis cannot be negative")
	}
	if kv.EintauschUploads == nil {
		kv.EintauschUploads = []string{}
	}

	if err := s.repo.Save(ctx, kv); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new kaufvertrag", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new kaufvertrag: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new kaufvertrag", slog.Int64("kaufvertragID", kv.ID))
	return kv, nil
}

func (s *kaufvertragService) GetKaufvertrag(ctx context.Context, kaufvertragID int64) (*Kaufvertrag, error) {
	kv, err := s.repo.FindByID(ctx, kaufvertragID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding kaufvertrag", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get kaufvertrag %d: %w", kaufvertragID, err)
	}
	return kv, nil
}

func (s *kaufvertragService) ListKaufvertraege(ctx context.Context) ([]*Kaufvertrag, error) {
	list, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing kaufvertraege", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list kaufvertraege: %w", err)
	}
	return list, nil
}

func (s *kaufvertragService) DeleteKaufvertrag(ctx context.Context, kaufvertragID int64) error {
	if err := s.repo.Delete(ctx, kaufvertragID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting kaufvertrag", slog.Any("error", err))
		return fmt.Errorf("failed to delete kaufvertrag %d: %w", kaufvertragID, err)
	}
	return nil
}
