package vehicle

import (
	"autohaus-crm/internal/domain/customer"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type VehicleService interface {
	CreateVehicle(ctx context.Context, v *Vehicle) (*Vehicle, error)
	GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error)
	ListVehicles(ctx context.Context, customerID *int64) ([]*Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicleID int64, fields *Vehicle) (*Vehicle, error)
	DeleteVehicle(ctx context.Context, vehicleID int64) error
}

var _ VehicleService = (*vehicleService)(nil)

type vehicleService struct {
	repo      VehicleRepository
	customers customer.CustomerService
	logger    *slog.Logger
}

func NewVehicleService(repo VehicleRepository, customerService customer.CustomerService, logger *slog.Logger) VehicleService {
	if repo == nil {
		panic("vehicle repository cannot be nil")
	}
	if customerService == nil {
		panic("customer service cannot be nil")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewVehicleService, using default stderr handler")
	}
	return &vehicleService{
		repo:      repo,
		customers: customerService,
		logger:    logger.With(slog.String("component", "vehicleService")),
	}
}

func validateVehicle(v *Vehicle) error {
	v.Marke = strings.TrimSpace(v.Marke)
	v.Modell = strings.TrimSpace(v.Modell)
	v.ChassisNr = strings.TrimSpace(v.ChassisNr)

	switch {
	case v.Marke == "":
		return errors.New("marke cannot be empty")
	case v.Modell == "":
		return errors.New("modell cannot be empty")
	case v.ChassisNr == "":
		return errors.New("chassis_nr cannot be empty")
	}
	return nil
}

func (s *vehicleService) CreateVehicle(ctx context.Context, v *Vehicle) (*Vehicle, error) {
	s.logger.InfoContext(ctx, "Attempting to create new vehicle")

	if v == nil {
		return nil, errors.New("vehicle cannot be nil")
	}
	if err := validateVehicle(v); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}

	if _, err := s.customers.GetCustomer(ctx, v.CustomerID); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			s.logger.WarnContext(ctx, "Owning customer does not exist", slog.Int64("customerID", v.CustomerID))
			return nil, fmt.Errorf("customer %d does not exist: %w", v.CustomerID, customer.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify customer %d: %w", v.CustomerID, err)
	}

	if err := s.repo.Save(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new vehicle", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new vehicle: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully created new vehicle", slog.Int64("vehicleID", v.ID))
	return v, nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, vehicleID int64) (*Vehicle, error) {
	s.logger.DebugContext(ctx, "Attempting to get vehicle by ID", slog.Int64("vehicleID", vehicleID))

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found by repository")
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding vehicle", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get vehicle %d: %w", vehicleID, err)
	}

	return v, nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, customerID *int64) ([]*Vehicle, error) {
	s.logger.DebugContext(ctx, "Attempting to list vehicles")

	var (
		vehicles []*Vehicle
		err      error
	)
	if customerID != nil {
		vehicles, err = s.repo.FindByCustomerID(ctx, *customerID)
	} else {
		vehicles, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing vehicles", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved vehicles", slog.Int("count", len(vehicles)))
	return vehicles, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicleID int64, fields *Vehicle) (*Vehicle, error) {
	s.logger.InfoContext(ctx, "Attempting to update vehicle", slog.Int64("vehicleID", vehicleID))

	if fields == nil {
		return nil, errors.New("vehicle fields cannot be nil")
	}
	if err := validateVehicle(fields); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}

	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found by repository for update")
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("cannot find vehicle %d to update: %w", vehicleID, err)
	}

	v.Marke = fields.Marke
	v.Modell = fields.Modell
	v.ChassisNr = fields.ChassisNr
	v.StammNr = fields.StammNr
	v.TypenscheinNr = fields.TypenscheinNr
	v.Farbe = fields.Farbe
	v.Inverkehrsetzung = fields.Inverkehrsetzung
	v.KmStand = fields.KmStand
	v.VistaNr = fields.VistaNr
	v.Verkaeufer = fields.Verkaeufer
	v.Kundenberater = fields.Kundenberater

	if err := s.repo.Save(ctx, v); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated vehicle", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save updated vehicle %d: %w", vehicleID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated vehicle")
	return v, nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, vehicleID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete vehicle", slog.Int64("vehicleID", vehicleID))

	if err := s.repo.Delete(ctx, vehicleID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Vehicle not found by repository")
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting vehicle", slog.Any("error", err))
		return fmt.Errorf("failed to delete vehicle %d: %w", vehicleID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted vehicle")
	return nil
}
