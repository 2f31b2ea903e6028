package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/infrastructure/monitoring"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const vehicleColumns = `id, customer_id, marke, modell, chassis_nr, stamm_nr,
        typenschein_nr, farbe, inverkehrsetzung, km_stand, vista_nr,
        verkaeufer, kundenberater, created_at, updated_at`

type VehicleRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ vehicle.VehicleRepository = (*VehicleRepository)(nil)

func NewVehicleRepository(db DBPool, logger *slog.Logger) *VehicleRepository {
	if db == nil {
		panic("DBPool cannot be nil for VehicleRepository")
	}
	return &VehicleRepository{db: db, logger: logger.With("component", "VehicleRepository")}
}

func (r *VehicleRepository) Save(ctx context.Context, v *vehicle.Vehicle) error {
	if v == nil {
		return fmt.Errorf("%w: vehicle cannot be nil", apperrors.ErrInvalidArgument)
	}
	if v.ID == 0 {
		return r.createVehicle(ctx, v)
	}
	return r.updateVehicle(ctx, v)
}

func (r *VehicleRepository) createVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	startTime := time.Now()

	query := `
        INSERT INTO vehicles (customer_id, marke, modell, chassis_nr, stamm_nr,
            typenschein_nr, farbe, inverkehrsetzung, km_stand, vista_nr,
            verkaeufer, kundenberater, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		v.CustomerID,
		v.Marke,
		v.Modell,
		v.ChassisNr,
		v.StammNr,
		v.TypenscheinNr,
		v.Farbe,
		v.Inverkehrsetzung,
		v.KmStand,
		v.VistaNr,
		v.Verkaeufer,
		v.Kundenberater,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	status := "success"
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("CreateVehicle", status, time.Since(startTime))

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert vehicle", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}

	r.logger.InfoContext(ctx, "Vehicle inserted successfully", slog.Int64("vehicleID", v.ID))
	return nil
}

func (r *VehicleRepository) updateVehicle(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
        UPDATE vehicles
        SET customer_id = $1,
            marke = $2,
            modell = $3,
            chassis_nr = $4,
            stamm_nr = $5,
            typenschein_nr = $6,
            farbe = $7,
            inverkehrsetzung = $8,
            km_stand = $9,
            vista_nr = $10,
            verkaeufer = $11,
            kundenberater = $12,
            updated_at = NOW()
        WHERE id = $13`

	cmdTag, err := r.db.Exec(ctx, query,
		v.CustomerID,
		v.Marke,
		v.Modell,
		v.ChassisNr,
		v.StammNr,
		v.TypenscheinNr,
		v.Farbe,
		v.Inverkehrsetzung,
		v.KmStand,
		v.VistaNr,
		v.Verkaeufer,
		v.Kundenberater,
		v.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update vehicle", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var v vehicle.Vehicle
	err := r.db.QueryRow(ctx, query, vehicleID).Scan(
		&v.ID,
		&v.CustomerID,
		&v.Marke,
		&v.Modell,
		&v.ChassisNr,
		&v.StammNr,
		&v.TypenscheinNr,
		&v.Farbe,
		&v.Inverkehrsetzung,
		&v.KmStand,
		&v.VistaNr,
		&v.Verkaeufer,
		&v.Kundenberater,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vehicle.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan vehicle by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get vehicle by ID: %w", apperrors.ErrDatabase, err)
	}
	return &v, nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id ASC`
	return r.queryVehicles(ctx, query)
}

func (r *VehicleRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*vehicle.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE customer_id = $1 ORDER BY id ASC`
	return r.queryVehicles(ctx, query, customerID)
}

func (r *VehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]*vehicle.Vehicle, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query vehicles", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query vehicles: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	vehicles := make([]*vehicle.Vehicle, 0)
	for rows.Next() {
		var v vehicle.Vehicle
		err := rows.Scan(
			&v.ID,
			&v.CustomerID,
			&v.Marke,
			&v.Modell,
			&v.ChassisNr,
			&v.StammNr,
			&v.TypenscheinNr,
			&v.Farbe,
			&v.Inverkehrsetzung,
			&v.KmStand,
			&v.VistaNr,
			&v.Verkaeufer,
			&v.Kundenberater,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan vehicle row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan vehicle row: %w", apperrors.ErrDatabase, err)
		}
		vehicles = append(vehicles, &v)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating vehicle rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating vehicle rows: %w", apperrors.ErrDatabase, err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, vehicleID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, vehicleID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete vehicle", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete vehicle: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}
