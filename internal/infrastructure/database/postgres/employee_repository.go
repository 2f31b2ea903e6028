package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/employee"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const employeeColumns = `id, vorname, name, strasse, plz, ort, email, telefon,
        eintritt_firma, geburtstag, created_at, updated_at`

type EmployeeRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ employee.EmployeeRepository = (*EmployeeRepository)(nil)

func NewEmployeeRepository(db DBPool, logger *slog.Logger) *EmployeeRepository {
	if db == nil {
		panic("DBPool cannot be nil for EmployeeRepository")
	}
	return &EmployeeRepository{db: db, logger: logger.With("component", "EmployeeRepository")}
}

func (r *EmployeeRepository) Save(ctx context.Context, e *employee.Employee) error {
	if e == nil {
		return fmt.Errorf("%w: employee cannot be nil", apperrors.ErrInvalidArgument)
	}

	if e.ID == 0 {
		query := `
            INSERT INTO employees (vorname, name, strasse, plz, ort, email, telefon,
                eintritt_firma, geburtstag, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
            RETURNING id, created_at, updated_at`
		err := r.db.QueryRow(ctx, query,
			e.Vorname, e.Name, e.Strasse, e.PLZ, e.Ort,
			e.Email, e.Telefon, e.EintrittFirma, e.Geburtstag,
		).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to insert employee", slog.Any("error", err))
			return translateDBError(err, r.logger)
		}
		return nil
	}

	query := `
        UPDATE employees
        SET vorname = $1, name = $2, strasse = $3, plz = $4, ort = $5,
            email = $6, telefon = $7, eintritt_firma = $8, geburtstag = $9,
            updated_at = NOW()
        WHERE id = $10`
	cmdTag, err := r.db.Exec(ctx, query,
		e.Vorname, e.Name, e.Strasse, e.PLZ, e.Ort,
		e.Email, e.Telefon, e.EintrittFirma, e.Geburtstag, e.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update employee", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, employeeID int64) (*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	var e employee.Employee
	err := r.db.QueryRow(ctx, query, employeeID).Scan(
		&e.ID, &e.Vorname, &e.Name, &e.Strasse, &e.PLZ, &e.Ort,
		&e.Email, &e.Telefon, &e.EintrittFirma, &e.Geburtstag,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan employee by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get employee by ID: %w", apperrors.ErrDatabase, err)
	}
	return &e, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name ASC, vorname ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query employees", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query employees: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(
			&e.ID, &e.Vorname, &e.Name, &e.Strasse, &e.PLZ, &e.Ort,
			&e.Email, &e.Telefon, &e.EintrittFirma, &e.Geburtstag,
			&e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan employee row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan employee row: %w", apperrors.ErrDatabase, err)
		}
		employees = append(employees, &e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating employee rows: %w", apperrors.ErrDatabase, err)
	}
	return employees, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, employeeID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, employeeID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete employee", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete employee: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return employee.ErrNotFound
	}
	return nil
}
