package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/clientexperience"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const caseColumns = `id, customer_id, customer_name, marke, modell, datum, zeit,
        kundenreklamation, datei_upload, solutions, created_by, created_at, updated_at`

type CaseRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ clientexperience.CaseRepository = (*CaseRepository)(nil)

func NewCaseRepository(db DBPool, logger *slog.Logger) *CaseRepository {
	if db == nil {
		panic("DBPool cannot be nil for CaseRepository")
	}
	return &CaseRepository{db: db, logger: logger.With("component", "CaseRepository")}
}

func (r *CaseRepository) Save(ctx context.Context, c *clientexperience.Case) error {
	if c == nil {
		return fmt.Errorf("%w: case cannot be nil", apperrors.ErrInvalidArgument)
	}

	if c.ID == 0 {
		query := `
            INSERT INTO client_experience_cases (customer_id, customer_name, marke, modell,
                datum, zeit, kundenreklamation, datei_upload, solutions, created_by,
                created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
            RETURNING id, created_at, updated_at`
		err := r.db.QueryRow(ctx, query,
			c.CustomerID, c.CustomerName, c.Marke, c.Modell,
			c.Datum, c.Zeit, c.Kundenreklamation, c.DateiUpload,
			c.Solutions, c.CreatedBy,
		).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to insert client experience case", slog.Any("error", err))
			return translateDBError(err, r.logger)
		}
		return nil
	}

	query := `
        UPDATE client_experience_cases
        SET customer_id = $1, customer_name = $2, marke = $3, modell = $4,
            datum = $5, zeit = $6, kundenreklamation = $7, datei_upload = $8,
            updated_at = NOW()
        WHERE id = $9`
	cmdTag, err := r.db.Exec(ctx, query,
		c.CustomerID, c.CustomerName, c.Marke, c.Modell,
		c.Datum, c.Zeit, c.Kundenreklamation, c.DateiUpload, c.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update client experience case", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return clientexperience.ErrNotFound
	}
	return nil
}

func (r *CaseRepository) FindByID(ctx context.Context, caseID int64) (*clientexperience.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM client_experience_cases WHERE id = $1`

	var c clientexperience.Case
	err := r.db.QueryRow(ctx, query, caseID).Scan(
		&c.ID, &c.CustomerID, &c.CustomerName, &c.Marke, &c.Modell,
		&c.Datum, &c.Zeit, &c.Kundenreklamation, &c.DateiUpload,
		&c.Solutions, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, clientexperience.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan case by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get case by ID: %w", apperrors.ErrDatabase, err)
	}
	return &c, nil
}

func (r *CaseRepository) FindAll(ctx context.Context) ([]*clientexperience.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM client_experience_cases ORDER BY id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query cases", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query cases: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	cases := make([]*clientexperience.Case, 0)
	for rows.Next() {
		var c clientexperience.Case
		err := rows.Scan(
			&c.ID, &c.CustomerID, &c.CustomerName, &c.Marke, &c.Modell,
			&c.Datum, &c.Zeit, &c.Kundenreklamation, &c.DateiUpload,
			&c.Solutions, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan case row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan case row: %w", apperrors.ErrDatabase, err)
		}
		cases = append(cases, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating case rows: %w", apperrors.ErrDatabase, err)
	}
	return cases, nil
}

// AppendSolution pushes one entry onto the JSONB log atomically; the
// derived status never needs a column of its own.
func (r *CaseRepository) AppendSolution(ctx context.Context, caseID int64, solution clientexperience.Solution) error {
	query := `
        UPDATE client_experience_cases
        SET solutions = solutions || $1::jsonb,
            updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, []clientexperience.Solution{solution}, caseID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to append solution", slog.Any("error", err))
		return fmt.Errorf("%w: failed to append solution: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return clientexperience.ErrNotFound
	}
	return nil
}
