package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/infrastructure/monitoring"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

// translateDBError maps driver errors onto the shared sentinels so
// callers never have to inspect pgconn error codes themselves.
func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}
		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

const customerColumns = `id, kunden_nr, vorname, name, firma, strasse, plz, ort,
        telefon_p, telefon_g, natel, email_p, email_g, geburtsdatum,
        bemerkungen, korrespondenz, created_at, updated_at`

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.ID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to insert new customer", slog.String("kundenNr", cust.KundenNr))
	startTime := time.Now()

	query := `
        INSERT INTO customers (kunden_nr, vorname, name, firma, strasse, plz, ort,
            telefon_p, telefon_g, natel, email_p, email_g, geburtsdatum,
            bemerkungen, korrespondenz, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.Bemerkungen,
		cust.Korrespondenz,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	status := "success"
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("CreateCustomer", status, time.Since(startTime))

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation", slog.String("kundenNr", cust.KundenNr))
			return fmt.Errorf("%w: %s", customer.ErrDuplicateKundenNr, cust.KundenNr)
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) error {
	r.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", cust.ID))

	query := `
        UPDATE customers
        SET kunden_nr = $1,
            vorname = $2,
            name = $3,
            firma = $4,
            strasse = $5,
            plz = $6,
            ort = $7,
            telefon_p = $8,
            telefon_g = $9,
            natel = $10,
            email_p = $11,
            email_g = $12,
            geburtsdatum = $13,
            updated_at = NOW()
        WHERE id = $14`

	cmdTag, err := r.db.Exec(ctx, query,
		cust.KundenNr,
		cust.Vorname,
		cust.Name,
		cust.Firma,
		cust.Strasse,
		cust.PLZ,
		cust.Ort,
		cust.TelefonP,
		cust.TelefonG,
		cust.Natel,
		cust.EmailP,
		cust.EmailG,
		cust.Geburtsdatum,
		cust.ID,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.String("kundenNr", cust.KundenNr))
			return fmt.Errorf("%w: %s", customer.ErrDuplicateKundenNr, cust.KundenNr)
		}
		r.logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer updated successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return r.findOne(ctx, query, customerID)
}

func (r *CustomerRepository) FindByKundenNr(ctx context.Context, kundenNr string) (*customer.Customer, error) {
	startTime := time.Now()
	query := `SELECT ` + customerColumns + ` FROM customers WHERE kunden_nr = $1`
	cust, err := r.findOne(ctx, query, kundenNr)

	status := "success"
	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("FindCustomerByKundenNr", status, time.Since(startTime))
	return cust, err
}

func (r *CustomerRepository) findOne(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var cust customer.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&cust.ID,
		&cust.KundenNr,
		&cust.Vorname,
		&cust.Name,
		&cust.Firma,
		&cust.Strasse,
		&cust.PLZ,
		&cust.Ort,
		&cust.TelefonP,
		&cust.TelefonG,
		&cust.Natel,
		&cust.EmailP,
		&cust.EmailG,
		&cust.Geburtsdatum,
		&cust.Bemerkungen,
		&cust.Korrespondenz,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer: %w", apperrors.ErrDatabase, err)
	}
	return &cust, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*customer.Customer, error) {
	r.logger.DebugContext(ctx, "Attempting to find all customers")

	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers := make([]*customer.Customer, 0)
	for rows.Next() {
		var cust customer.Customer
		err := rows.Scan(
			&cust.ID,
			&cust.KundenNr,
			&cust.Vorname,
			&cust.Name,
			&cust.Firma,
			&cust.Strasse,
			&cust.PLZ,
			&cust.Ort,
			&cust.TelefonP,
			&cust.TelefonG,
			&cust.Natel,
			&cust.EmailP,
			&cust.EmailG,
			&cust.Geburtsdatum,
			&cust.Bemerkungen,
			&cust.Korrespondenz,
			&cust.CreatedAt,
			&cust.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, err)
		}
		customers = append(customers, &cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.DebugContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	query := `DELETE FROM customers WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Customer deleted successfully", slog.Int64("customerID", customerID))
	return nil
}

// AppendRemark pushes one entry onto the JSONB list atomically so
// concurrent appends cannot lose each other.
func (r *CustomerRepository) AppendRemark(ctx context.Context, customerID int64, remark customer.Remark) error {
	query := `
        UPDATE customers
        SET bemerkungen = bemerkungen || $1::jsonb,
            updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, []customer.Remark{remark}, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to append remark", slog.Any("error", err))
		return fmt.Errorf("%w: failed to append remark: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func (r *CustomerRepository) AppendCorrespondence(ctx context.Context, customerID int64, entry customer.Correspondence) error {
	query := `
        UPDATE customers
        SET korrespondenz = korrespondenz || $1::jsonb,
            updated_at = NOW()
        WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, []customer.Correspondence{entry}, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to append correspondence", slog.Any("error", err))
		return fmt.Errorf("%w: failed to append correspondence: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}
