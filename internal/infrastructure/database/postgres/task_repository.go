package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"autohaus-crm/internal/domain/task"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `id, customer_id, customer_name, datum_kontakt, zeitpunkt_kontakt,
        bemerkungen, telefon_nummer, assigned_to, assigned_to_name, status,
        created_by, created_at, updated_at`

type TaskRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ task.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db DBPool, logger *slog.Logger) *TaskRepository {
	if db == nil {
		panic("DBPool cannot be nil for TaskRepository")
	}
	return &TaskRepository{db: db, logger: logger.With("component", "TaskRepository")}
}

func (r *TaskRepository) Save(ctx context.Context, t *task.Task) error {
	if t == nil {
		return fmt.Errorf("%w: task cannot be nil", apperrors.ErrInvalidArgument)
	}

	if t.ID == 0 {
		query := `
            INSERT INTO tasks (customer_id, customer_name, datum_kontakt, zeitpunkt_kontakt,
                bemerkungen, telefon_nummer, assigned_to, assigned_to_name, status,
                created_by, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
            RETURNING id, created_at, updated_at`
		err := r.db.QueryRow(ctx, query,
			t.CustomerID, t.CustomerName, t.DatumKontakt, t.ZeitpunktKontakt,
			t.Bemerkungen, t.TelefonNummer, t.AssignedTo, t.AssignedToName,
			t.Status, t.CreatedBy,
		).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to insert task", slog.Any("error", err))
			return translateDBError(err, r.logger)
		}
		return nil
	}

	query := `
        UPDATE tasks
        SET customer_id = $1, customer_name = $2, datum_kontakt = $3,
            zeitpunkt_kontakt = $4, bemerkungen = $5, telefon_nummer = $6,
            assigned_to = $7, assigned_to_name = $8, status = $9,
            updated_at = NOW()
        WHERE id = $10`
	cmdTag, err := r.db.Exec(ctx, query,
		t.CustomerID, t.CustomerName, t.DatumKontakt, t.ZeitpunktKontakt,
		t.Bemerkungen, t.TelefonNummer, t.AssignedTo, t.AssignedToName,
		t.Status, t.ID,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update task", slog.Any("error", err))
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	var t task.Task
	err := r.db.QueryRow(ctx, query, taskID).Scan(
		&t.ID, &t.CustomerID, &t.CustomerName, &t.DatumKontakt, &t.ZeitpunktKontakt,
		&t.Bemerkungen, &t.TelefonNummer, &t.AssignedTo, &t.AssignedToName,
		&t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan task by ID", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get task by ID: %w", apperrors.ErrDatabase, err)
	}
	return &t, nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY datum_kontakt ASC, id ASC`
	return r.queryTasks(ctx, query)
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, userID int64) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1 ORDER BY datum_kontakt ASC, id ASC`
	return r.queryTasks(ctx, query, userID)
}

func (r *TaskRepository) FindByCustomerID(ctx context.Context, customerID int64) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE customer_id = $1 ORDER BY datum_kontakt ASC, id ASC`
	return r.queryTasks(ctx, query, customerID)
}

// FindOpenDueOn feeds the morning reminder job. Date is YYYY-MM-DD.
func (r *TaskRepository) FindOpenDueOn(ctx context.Context, date string) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 AND datum_kontakt = $2 ORDER BY zeitpunkt_kontakt ASC, id ASC`
	return r.queryTasks(ctx, query, task.StatusOffen, date)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query tasks", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query tasks: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	tasks := make([]*task.Task, 0)
	for rows.Next() {
		var t task.Task
		err := rows.Scan(
			&t.ID, &t.CustomerID, &t.CustomerName, &t.DatumKontakt, &t.ZeitpunktKontakt,
			&t.Bemerkungen, &t.TelefonNummer, &t.AssignedTo, &t.AssignedToName,
			&t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan task row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan task row: %w", apperrors.ErrDatabase, err)
		}
		tasks = append(tasks, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating task rows: %w", apperrors.ErrDatabase, err)
	}
	return tasks, nil
}

func (r *TaskRepository) SetStatus(ctx context.Context, taskID int64, status string) error {
	query := `UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, status, taskID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update task status", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update task status: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute delete task", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete task: %w", apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return task.ErrNotFound
	}
	return nil
}
