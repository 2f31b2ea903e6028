package task

import (
	"context"
	"errors"
	"time"
)

const (
	StatusOffen    = "offen"
	StatusErledigt = "erledigt"
)

// Task is a customer follow-up assigned to a user. DatumKontakt holds
// the contact date as YYYY-MM-DD, matching what the forms submit.
type Task struct {
	ID               int64     `json:"id"`
	CustomerID       int64     `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	DatumKontakt     string    `json:"datum_kontakt"`
	ZeitpunktKontakt string    `json:"zeitpunkt_kontakt"`
	Bemerkungen      string    `json:"bemerkungen"`
	TelefonNummer    string    `json:"telefon_nummer"`
	AssignedTo       int64     `json:"assigned_to"`
	AssignedToName   string    `json:"assigned_to_name"`
	Status           string    `json:"status"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

var (
	ErrNotFound      = errors.New("task not found")
	ErrInvalidStatus = errors.New("invalid task status")
)

type TaskRepository interface {
	Save(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, taskID int64) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindByAssignee(ctx context.Context, userID int64) ([]*Task, error)
	FindByCustomerID(ctx context.Context, customerID int64) ([]*Task, error)
	FindOpenDueOn(ctx context.Context, date string) ([]*Task, error)
	SetStatus(ctx context.Context, taskID int64, status string) error
	Delete(ctx context.Context, taskID int64) error
}
