package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/task"
)

type CreateTaskRequest struct {
	CustomerID       int64  `json:"customer_id"`
	CustomerName     string `json:"customer_name"`
	DatumKontakt     string `json:"datum_kontakt"`
	ZeitpunktKontakt string `json:"zeitpunkt_kontakt"`
	Bemerkungen      string `json:"bemerkungen"`
	TelefonNummer    string `json:"telefon_nummer"`
	AssignedTo       int64  `json:"assigned_to"`
	AssignedToName   string `json:"assigned_to_name"`
}

func (r *CreateTaskRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customer_id must be positive")
	}
	if strings.TrimSpace(r.DatumKontakt) == "" {
		return fmt.Errorf("datum_kontakt cannot be empty")
	}
	if r.AssignedTo <= 0 {
		return fmt.Errorf("assigned_to must be positive")
	}
	return nil
}

func (r *CreateTaskRequest) ToDomain(createdBy string) *task.Task {
	return &task.Task{
		CustomerID:       r.CustomerID,
		CustomerName:     strings.TrimSpace(r.CustomerName),
		DatumKontakt:     strings.TrimSpace(r.DatumKontakt),
		ZeitpunktKontakt: strings.TrimSpace(r.ZeitpunktKontakt),
		Bemerkungen:      r.Bemerkungen,
		TelefonNummer:    strings.TrimSpace(r.TelefonNummer),
		AssignedTo:       r.AssignedTo,
		AssignedToName:   strings.TrimSpace(r.AssignedToName),
		Status:           task.StatusOffen,
		CreatedBy:        createdBy,
	}
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type TaskResponse struct {
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

func NewTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:               t.ID,
		CustomerID:       t.CustomerID,
		CustomerName:     t.CustomerName,
		DatumKontakt:     t.DatumKontakt,
		ZeitpunktKontakt: t.ZeitpunktKontakt,
		Bemerkungen:      t.Bemerkungen,
		TelefonNummer:    t.TelefonNummer,
		AssignedTo:       t.AssignedTo,
		AssignedToName:   t.AssignedToName,
		Status:           t.Status,
		CreatedBy:        t.CreatedBy,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
