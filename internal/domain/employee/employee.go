package employee

import (
	"context"
	"errors"
	"time"
)

type Employee struct {
	ID            int64     `json:"id"`
	Vorname       string    `json:"vorname"`
	Name          string    `json:"name"`
	Strasse       string    `json:"strasse"`
	PLZ           string    `json:"plz"`
	Ort           string    `json:"ort"`
	Email         string    `json:"email"`
	Telefon       string    `json:"telefon"`
	EintrittFirma string    `json:"eintritt_firma"`
	Geburtstag    string    `json:"geburtstag"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var ErrNotFound = errors.New("employee not found")

type EmployeeRepository interface {
	Save(ctx context.Context, e *Employee) error
	FindByID(ctx context.Context, employeeID int64) (*Employee, error)
	FindAll(ctx context.Context) ([]*Employee, error)
	Delete(ctx context.Context, employeeID int64) error
}
