package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/employee"
)

type EmployeeRequest struct {
	Vorname       string `json:"vorname"`
	Name          string `json:"name"`
	Strasse       string `json:"strasse"`
	PLZ           string `json:"plz"`
	Ort           string `json:"ort"`
	Email         string `json:"email"`
	Telefon       string `json:"telefon"`
	EintrittFirma string `json:"eintritt_firma"`
	Geburtstag    string `json:"geburtstag"`
}

func (r *EmployeeRequest) Validate() error {
	if strings.TrimSpace(r.Vorname) == "" || strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("vorname and name cannot be empty")
	}
	return nil
}

func (r *EmployeeRequest) ToDomain() *employee.Employee {
	return &employee.Employee{
		Vorname:       strings.TrimSpace(r.Vorname),
		Name:          strings.TrimSpace(r.Name),
		Strasse:       strings.TrimSpace(r.Strasse),
		PLZ:           strings.TrimSpace(r.PLZ),
		Ort:           strings.TrimSpace(r.Ort),
		Email:         strings.TrimSpace(r.Email),
		Telefon:       strings.TrimSpace(r.Telefon),
		EintrittFirma: strings.TrimSpace(r.EintrittFirma),
		Geburtstag:    strings.TrimSpace(r.Geburtstag),
	}
}

type EmployeeResponse struct {
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

func NewEmployeeResponse(e *employee.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		Vorname:       e.Vorname,
		Name:          e.Name,
		Strasse:       e.Strasse,
		PLZ:           e.PLZ,
		Ort:           e.Ort,
		Email:         e.Email,
		Telefon:       e.Telefon,
		EintrittFirma: e.EintrittFirma,
		Geburtstag:    e.Geburtstag,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
