package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/clientexperience"
)

type CreateCaseRequest struct {
	CustomerID        *int64 `json:"customer_id,omitempty"`
	CustomerName      string `json:"customer_name"`
	Marke             string `json:"marke"`
	Modell            string `json:"modell"`
	Datum             string `json:"datum"`
	Zeit              string `json:"zeit"`
	Kundenreklamation string `json:"kundenreklamation"`
	DateiUpload       string `json:"datei_upload"`
}

func (r *CreateCaseRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("customer_name cannot be empty")
	}
	if strings.TrimSpace(r.Kundenreklamation) == "" {
		return fmt.Errorf("kundenreklamation cannot be empty")
	}
	return nil
}

func (r *CreateCaseRequest) ToDomain(createdBy string) *clientexperience.Case {
	return &clientexperience.Case{
		CustomerID:        r.CustomerID,
		CustomerName:      strings.TrimSpace(r.CustomerName),
		Marke:             strings.TrimSpace(r.Marke),
		Modell:            strings.TrimSpace(r.Modell),
		Datum:             strings.TrimSpace(r.Datum),
		Zeit:              strings.TrimSpace(r.Zeit),
		Kundenreklamation: r.Kundenreklamation,
		DateiUpload:       strings.TrimSpace(r.DateiUpload),
		Solutions:         []clientexperience.Solution{},
		CreatedBy:         createdBy,
	}
}

type AddSolutionRequest struct {
	Text string `json:"text"`
}

func (r *AddSolutionRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

type CaseResponse struct {
	ID                int64                       `json:"id"`
	CustomerID        *int64                      `json:"customer_id,omitempty"`
	CustomerName      string                      `json:"customer_name"`
	Marke             string                      `json:"marke"`
	Modell            string                      `json:"modell"`
	Datum             string                      `json:"datum"`
	Zeit              string                      `json:"zeit"`
	Kundenreklamation string                      `json:"kundenreklamation"`
	DateiUpload       string                      `json:"datei_upload"`
	Status            string                      `json:"status"`
	Solutions         []clientexperience.Solution `json:"solutions"`
	CreatedBy         string                      `json:"created_by"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func NewCaseResponse(c *clientexperience.Case) CaseResponse {
	return CaseResponse{
		ID:                c.ID,
		CustomerID:        c.CustomerID,
		CustomerName:      c.CustomerName,
		Marke:             c.Marke,
		Modell:            c.Modell,
		Datum:             c.Datum,
		Zeit:              c.Zeit,
		Kundenreklamation: c.Kundenreklamation,
		DateiUpload:       c.DateiUpload,
		Status:            c.Status(),
		Solutions:         c.Solutions,
		CreatedBy:         c.CreatedBy,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
