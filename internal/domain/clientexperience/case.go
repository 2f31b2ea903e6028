package clientexperience

import (
	"context"
	"errors"
	"time"
)

const (
	StatusOffen         = "offen"
	StatusInBearbeitung = "in Bearbeitung"
)

// Case is a customer complaint ("Kundenreklamation"). CustomerID is
// optional: a case can be filed against a manually entered name when
// the complainant is not yet a customer.
type Case struct {
	ID                int64      `json:"id"`
	CustomerID        *int64     `json:"customer_id,omitempty"`
	CustomerName      string     `json:"customer_name"`
	Marke             string     `json:"marke"`
	Modell            string     `json:"modell"`
	Datum             string     `json:"datum"`
	Zeit              string     `json:"zeit"`
	Kundenreklamation string     `json:"kundenreklamation"`
	DateiUpload       string     `json:"datei_upload"`
	Solutions         []Solution `json:"solutions"`
	CreatedBy         string     `json:"created_by"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Solution is one entry of the append-only solution log.
type Solution struct {
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// Status derives the display status: a case with at least one solution
// is being worked on.
func (c *Case) Status() string {
	if len(c.Solutions) > 0 {
		return StatusInBearbeitung
	}
	return StatusOffen
}

var ErrNotFound = errors.New("client experience case not found")

type CaseRepository interface {
	Save(ctx context.Context, c *Case) error
	FindByID(ctx context.Context, caseID int64) (*Case, error)
	FindAll(ctx context.Context) ([]*Case, error)
	AppendSolution(ctx context.Context, caseID int64, solution Solution) error
}
