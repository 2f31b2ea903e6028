package kaufvertrag

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Kaufvertrag is a purchase contract. Monetary amounts are decimals;
// the Eintausch block describes an optional trade-in vehicle with its
// attachment filenames pointing into the blob store.
type Kaufvertrag struct {
	ID                        int64           `json:"id"`
	KundeName                 string          `json:"kunde_name"`
	KundeVorname              string          `json:"kunde_vorname"`
	KundePLZ                  string          `json:"kunde_plz"`
	KundeOrt                  string          `json:"kunde_ort"`
	KundeTelefon              string          `json:"kunde_telefon"`
	KundeEmail                string          `json:"kunde_email"`
	FahrzeugMarke             string          `json:"fahrzeug_marke"`
	FahrzeugModell            string          `json:"fahrzeug_modell"`
	FahrzeugChassisNr         string          `json:"fahrzeug_chassis_nr"`
	FahrzeugStammNr           string          `json:"fahrzeug_stamm_nr"`
	FahrzeugFarbe             string          `json:"fahrzeug_farbe"`
	FahrzeugInverkehrsetzung  string          `json:"fahrzeug_inverkehrsetzung"`
	FahrzeugTyp               string          `json:"fahrzeug_typ"`
	Verkaufspreis             decimal.Decimal `json:"verkaufspreis"`
	EintauschMarke            string          `json:"eintausch_marke"`
	EintauschModell           string          `json:"eintausch_modell"`
	EintauschChassisNr        string          `json:"eintausch_chassis_nr"`
	EintauschStammNr          string          `json:"eintausch_stamm_nr"`
	EintauschFarbe            string          `json:"eintausch_farbe"`
	EintauschInverkehrsetzung string          `json:"eintausch_inverkehrsetzung"`
	EintauschKmStand          string          `json:"eintausch_km_stand"`
	EintauschPreis            decimal.Decimal `json:"eintausch_preis"`
	EintauschBemerkungen      string          `json:"eintausch_bemerkungen"`
	EintauschUploadAusweis    string          `json:"eintausch_upload_ausweis"`
	EintauschUploadAussen     string          `json:"eintausch_upload_aussen"`
	EintauschUploadInnen      string          `json:"eintausch_upload_innen"`
	EintauschUploads          []string        `json:"eintausch_uploads"`
	CreatedBy                 string          `json:"created_by"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

var ErrNotFound = errors.New("kaufvertrag not found")

type KaufvertragRepository interface {
	Save(ctx context.Context, kv *Kaufvertrag) error
	FindByID(ctx context.Context, kaufvertragID int64) (*Kaufvertrag, error)
	FindAll(ctx context.Context) ([]*Kaufvertrag, error)
	Delete(ctx context.Context, kaufvertragID int64) error
}
