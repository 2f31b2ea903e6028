package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/kaufvertrag"

	"github.com/shopspring/decimal"
)

type KaufvertragRequest struct {
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
}

func (r *KaufvertragRequest) Validate() error {
	if strings.TrimSpace(r.KundeName) == "" {
		return fmt.Errorf("kunde_name cannot be empty")
	}
	if strings.TrimSpace(r.FahrzeugMarke) == "" || strings.TrimSpace(r.FahrzeugModell) == "" {
		return fmt.Errorf("fahrzeug_marke and fahrzeug_modell cannot be empty")
	}
	if r.Verkaufspreis.IsNegative() {
		return fmt.Errorf("verkaufspreis cannot be negative")
	}
	if r.EintauschPreis.IsNegative() {
		return fmt.Errorf("eintausch_preis cannot be negative")
	}
	return nil
}

func (r *KaufvertragRequest) ToDomain(createdBy string) *kaufvertrag.Kaufvertrag {
	uploads := r.EintauschUploads
	if uploads == nil {
		uploads = []string{}
	}
	return &kaufvertrag.Kaufvertrag{
		KundeName:                 strings.TrimSpace(r.KundeName),
		KundeVorname:              strings.TrimSpace(r.KundeVorname),
		KundePLZ:                  strings.TrimSpace(r.KundePLZ),
		KundeOrt:                  strings.TrimSpace(r.KundeOrt),
		KundeTelefon:              strings.TrimSpace(r.KundeTelefon),
		KundeEmail:                strings.TrimSpace(r.KundeEmail),
		FahrzeugMarke:             strings.TrimSpace(r.FahrzeugMarke),
		FahrzeugModell:            strings.TrimSpace(r.FahrzeugModell),
		FahrzeugChassisNr:         strings.TrimSpace(r.FahrzeugChassisNr),
		FahrzeugStammNr:           strings.TrimSpace(r.FahrzeugStammNr),
		FahrzeugFarbe:             strings.TrimSpace(r.FahrzeugFarbe),
		FahrzeugInverkehrsetzung:  strings.TrimSpace(r.FahrzeugInverkehrsetzung),
		FahrzeugTyp:               strings.TrimSpace(r.FahrzeugTyp),
		Verkaufspreis:             r.Verkaufspreis,
		EintauschMarke:            strings.TrimSpace(r.EintauschMarke),
		EintauschModell:           strings.TrimSpace(r.EintauschModell),
		EintauschChassisNr:        strings.TrimSpace(r.EintauschChassisNr),
		EintauschStammNr:          strings.TrimSpace(r.EintauschStammNr),
		EintauschFarbe:            strings.TrimSpace(r.EintauschFarbe),
		EintauschInverkehrsetzung: strings.TrimSpace(r.EintauschInverkehrsetzung),
		EintauschKmStand:          strings.TrimSpace(r.EintauschKmStand),
		EintauschPreis:            r.EintauschPreis,
		EintauschBemerkungen:      r.EintauschBemerkungen,
		EintauschUploadAusweis:    strings.TrimSpace(r.EintauschUploadAusweis),
		EintauschUploadAussen:     strings.TrimSpace(r.EintauschUploadAussen),
		EintauschUploadInnen:      strings.TrimSpace(r.EintauschUploadInnen),
		EintauschUploads:          uploads,
		CreatedBy:                 createdBy,
	}
}

type KaufvertragResponse struct {
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

func NewKaufvertragResponse(kv *kaufvertrag.Kaufvertrag) KaufvertragResponse {
	return KaufvertragResponse{
		ID:                        kv.ID,
		KundeName:                 kv.KundeName,
		KundeVorname:              kv.KundeVorname,
		KundePLZ:                  kv.KundePLZ,
		KundeOrt:                  kv.KundeOrt,
		KundeTelefon:              kv.KundeTelefon,
		KundeEmail:                kv.KundeEmail,
		FahrzeugMarke:             kv.FahrzeugMarke,
		FahrzeugModell:            kv.FahrzeugModell,
		FahrzeugChassisNr:         kv.FahrzeugChassisNr,
		FahrzeugStammNr:           kv.FahrzeugStammNr,
		FahrzeugFarbe:             kv.FahrzeugFarbe,
		FahrzeugInverkehrsetzung:  kv.FahrzeugInverkehrsetzung,
		FahrzeugTyp:               kv.FahrzeugTyp,
		Verkaufspreis:             kv.Verkaufspreis,
		EintauschMarke:            kv.EintauschMarke,
		EintauschModell:           kv.EintauschModell,
		EintauschChassisNr:        kv.EintauschChassisNr,
		EintauschStammNr:          kv.EintauschStammNr,
		EintauschFarbe:            kv.EintauschFarbe,
		EintauschInverkehrsetzung: kv.EintauschInverkehrsetzung,
		EintauschKmStand:          kv.EintauschKmStand,
		EintauschPreis:            kv.EintauschPreis,
		EintauschBemerkungen:      kv.EintauschBemerkungen,
		EintauschUploadAusweis:    kv.EintauschUploadAusweis,
		EintauschUploadAussen:     kv.EintauschUploadAussen,
		EintauschUploadInnen:      kv.EintauschUploadInnen,
		EintauschUploads:          kv.EintauschUploads,
		CreatedBy:                 kv.CreatedBy,
		CreatedAt:                 kv.CreatedAt,
		UpdatedAt:                 kv.UpdatedAt,
	}
}
