package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/vehicle"
)

type VehicleRequest struct {
	CustomerID       int64  `json:"customer_id"`
	Marke            string `json:"marke"`
	Modell           string `json:"modell"`
	ChassisNr        string `json:"chassis_nr"`
	StammNr          string `json:"stamm_nr"`
	TypenscheinNr    string `json:"typenschein_nr"`
	Farbe            string `json:"farbe"`
	Inverkehrsetzung string `json:"inverkehrsetzung"`
	KmStand          string `json:"km_stand"`
	VistaNr          string `json:"vista_nr"`
	Verkaeufer       string `json:"verkaeufer"`
	Kundenberater    string `json:"kundenberater"`
}

func (r *VehicleRequest) Validate() error {
	if r.CustomerID <= 0 {
		return fmt.Errorf("customer_id must be positive")
	}
	for field, value := range map[string]string{
		"marke":      r.Marke,
		"modell":     r.Modell,
		"chassis_nr": r.ChassisNr,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}
	return nil
}

func (r *VehicleRequest) ToDomain() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		CustomerID:       r.CustomerID,
		Marke:            strings.TrimSpace(r.Marke),
		Modell:           strings.TrimSpace(r.Modell),
		ChassisNr:        strings.TrimSpace(r.ChassisNr),
		StammNr:          strings.TrimSpace(r.StammNr),
		TypenscheinNr:    strings.TrimSpace(r.TypenscheinNr),
		Farbe:            strings.TrimSpace(r.Farbe),
		Inverkehrsetzung: strings.TrimSpace(r.Inverkehrsetzung),
		KmStand:          strings.TrimSpace(r.KmStand),
		VistaNr:          strings.TrimSpace(r.VistaNr),
		Verkaeufer:       strings.TrimSpace(r.Verkaeufer),
		Kundenberater:    strings.TrimSpace(r.Kundenberater),
	}
}

type VehicleResponse struct {
	ID               int64     `json:"id"`
	CustomerID       int64     `json:"customer_id"`
	Marke            string    `json:"marke"`
	Modell           string    `json:"modell"`
	ChassisNr        string    `json:"chassis_nr"`
	StammNr          string    `json:"stamm_nr"`
	TypenscheinNr    string    `json:"typenschein_nr"`
	Farbe            string    `json:"farbe"`
	Inverkehrsetzung string    `json:"inverkehrsetzung"`
	KmStand          string    `json:"km_stand"`
	VistaNr          string    `json:"vista_nr"`
	Verkaeufer       string    `json:"verkaeufer"`
	Kundenberater    string    `json:"kundenberater"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:               v.ID,
		CustomerID:       v.CustomerID,
		Marke:            v.Marke,
		Modell:           v.Modell,
		ChassisNr:        v.ChassisNr,
		StammNr:          v.StammNr,
		TypenscheinNr:    v.TypenscheinNr,
		Farbe:            v.Farbe,
		Inverkehrsetzung: v.Inverkehrsetzung,
		KmStand:          v.KmStand,
		VistaNr:          v.VistaNr,
		Verkaeufer:       v.Verkaeufer,
		Kundenberater:    v.Kundenberater,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}
