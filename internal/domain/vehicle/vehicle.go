package vehicle

import "time"

// Vehicle is owned by exactly one customer via CustomerID. The
// reference is checked when the vehicle is created; a vehicle can be
// deleted without touching the customer.
type Vehicle struct {
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
