package customer

import "time"

// Customer is a dealership customer. KundenNr is the human-assigned
// business key; it is unique and used as the CSV join key, distinct
// from the internal ID assigned by the store.
type Customer struct {
	ID            int64            `json:"id"`
	KundenNr      string           `json:"kunden_nr"`
	Vorname       string           `json:"vorname"`
	Name          string           `json:"name"`
	Firma         string           `json:"firma"`
	Strasse       string           `json:"strasse"`
	PLZ           string           `json:"plz"`
	Ort           string           `json:"ort"`
	TelefonP      string           `json:"telefon_p"`
	TelefonG      string           `json:"telefon_g"`
	Natel         string           `json:"natel"`
	EmailP        string           `json:"email_p"`
	EmailG        string           `json:"email_g"`
	Geburtsdatum  string           `json:"geburtsdatum"`
	Bemerkungen   []Remark         `json:"bemerkungen"`
	Korrespondenz []Correspondence `json:"korrespondenz"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// Remark is one entry of the append-only Bemerkungen list.
type Remark struct {
	Text      string    `json:"text"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

// Correspondence is one entry of the append-only Korrespondenz list.
type Correspondence struct {
	Bemerkung string    `json:"bemerkung"`
	Datum     string    `json:"datum"`
	Zeit      string    `json:"zeit"`
	Textfeld  string    `json:"textfeld"`
	Upload1   string    `json:"upload1"`
	Upload2   string    `json:"upload2"`
	Upload3   string    `json:"upload3"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

func NewCustomer(kundenNr string) *Customer {
	now := time.Now()
	return &Customer{
		KundenNr:      kundenNr,
		Bemerkungen:   []Remark{},
		Korrespondenz: []Correspondence{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ApplyFields overwrites all mapped attribute fields from src,
// leaving ID, KundenNr, the append-only lists and CreatedAt untouched.
// Last write wins; there is no per-field diffing.
func (c *Customer) ApplyFields(src *Customer) {
	c.Vorname = src.Vorname
	c.Name = src.Name
	c.Firma = src.Firma
	c.Strasse = src.Strasse
	c.PLZ = src.PLZ
	c.Ort = src.Ort
	c.TelefonP = src.TelefonP
	c.TelefonG = src.TelefonG
	c.Natel = src.Natel
	c.EmailP = src.EmailP
	c.EmailG = src.EmailG
	c.Geburtsdatum = src.Geburtsdatum
	c.UpdatedAt = time.Now()
}

func (c *Customer) AddRemark(text, user string) {
	c.Bemerkungen = append(c.Bemerkungen, Remark{
		Text:      text,
		User:      user,
		Timestamp: time.Now(),
	})
	c.UpdatedAt = time.Now()
}

func (c *Customer) AddCorrespondence(entry Correspondence) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	c.Korrespondenz = append(c.Korrespondenz, entry)
	c.UpdatedAt = time.Now()
}
