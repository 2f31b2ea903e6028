package dto

import (
	"fmt"
	"strings"
	"time"

	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/importer"
)

type CustomerRequest struct {
	KundenNr     string `json:"kunden_nr"`
	Vorname      string `json:"vorname"`
	Name         string `json:"name"`
	Firma        string `json:"firma"`
	Strasse      string `json:"strasse"`
	PLZ          string `json:"plz"`
	Ort          string `json:"ort"`
	TelefonP     string `json:"telefon_p"`
	TelefonG     string `json:"telefon_g"`
	Natel        string `json:"natel"`
	EmailP       string `json:"email_p"`
	EmailG       string `json:"email_g"`
	Geburtsdatum string `json:"geburtsdatum"`
}

func (r *CustomerRequest) Validate() error {
	for field, value := range map[string]string{
		"kunden_nr": r.KundenNr,
		"vorname":   r.Vorname,
		"name":      r.Name,
		"strasse":   r.Strasse,
		"plz":       r.PLZ,
		"ort":       r.Ort,
	} {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}
	return nil
}

// ToDomain maps the request onto a fresh customer record. Append-only
// lists are never writable through this payload.
func (r *CustomerRequest) ToDomain() *customer.Customer {
	cust := customer.NewCustomer(strings.TrimSpace(r.KundenNr))
	cust.Vorname = strings.TrimSpace(r.Vorname)
	cust.Name = strings.TrimSpace(r.Name)
	cust.Firma = strings.TrimSpace(r.Firma)
	cust.Strasse = strings.TrimSpace(r.Strasse)
	cust.PLZ = strings.TrimSpace(r.PLZ)
	cust.Ort = strings.TrimSpace(r.Ort)
	cust.TelefonP = strings.TrimSpace(r.TelefonP)
	cust.TelefonG = strings.TrimSpace(r.TelefonG)
	cust.Natel = strings.TrimSpace(r.Natel)
	cust.EmailP = strings.TrimSpace(r.EmailP)
	cust.EmailG = strings.TrimSpace(r.EmailG)
	cust.Geburtsdatum = strings.TrimSpace(r.Geburtsdatum)
	return cust
}

type AddRemarkRequest struct {
	Text string `json:"text"`
}

func (r *AddRemarkRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	return nil
}

type AddCorrespondenceRequest struct {
	Bemerkung string `json:"bemerkung"`
	Datum     string `json:"datum"`
	Zeit      string `json:"zeit"`
	Textfeld  string `json:"textfeld"`
	Upload1   string `json:"upload1"`
	Upload2   string `json:"upload2"`
	Upload3   string `json:"upload3"`
}

func (r *AddCorrespondenceRequest) Validate() error {
	if strings.TrimSpace(r.Bemerkung) == "" && strings.TrimSpace(r.Textfeld) == "" {
		return fmt.Errorf("bemerkung or textfeld must be provided")
	}
	return nil
}

func (r *AddCorrespondenceRequest) ToDomain(user string) customer.Correspondence {
	return customer.Correspondence{
		Bemerkung: strings.TrimSpace(r.Bemerkung),
		Datum:     strings.TrimSpace(r.Datum),
		Zeit:      strings.TrimSpace(r.Zeit),
		Textfeld:  r.Textfeld,
		Upload1:   strings.TrimSpace(r.Upload1),
		Upload2:   strings.TrimSpace(r.Upload2),
		Upload3:   strings.TrimSpace(r.Upload3),
		User:      user,
	}
}

type CustomerResponse struct {
	ID            int64                     `json:"id"`
	KundenNr      string                    `json:"kunden_nr"`
	Vorname       string                    `json:"vorname"`
	Name          string                    `json:"name"`
	Firma         string                    `json:"firma"`
	Strasse       string                    `json:"strasse"`
	PLZ           string                    `json:"plz"`
	Ort           string                    `json:"ort"`
	TelefonP      string                    `json:"telefon_p"`
	TelefonG      string                    `json:"telefon_g"`
	Natel         string                    `json:"natel"`
	EmailP        string                    `json:"email_p"`
	EmailG        string                    `json:"email_g"`
	Geburtsdatum  string                    `json:"geburtsdatum"`
	Bemerkungen   []customer.Remark         `json:"bemerkungen"`
	Korrespondenz []customer.Correspondence `json:"korrespondenz"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func NewCustomerResponse(cust *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            cust.ID,
		KundenNr:      cust.KundenNr,
		Vorname:       cust.Vorname,
		Name:          cust.Name,
		Firma:         cust.Firma,
		Strasse:       cust.Strasse,
		PLZ:           cust.PLZ,
		Ort:           cust.Ort,
		TelefonP:      cust.TelefonP,
		TelefonG:      cust.TelefonG,
		Natel:         cust.Natel,
		EmailP:        cust.EmailP,
		EmailG:        cust.EmailG,
		Geburtsdatum:  cust.Geburtsdatum,
		Bemerkungen:   cust.Bemerkungen,
		Korrespondenz: cust.Korrespondenz,
		CreatedAt:     cust.CreatedAt,
		UpdatedAt:     cust.UpdatedAt,
	}
}

// ImportResponse is the summary returned by the CSV import endpoints.
// Message follows the established wording, e.g. "12 Kunden importiert,
// 2 Fehler".
type ImportResponse struct {
	Message  string              `json:"message"`
	Imported int                 `json:"imported"`
	Errors   []importer.RowError `json:"errors"`
}

func NewImportResponse(result *importer.ImportResult, entityLabel string) ImportResponse {
	message := fmt.Sprintf("%d %s importiert", result.Imported, entityLabel)
	if len(result.Errors) > 0 {
		message = fmt.Sprintf("%s, %d Fehler", message, len(result.Errors))
	}
	return ImportResponse{
		Message:  message,
		Imported: result.Imported,
		Errors:   result.Errors,
	}
}
