package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/event"
	"autohaus-crm/internal/infrastructure/monitoring"
)

// Customer CSV contract. Column order in the upload is free; names
// must match exactly. Columns beyond the required set may be absent.
var (
	customerColumns = []string{
		"kunden_nr", "vorname", "name", "firma", "strasse", "plz", "ort",
		"telefon_p", "telefon_g", "natel", "email_p", "email_g",
		"geburtsdatum", "bemerkungen",
	}
	customerRequired = []string{"kunden_nr", "vorname", "name", "strasse", "plz", "ort"}
)

// CustomerImporter reconciles a customer CSV against the store: rows
// whose kunden_nr already exists update that customer in place, all
// others create new records. Imports are serialized per importer so
// two concurrent uploads cannot interleave their upserts.
type CustomerImporter struct {
	repo      customer.CustomerRepository
	publisher event.EventPublisher
	logger    *slog.Logger
	mu        sync.Mutex
}

func NewCustomerImporter(repo customer.CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) *CustomerImporter {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerImporter{
		repo:      repo,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "customerImporter")),
	}
}

// Import runs one full batch. The returned error is non-nil only for
// fatal conditions (unreadable file, missing required column); every
// per-row failure lands in the result and the batch keeps going.
func (i *CustomerImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	start := time.Now()
	i.logger.InfoContext(ctx, "Starting customer import")

	cr := newCSVReader(r)
	idx, err := readHeader(cr, customerRequired)
	if err != nil {
		i.logger.WarnContext(ctx, "Customer import aborted", slog.Any("error", err))
		return nil, err
	}

	result := &ImportResult{Errors: []RowError{}}
	rowErrors, err := scanRows(cr, idx, func(rowNum int, record []string) *RowError {
		if rowErr := i.applyRow(ctx, idx, rowNum, record); rowErr != nil {
			return rowErr
		}
		result.Imported++
		return nil
	})
	if err != nil {
		i.logger.ErrorContext(ctx, "Customer import aborted mid-file", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrEmptyFile, err)
	}
	result.Errors = append(result.Errors, rowErrors...)

	monitoring.RecordImportRows("customer", result.Imported, len(result.Errors))
	monitoring.ObserveImportDuration("customer", time.Since(start))
	if i.publisher != nil {
		if err := i.publisher.PublishImportCompleted(ctx, event.ImportCompletedEvent{
			Timestamp:  time.Now(),
			Entity:     "customer",
			Imported:   result.Imported,
			ErrorCount: len(result.Errors),
		}); err != nil {
			i.logger.WarnContext(ctx, "Failed to publish import completed event", slog.Any("error", err))
		}
	}

	i.logger.InfoContext(ctx, "Customer import finished",
		slog.Int("imported", result.Imported),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

func (i *CustomerImporter) applyRow(ctx context.Context, idx *headerIndex, rowNum int, record []string) *RowError {
	for _, field := range customerRequired {
		if idx.get(record, field) == "" {
			return &RowError{Row: rowNum, Message: fmt.Sprintf("missing required field %s", field)}
		}
	}

	kundenNr := idx.get(record, "kunden_nr")
	incoming := customer.NewCustomer(kundenNr)
	incoming.Vorname = idx.get(record, "vorname")
	incoming.Name = idx.get(record, "name")
	incoming.Firma = idx.get(record, "firma")
	incoming.Strasse = idx.get(record, "strasse")
	incoming.PLZ = idx.get(record, "plz")
	incoming.Ort = idx.get(record, "ort")
	incoming.TelefonP = idx.get(record, "telefon_p")
	incoming.TelefonG = idx.get(record, "telefon_g")
	incoming.Natel = idx.get(record, "natel")
	incoming.EmailP = idx.get(record, "email_p")
	incoming.EmailG = idx.get(record, "email_g")
	incoming.Geburtsdatum = idx.get(record, "geburtsdatum")

	existing, err := i.repo.FindByKundenNr(ctx, kundenNr)
	switch {
	case err == nil:
		// Upsert: last write wins on mapped fields, id and the
		// append-only lists survive untouched.
		existing.ApplyFields(incoming)
		if err := i.repo.Save(ctx, existing); err != nil {
			i.logger.ErrorContext(ctx, "Failed to update customer from import",
				slog.String("kundenNr", kundenNr), slog.Any("error", err))
			return &RowError{Row: rowNum, Message: fmt.Sprintf("failed to update customer %s", kundenNr)}
		}
		i.publishCustomerEvent(ctx, existing, false)
	case errors.Is(err, customer.ErrNotFound):
		if err := i.repo.Save(ctx, incoming); err != nil {
			i.logger.ErrorContext(ctx, "Failed to create customer from import",
				slog.String("kundenNr", kundenNr), slog.Any("error", err))
			return &RowError{Row: rowNum, Message: fmt.Sprintf("failed to create customer %s", kundenNr)}
		}
		i.publishCustomerEvent(ctx, incoming, true)
	default:
		i.logger.ErrorContext(ctx, "Lookup failed during customer import",
			slog.String("kundenNr", kundenNr), slog.Any("error", err))
		return &RowError{Row: rowNum, Message: fmt.Sprintf("failed to look up customer %s", kundenNr)}
	}
	return nil
}

func (i *CustomerImporter) publishCustomerEvent(ctx context.Context, c *customer.Customer, created bool) {
	if i.publisher == nil {
		return
	}
	payload := event.CustomerEventPayload{
		CustomerID: c.ID,
		KundenNr:   c.KundenNr,
		Vorname:    c.Vorname,
		Name:       c.Name,
		Ort:        c.Ort,
	}
	var err error
	if created {
		err = i.publisher.PublishCustomerCreated(ctx, event.CustomerCreatedEvent{Timestamp: time.Now(), Payload: payload})
	} else {
		err = i.publisher.PublishCustomerUpdated(ctx, event.CustomerUpdatedEvent{Timestamp: time.Now(), Payload: payload})
	}
	if err != nil {
		i.logger.WarnContext(ctx, "Failed to publish customer event",
			slog.String("kundenNr", c.KundenNr), slog.Any("error", err))
	}
}
