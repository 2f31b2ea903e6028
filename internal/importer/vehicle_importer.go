package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/event"
	"autohaus-crm/internal/infrastructure/monitoring"
)

// Vehicle CSV contract. kunden_nr is consumed for reference resolution
// only and never stored on the vehicle record.
var (
	vehicleColumns = []string{
		"kunden_nr", "marke", "modell", "chassis_nr", "stamm_nr",
		"typenschein_nr", "farbe", "inverkehrsetzung", "km_stand",
		"vista_nr", "verkaeufer", "kundenberater",
	}
	vehicleRequired = []string{"kunden_nr", "marke", "modell", "chassis_nr"}
)

// VehicleImporter inserts one vehicle per valid row. There is no
// dedup key across re-imports, so rows are always inserted, never
// upserted. kunden_nr is resolved against a snapshot of the customer
// store taken once at the start of the batch.
type VehicleImporter struct {
	vehicles  vehicle.VehicleRepository
	customers customer.CustomerRepository
	publisher event.EventPublisher
	logger    *slog.Logger
	mu        sync.Mutex
}

func NewVehicleImporter(vehicles vehicle.VehicleRepository, customers customer.CustomerRepository, publisher event.EventPublisher, logger *slog.Logger) *VehicleImporter {
	if vehicles == nil {
		panic("vehicle repository cannot be nil")
	}
	if customers == nil {
		panic("customer repository cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &VehicleImporter{
		vehicles:  vehicles,
		customers: customers,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "vehicleImporter")),
	}
}

// Import runs one full batch, fatal on unreadable input or a missing
// required column, row-level on everything else.
func (i *VehicleImporter) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	start := time.Now()
	i.logger.InfoContext(ctx, "Starting vehicle import")

	cr := newCSVReader(r)
	idx, err := readHeader(cr, vehicleRequired)
	if err != nil {
		i.logger.WarnContext(ctx, "Vehicle import aborted", slog.Any("error", err))
		return nil, err
	}

	byKundenNr, err := i.customerSnapshot(ctx)
	if err != nil {
		i.logger.ErrorContext(ctx, "Failed to snapshot customers for import", slog.Any("error", err))
		return nil, fmt.Errorf("failed to load customers for reference resolution: %w", err)
	}

	result := &ImportResult{Errors: []RowError{}}
	rowErrors, err := scanRows(cr, idx, func(rowNum int, record []string) *RowError {
		if rowErr := i.applyRow(ctx, idx, byKundenNr, rowNum, record); rowErr != nil {
			return rowErr
		}
		result.Imported++
		return nil
	})
	if err != nil {
		i.logger.ErrorContext(ctx, "Vehicle import aborted mid-file", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", ErrEmptyFile, err)
	}
	result.Errors = append(result.Errors, rowErrors...)

	monitoring.RecordImportRows("vehicle", result.Imported, len(result.Errors))
	monitoring.ObserveImportDuration("vehicle", time.Since(start))
	if i.publisher != nil {
		if err := i.publisher.PublishImportCompleted(ctx, event.ImportCompletedEvent{
			Timestamp:  time.Now(),
			Entity:     "vehicle",
			Imported:   result.Imported,
			ErrorCount: len(result.Errors),
		}); err != nil {
			i.logger.WarnContext(ctx, "Failed to publish import completed event", slog.Any("error", err))
		}
	}

	i.logger.InfoContext(ctx, "Vehicle import finished",
		slog.Int("imported", result.Imported),
		slog.Int("errors", len(result.Errors)),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

func (i *VehicleImporter) customerSnapshot(ctx context.Context) (map[string]int64, error) {
	customers, err := i.customers.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	byKundenNr := make(map[string]int64, len(customers))
	for _, c := range customers {
		byKundenNr[c.KundenNr] = c.ID
	}
	return byKundenNr, nil
}

func (i *VehicleImporter) applyRow(ctx context.Context, idx *headerIndex, byKundenNr map[string]int64, rowNum int, record []string) *RowError {
	for _, field := range vehicleRequired {
		if idx.get(record, field) == "" {
			return &RowError{Row: rowNum, Message: fmt.Sprintf("missing required field %s", field)}
		}
	}

	kundenNr := idx.get(record, "kunden_nr")
	customerID, ok := byKundenNr[kundenNr]
	if !ok {
		return &RowError{Row: rowNum, Message: fmt.Sprintf("unknown customer kunden_nr %s", kundenNr)}
	}

	now := time.Now()
	v := &vehicle.Vehicle{
		CustomerID:       customerID,
		Marke:            idx.get(record, "marke"),
		Modell:           idx.get(record, "modell"),
		ChassisNr:        idx.get(record, "chassis_nr"),
		StammNr:          idx.get(record, "stamm_nr"),
		TypenscheinNr:    idx.get(record, "typenschein_nr"),
		Farbe:            idx.get(record, "farbe"),
		Inverkehrsetzung: idx.get(record, "inverkehrsetzung"),
		KmStand:          idx.get(record, "km_stand"),
		VistaNr:          idx.get(record, "vista_nr"),
		Verkaeufer:       idx.get(record, "verkaeufer"),
		Kundenberater:    idx.get(record, "kundenberater"),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := i.vehicles.Save(ctx, v); err != nil {
		i.logger.ErrorContext(ctx, "Failed to insert vehicle from import",
			slog.String("kundenNr", kundenNr), slog.Any("error", err))
		return &RowError{Row: rowNum, Message: fmt.Sprintf("failed to insert vehicle for customer %s", kundenNr)}
	}
	return nil
}
