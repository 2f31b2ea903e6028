package customer

import (
	"autohaus-crm/internal/event"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

const (
	inputValidationPassed = "Input validation passed"
	customerNotFound      = "Customer not found by repository"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	ListCustomers(ctx context.Context) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, fields *Customer) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
	AddRemark(ctx context.Context, customerID int64, text, user string) error
	AddCorrespondence(ctx context.Context, customerID int64, entry Correspondence) error
	FindByKundenNr(ctx context.Context, kundenNr string) (*Customer, error)
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func newCustomerEventPayload(cust *Customer) event.CustomerEventPayload {
	if cust == nil {
		return event.CustomerEventPayload{}
	}
	return event.CustomerEventPayload{
		CustomerID: cust.ID,
		KundenNr:   cust.KundenNr,
		Vorname:    cust.Vorname,
		Name:       cust.Name,
		Ort:        cust.Ort,
	}
}

func (s *customerService) publishUpdated(ctx context.Context, cust *Customer) {
	if s.pub == nil || cust == nil {
		return
	}
	evt := event.CustomerUpdatedEvent{
		Timestamp: time.Now(),
		Payload:   newCustomerEventPayload(cust),
	}
	if err := s.pub.PublishCustomerUpdated(ctx, evt); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish customer update event", slog.Any("error", err))
	}
}

func validateRequired(cust *Customer) error {
	cust.KundenNr = strings.TrimSpace(cust.KundenNr)
	cust.Vorname = strings.TrimSpace(cust.Vorname)
	cust.Name = strings.TrimSpace(cust.Name)
	cust.Strasse = strings.TrimSpace(cust.Strasse)
	cust.PLZ = strings.TrimSpace(cust.PLZ)
	cust.Ort = strings.TrimSpace(cust.Ort)

	switch {
	case cust.KundenNr == "":
		return errors.New("kunden_nr cannot be empty")
	case cust.Vorname == "":
		return errors.New("vorname cannot be empty")
	case cust.Name == "":
		return errors.New("name cannot be empty")
	case cust.Strasse == "":
		return errors.New("strasse cannot be empty")
	case cust.PLZ == "":
		return errors.New("plz cannot be empty")
	case cust.Ort == "":
		return errors.New("ort cannot be empty")
	}
	return nil
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer")

	if cust == nil {
		return nil, errors.New("customer cannot be nil")
	}
	if err := validateRequired(cust); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}
	s.logger.DebugContext(ctx, inputValidationPassed, slog.String("kundenNr", cust.KundenNr))

	if cust.Bemerkungen == nil {
		cust.Bemerkungen = []Remark{}
	}
	if cust.Korrespondenz == nil {
		cust.Korrespondenz = []Correspondence{}
	}

	if err := s.repo.Save(ctx, cust); err != nil {
		if errors.Is(err, ErrDuplicateKundenNr) {
			s.logger.WarnContext(ctx, "Duplicate kunden_nr conflict detected during save", slog.String("kundenNr", cust.KundenNr))
			return nil, ErrDuplicateKundenNr
		}
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new customer: %w", err)
	}

	if s.pub != nil {
		createdEvent := event.CustomerCreatedEvent{
			Timestamp: time.Now(),
			Payload:   newCustomerEventPayload(cust),
		}
		if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
			s.logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
		}
	}

	s.logger.InfoContext(ctx, "Successfully created new customer", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.DebugContext(ctx, "Attempting to get customer by ID", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]*Customer, error) {
	s.logger.DebugContext(ctx, "Attempting to list all customers")

	customers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing customers", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully retrieved customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, fields *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	if fields == nil {
		return nil, errors.New("customer fields cannot be nil")
	}
	if err := validateRequired(fields); err != nil {
		s.logger.WarnContext(ctx, "Validation failed", slog.Any("error", err))
		return nil, err
	}
	s.logger.DebugContext(ctx, inputValidationPassed)

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository for update")
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer for update", slog.Any("error", err))
		return nil, fmt.Errorf("cannot find customer %d to update: %w", customerID, err)
	}

	cust.ApplyFields(fields)
	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to save updated customer %d: %w", customerID, err)
	}

	s.publishUpdated(ctx, cust)
	s.logger.InfoContext(ctx, "Successfully updated customer")
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	if err := s.repo.Delete(ctx, customerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error deleting customer", slog.Any("error", err))
		return fmt.Errorf("failed to delete customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer")
	return nil
}

func (s *customerService) AddRemark(ctx context.Context, customerID int64, text, user string) error {
	s.logger.InfoContext(ctx, "Attempting to add remark", slog.Int64("customerID", customerID))

	text = strings.TrimSpace(text)
	if text == "" {
		s.logger.WarnContext(ctx, "Validation failed: remark text is empty")
		return errors.New("remark text cannot be empty")
	}

	remark := Remark{Text: text, User: user, Timestamp: time.Now()}
	if err := s.repo.AppendRemark(ctx, customerID, remark); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error appending remark", slog.Any("error", err))
		return fmt.Errorf("failed to append remark for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully added remark")
	return nil
}

func (s *customerService) AddCorrespondence(ctx context.Context, customerID int64, entry Correspondence) error {
	s.logger.InfoContext(ctx, "Attempting to add correspondence", slog.Int64("customerID", customerID))

	if strings.TrimSpace(entry.Bemerkung) == "" {
		s.logger.WarnContext(ctx, "Validation failed: correspondence bemerkung is empty")
		return errors.New("correspondence bemerkung cannot be empty")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := s.repo.AppendCorrespondence(ctx, customerID, entry); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound)
			return ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error appending correspondence", slog.Any("error", err))
		return fmt.Errorf("failed to append correspondence for customer %d: %w", customerID, err)
	}

	s.logger.InfoContext(ctx, "Successfully added correspondence")
	return nil
}

func (s *customerService) FindByKundenNr(ctx context.Context, kundenNr string) (*Customer, error) {
	s.logger.DebugContext(ctx, "Attempting to find customer by kunden_nr")

	kundenNr = strings.TrimSpace(kundenNr)
	if kundenNr == "" {
		return nil, errors.New("kunden_nr cannot be empty")
	}

	cust, err := s.repo.FindByKundenNr(ctx, kundenNr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.WarnContext(ctx, "Customer not found by repository for this kunden_nr")
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer by kunden_nr", slog.Any("error", err))
		return nil, fmt.Errorf("failed to find customer by kunden_nr %s: %w", kundenNr, err)
	}

	return cust, nil
}
