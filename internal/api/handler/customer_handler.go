package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/domain/customer"
	"autohaus-crm/internal/importer"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	service   customer.CustomerService
	importer  *importer.CustomerImporter
	importCfg config.ImportConfig
	logger    *slog.Logger
}

func NewCustomerHandler(s customer.CustomerService, imp *importer.CustomerImporter, importCfg config.ImportConfig, l *slog.Logger) *CustomerHandler {
	if s == nil {
		panic("customer service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CustomerHandler{
		service:   s,
		importer:  imp,
		importCfg: importCfg,
		logger:    l.With("component", "CustomerHandler"),
	}
}

func getCustomerIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "customerID")
	if idStr == "" {
		return 0, fmt.Errorf("%w: customerID not found in URL path", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateCustomer handles POST /customers
// @Summary Create a new customer
// @Description Creates a customer record. kunden_nr must be unique.
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body dto.CustomerRequest true "Customer creation request"
// @Success 201 {object} dto.CustomerResponse "Customer successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload"
// @Failure 409 {object} dto.ErrorResponse "kunden_nr already assigned"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /customers [post]
// @Security BearerAuth
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	h.logger.DebugContext(r.Context(), "Received create customer request")

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateCustomer(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer created successfully", slog.Int64("customerID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCustomerResponse(created))
}

// GetCustomer handles GET /customers/{customerID}
// @Summary Retrieve customer details
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CustomerResponse "Customer details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [get]
// @Security BearerAuth
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	domainCustomer, err := h.service.GetCustomer(r.Context(), customerID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, customer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(domainCustomer))
}

// ListCustomers handles GET /customers
// @Summary List customers
// @Description Lists all customers, or resolves a single one via the kunden_nr query parameter.
// @Tags Customers
// @Produce json
// @Param kunden_nr query string false "Look up one customer by business key"
// @Success 200 {array} dto.CustomerResponse "List of customers"
// @Failure 404 {object} dto.ErrorResponse "kunden_nr given but unknown"
// @Router /customers [get]
// @Security BearerAuth
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	if kundenNr := r.URL.Query().Get("kunden_nr"); kundenNr != "" {
		h.findByKundenNr(w, r, kundenNr)
		return
	}

	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list customers", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.CustomerResponse, len(customers))
	for i, cust := range customers {
		resp[i] = dto.NewCustomerResponse(cust)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *CustomerHandler) findByKundenNr(w http.ResponseWriter, r *http.Request, kundenNr string) {
	cust, err := h.service.FindByKundenNr(r.Context(), kundenNr)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Customer lookup by kunden_nr failed",
			slog.String("kundenNr", kundenNr), slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, []dto.CustomerResponse{dto.NewCustomerResponse(cust)})
}

// UpdateCustomer handles PUT /customers/{customerID}
// @Summary Update customer fields
// @Description Overwrites the mapped fields; bemerkungen and korrespondenz are untouched.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.CustomerRequest true "New field values"
// @Success 200 {object} dto.CustomerResponse "Updated customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [put]
// @Security BearerAuth
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.CustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateCustomer(r.Context(), customerID, req.ToDomain())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, customer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer updated successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusOK, dto.NewCustomerResponse(updated))
}

// DeleteCustomer handles DELETE /customers/{customerID}
// @Summary Delete a customer
// @Tags Customers
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 204 "Customer deleted"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID} [delete]
// @Security BearerAuth
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), customerID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete customer", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Customer deleted successfully", slog.Int64("customerID", customerID))
	respondJSON(w, http.StatusNoContent, nil)
}

// AddRemark handles POST /customers/{customerID}/remarks
// @Summary Append a remark
// @Description Appends one entry to the customer's Bemerkungen list. Entries are never edited or removed.
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.AddRemarkRequest true "Remark text"
// @Success 204 "Remark appended"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID}/remarks [post]
// @Security BearerAuth
func (h *CustomerHandler) AddRemark(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AddRemarkRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.AddRemark(r.Context(), customerID, req.Text, currentUsername(r)); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add remark", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// AddCorrespondence handles POST /customers/{customerID}/correspondence
// @Summary Append a correspondence entry
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Param request body dto.AddCorrespondenceRequest true "Correspondence entry"
// @Success 204 "Entry appended"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Router /customers/{customerID}/correspondence [post]
// @Security BearerAuth
func (h *CustomerHandler) AddCorrespondence(w http.ResponseWriter, r *http.Request) {
	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AddCorrespondenceRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.AddCorrespondence(r.Context(), customerID, req.ToDomain(currentUsername(r))); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add correspondence", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// ImportCustomers handles POST /customers/import
// @Summary Bulk-import customers from CSV
// @Description Upserts customers keyed by kunden_nr. Row-level failures are reported in the response; only an unreadable file or a missing required column aborts the import.
// @Tags Customers
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file with customer rows"
// @Success 200 {object} dto.ImportResponse "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Unreadable file, missing required column or file too large"
// @Router /customers/import [post]
// @Security BearerAuth
func (h *CustomerHandler) ImportCustomers(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Received customer import request")

	if maxBytes := h.importCfg.MaxFileSizeMB << 20; maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Customer import without file part", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: missing multipart field 'file': %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer file.Close()

	result, err := h.importer.Import(r.Context(), file)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Customer import aborted", slog.Any("error", err))
		if errors.Is(err, importer.ErrMissingColumn) || errors.Is(err, importer.ErrEmptyFile) {
			respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewImportResponse(result, "Kunden"))
}
