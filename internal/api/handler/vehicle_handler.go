package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/domain/vehicle"
	"autohaus-crm/internal/importer"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type VehicleHandler struct {
	service   vehicle.VehicleService
	importer  *importer.VehicleImporter
	importCfg config.ImportConfig
	logger    *slog.Logger
}

func NewVehicleHandler(s vehicle.VehicleService, imp *importer.VehicleImporter, importCfg config.ImportConfig, l *slog.Logger) *VehicleHandler {
	if s == nil {
		panic("vehicle service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &VehicleHandler{
		service:   s,
		importer:  imp,
		importCfg: importCfg,
		logger:    l.With("component", "VehicleHandler"),
	}
}

func getVehicleIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "vehicleID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid vehicleID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateVehicle handles POST /vehicles
// @Summary Create a new vehicle
// @Description Creates a vehicle owned by an existing customer.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param request body dto.VehicleRequest true "Vehicle creation request"
// @Success 201 {object} dto.VehicleResponse "Vehicle created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Owning customer does not exist"
// @Router /vehicles [post]
// @Security BearerAuth
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateVehicle(r.Context(), req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Vehicle created successfully", slog.Int64("vehicleID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewVehicleResponse(created))
}

// GetVehicle handles GET /vehicles/{vehicleID}
// @Summary Retrieve vehicle details
// @Tags Vehicles
// @Produce json
// @Param vehicleID path int true "Vehicle ID" Minimum(1)
// @Success 200 {object} dto.VehicleResponse "Vehicle details"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Router /vehicles/{vehicleID} [get]
// @Security BearerAuth
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	v, err := h.service.GetVehicle(r.Context(), vehicleID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, vehicle.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewVehicleResponse(v))
}

// ListVehicles handles GET /vehicles
// @Summary List vehicles
// @Description Lists all vehicles, optionally restricted to one customer via the customer_id query parameter.
// @Tags Vehicles
// @Produce json
// @Param customer_id query int false "Restrict to one customer's fleet"
// @Success 200 {array} dto.VehicleResponse "List of vehicles"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer_id"
// @Router /vehicles [get]
// @Security BearerAuth
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	var customerID *int64
	if raw := r.URL.Query().Get("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, fmt.Errorf("%w: invalid customer_id: %s", apperrors.ErrInvalidArgument, raw))
			return
		}
		customerID = &id
	}

	vehicles, err := h.service.ListVehicles(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list vehicles", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		resp[i] = dto.NewVehicleResponse(v)
	}
	respondJSON(w, http.StatusOK, resp)
}

// UpdateVehicle handles PUT /vehicles/{vehicleID}
// @Summary Update vehicle fields
// @Tags Vehicles
// @Accept json
// @Produce json
// @Param vehicleID path int true "Vehicle ID" Minimum(1)
// @Param request body dto.VehicleRequest true "New field values"
// @Success 200 {object} dto.VehicleResponse "Updated vehicle"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Router /vehicles/{vehicleID} [put]
// @Security BearerAuth
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.VehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	updated, err := h.service.UpdateVehicle(r.Context(), vehicleID, req.ToDomain())
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, vehicle.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to update vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Vehicle updated successfully", slog.Int64("vehicleID", vehicleID))
	respondJSON(w, http.StatusOK, dto.NewVehicleResponse(updated))
}

// DeleteVehicle handles DELETE /vehicles/{vehicleID}
// @Summary Delete a vehicle
// @Tags Vehicles
// @Produce json
// @Param vehicleID path int true "Vehicle ID" Minimum(1)
// @Success 204 "Vehicle deleted"
// @Failure 404 {object} dto.ErrorResponse "Vehicle not found"
// @Router /vehicles/{vehicleID} [delete]
// @Security BearerAuth
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getVehicleIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteVehicle(r.Context(), vehicleID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete vehicle", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Vehicle deleted successfully", slog.Int64("vehicleID", vehicleID))
	respondJSON(w, http.StatusNoContent, nil)
}

// ImportVehicles handles POST /vehicles/import
// @Summary Bulk-import vehicles from CSV
// @Description Inserts one vehicle per valid row. Rows referencing an unknown kunden_nr are reported as row errors; a missing required column aborts the import.
// @Tags Vehicles
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file with vehicle rows"
// @Success 200 {object} dto.ImportResponse "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Unreadable file, missing required column or file too large"
// @Router /vehicles/import [post]
// @Security BearerAuth
func (h *VehicleHandler) ImportVehicles(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "Received vehicle import request")

	if maxBytes := h.importCfg.MaxFileSizeMB << 20; maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Vehicle import without file part", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: missing multipart field 'file': %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer file.Close()

	result, err := h.importer.Import(r.Context(), file)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Vehicle import aborted", slog.Any("error", err))
		if errors.Is(err, importer.ErrMissingColumn) || errors.Is(err, importer.ErrEmptyFile) {
			respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewImportResponse(result, "Fahrzeuge"))
}
