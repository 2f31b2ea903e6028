package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/domain/kaufvertrag"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type KaufvertragHandler struct {
	service kaufvertrag.KaufvertragService
	logger  *slog.Logger
}

func NewKaufvertragHandler(s kaufvertrag.KaufvertragService, l *slog.Logger) *KaufvertragHandler {
	if s == nil {
		panic("kaufvertrag service cannot be nil")
	}
	return &KaufvertragHandler{
		service: s,
		logger:  l.With("component", "KaufvertragHandler"),
	}
}

func getKaufvertragIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "kaufvertragID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid kaufvertragID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateKaufvertrag handles POST /kaufvertraege
// @Summary Record a purchase contract
// @Description Stores a sales contract snapshot. Contracts are immutable once created.
// @Tags Kaufvertraege
// @Accept json
// @Produce json
// @Param request body dto.KaufvertragRequest true "Contract creation request"
// @Success 201 {object} dto.KaufvertragResponse "Contract created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /kaufvertraege [post]
// @Security BearerAuth
func (h *KaufvertragHandler) CreateKaufvertrag(w http.ResponseWriter, r *http.Request) {
	var req dto.KaufvertragRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateKaufvertrag(r.Context(), req.ToDomain(currentUsername(r)))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create kaufvertrag", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Kaufvertrag created successfully", slog.Int64("kaufvertragID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewKaufvertragResponse(created))
}

// GetKaufvertrag handles GET /kaufvertraege/{kaufvertragID}
// @Summary Retrieve a purchase contract
// @Tags Kaufvertraege
// @Produce json
// @Param kaufvertragID path int true "Contract ID" Minimum(1)
// @Success 200 {object} dto.KaufvertragResponse "Contract details"
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Router /kaufvertraege/{kaufvertragID} [get]
// @Security BearerAuth
func (h *KaufvertragHandler) GetKaufvertrag(w http.ResponseWriter, r *http.Request) {
	kaufvertragID, err := getKaufvertragIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	kv, err := h.service.GetKaufvertrag(r.Context(), kaufvertragID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, kaufvertrag.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get kaufvertrag", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewKaufvertragResponse(kv))
}

// ListKaufvertraege handles GET /kaufvertraege
// @Summary List purchase contracts
// @Tags Kaufvertraege
// @Produce json
// @Success 200 {array} dto.KaufvertragResponse "List of contracts"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /kaufvertraege [get]
// @Security BearerAuth
func (h *KaufvertragHandler) ListKaufvertraege(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.service.ListKaufvertraege(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list kaufvertraege", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.KaufvertragResponse, len(contracts))
	for i, kv := range contracts {
		resp[i] = dto.NewKaufvertragResponse(kv)
	}
	respondJSON(w, http.StatusOK, resp)
}

// DeleteKaufvertrag handles DELETE /kaufvertraege/{kaufvertragID}
// @Summary Delete a purchase contract
// @Tags Kaufvertraege
// @Produce json
// @Param kaufvertragID path int true "Contract ID" Minimum(1)
// @Success 204 "Contract deleted"
// @Failure 404 {object} dto.ErrorResponse "Contract not found"
// @Router /kaufvertraege/{kaufvertragID} [delete]
// @Security BearerAuth
func (h *KaufvertragHandler) DeleteKaufvertrag(w http.ResponseWriter, r *http.Request) {
	kaufvertragID, err := getKaufvertragIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteKaufvertrag(r.Context(), kaufvertragID); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to delete kaufvertrag", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Kaufvertrag deleted successfully", slog.Int64("kaufvertragID", kaufvertragID))
	respondJSON(w, http.StatusNoContent, nil)
}
