package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/domain/clientexperience"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type CaseHandler struct {
	service clientexperience.CaseService
	logger  *slog.Logger
}

func NewCaseHandler(s clientexperience.CaseService, l *slog.Logger) *CaseHandler {
	if s == nil {
		panic("case service cannot be nil")
	}
	return &CaseHandler{
		service: s,
		logger:  l.With("component", "CaseHandler"),
	}
}

func getCaseIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "caseID")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid caseID format in URL path: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateCase handles POST /client-experience
// @Summary Record a customer complaint
// @Description Opens a client experience case. A case stays open until at least one solution is recorded.
// @Tags ClientExperience
// @Accept json
// @Produce json
// @Param request body dto.CreateCaseRequest true "Case creation request"
// @Success 201 {object} dto.CaseResponse "Case created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /client-experience [post]
// @Security BearerAuth
func (h *CaseHandler) CreateCase(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	created, err := h.service.CreateCase(r.Context(), req.ToDomain(currentUsername(r)))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to create case", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Case created successfully", slog.Int64("caseID", created.ID))
	respondJSON(w, http.StatusCreated, dto.NewCaseResponse(created))
}

// GetCase handles GET /client-experience/{caseID}
// @Summary Retrieve a case with its solutions
// @Tags ClientExperience
// @Produce json
// @Param caseID path int true "Case ID" Minimum(1)
// @Success 200 {object} dto.CaseResponse "Case details"
// @Failure 404 {object} dto.ErrorResponse "Case not found"
// @Router /client-experience/{caseID} [get]
// @Security BearerAuth
func (h *CaseHandler) GetCase(w http.ResponseWriter, r *http.Request) {
	caseID, err := getCaseIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	c, err := h.service.GetCase(r.Context(), caseID)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, clientexperience.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get case", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCaseResponse(c))
}

// ListCases handles GET /client-experience
// @Summary List client experience cases
// @Tags ClientExperience
// @Produce json
// @Success 200 {array} dto.CaseResponse "List of cases"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /client-experience [get]
// @Security BearerAuth
func (h *CaseHandler) ListCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.service.ListCases(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list cases", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := make([]dto.CaseResponse, len(cases))
	for i, c := range cases {
		resp[i] = dto.NewCaseResponse(c)
	}
	respondJSON(w, http.StatusOK, resp)
}

// AddSolution handles POST /client-experience/{caseID}/solution
// @Summary Append a solution to a case
// @Description Appends one solution entry. Solutions are never edited or removed; a case with at least one solution counts as resolved.
// @Tags ClientExperience
// @Accept json
// @Produce json
// @Param caseID path int true "Case ID" Minimum(1)
// @Param request body dto.AddSolutionRequest true "Solution text"
// @Success 204 "Solution appended"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Failure 404 {object} dto.ErrorResponse "Case not found"
// @Router /client-experience/{caseID}/solution [post]
// @Security BearerAuth
func (h *CaseHandler) AddSolution(w http.ResponseWriter, r *http.Request) {
	caseID, err := getCaseIDFromURL(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req dto.AddSolutionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	if err := h.service.AddSolution(r.Context(), caseID, req.Text, currentUsername(r)); err != nil {
		h.logger.WarnContext(r.Context(), "Service failed to add solution", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Solution appended to case", slog.Int64("caseID", caseID))
	respondJSON(w, http.StatusNoContent, nil)
}
