package handler

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"autohaus-crm/internal/api/handler/dto"
	"autohaus-crm/internal/config"
	"autohaus-crm/internal/infrastructure/storage"
	"autohaus-crm/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	store  storage.BlobStore
	cfg    config.UploadsConfig
	logger *slog.Logger
}

func NewUploadHandler(store storage.BlobStore, cfg config.UploadsConfig, l *slog.Logger) *UploadHandler {
	if store == nil {
		panic("blob store cannot be nil")
	}
	return &UploadHandler{
		store:  store,
		cfg:    cfg,
		logger: l.With("component", "UploadHandler"),
	}
}

// Upload handles POST /upload
// @Summary Upload an attachment
// @Description Stores the file and returns the name under which it can be referenced and downloaded.
// @Tags Uploads
// @Accept mpfd
// @Produce json
// @Param file formData file true "File to store"
// @Success 201 {object} dto.UploadResponse "Stored file reference"
// @Failure 400 {object} dto.ErrorResponse "Missing file part or file too large"
// @Router /upload [post]
// @Security BearerAuth
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(h.cfg.MaxSizeMB) << 20
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Upload request without usable file part", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: missing multipart field 'file': %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer file.Close()

	storedName, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to store upload", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Upload stored",
		slog.String("originalName", header.Filename), slog.String("storedName", storedName))
	respondJSON(w, http.StatusCreated, dto.UploadResponse{
		Filename: storedName,
		URL:      strings.TrimSuffix(h.cfg.URLBasePath, "/") + "/" + storedName,
	})
}

// Download handles GET /uploads/{filename}
// @Summary Download a stored attachment
// @Tags Uploads
// @Produce octet-stream
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary "File content"
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /uploads/{filename} [get]
// @Security BearerAuth
func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" {
		respondError(w, fmt.Errorf("%w: filename missing from URL path", apperrors.ErrInvalidArgument))
		return
	}

	blob, err := h.store.Open(r.Context(), filename)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Requested upload not available",
			slog.String("filename", filename), slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrNotFound, err))
		return
	}
	defer blob.Close()

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, blob); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to stream upload", slog.Any("error", err))
	}
}
