package document

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/shared/errors"
	"github.com/medassist/cdss/internal/shared/metrics"
	"github.com/medassist/cdss/internal/shared/types"
)

// EntityExtractor extracts medical entities from text. Satisfied by
// ml.Extractor.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) []ml.MedicalEntity
}

// Handler provides HTTP handlers for document ingestion
type Handler struct {
	extractor *Extractor
	ner       EntityExtractor
	maxBytes  int64
	log       zerolog.Logger
}

// NewHandler creates a new document handler
func NewHandler(extractor *Extractor, ner EntityExtractor, maxBytes int64, log zerolog.Logger) *Handler {
	return &Handler{
		extractor: extractor,
		ner:       ner,
		maxBytes:  maxBytes,
		log:       log.With().Str("component", "document-api").Logger(),
	}
}

// Register registers the document routes on the /api subrouter
func (h *Handler) Register(r chi.Router) {
	r.Post("/upload-document", h.Upload)
}

// Upload handles a medical document upload. Validation is fail-closed and
// happens before any extraction or model call.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		metrics.RecordDocumentRejected("bad_multipart")
		writeError(w, errors.BadRequest("multipart file field 'file' is required: "+err.Error()))
		return
	}
	defer file.Close()

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !isAllowedFileType(ext) {
		metrics.RecordDocumentRejected("unsupported_type")
		writeError(w, errors.BadRequest(fmt.Sprintf(
			"Unsupported file type '%s'. Allowed: %s", ext, strings.Join(AllowedFileTypes, ", "))))
		return
	}

	if header.Size == 0 {
		metrics.RecordDocumentRejected("empty_file")
		writeError(w, errors.BadRequest("uploaded file is empty"))
		return
	}

	if header.Size > h.maxBytes {
		metrics.RecordDocumentRejected("too_large")
		writeError(w, errors.BadRequest(fmt.Sprintf(
			"File too large (%.1f MB). Maximum size: %d MB",
			float64(header.Size)/(1024*1024), h.maxBytes/(1024*1024))))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, errors.Processing(err, "failed to read uploaded file"))
		return
	}

	text, err := h.extractor.ExtractText(r.Context(), data, ext)
	if err != nil {
		writeError(w, err)
		return
	}

	entities := h.ner.ExtractEntities(r.Context(), text)
	documentID := types.NewDocumentToken()
	metrics.RecordDocumentProcessed(ext)

	h.log.Info().
		Str("document_id", documentID.String()).
		Str("file_type", ext).
		Int("text_length", len(text)).
		Int("entities", len(entities)).
		Msg("document processed")

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: fmt.Sprintf(
			"Document processed successfully. Extracted %d medical entities.", len(entities)),
		ExtractedText:     text,
		TextPreview:       preview(text),
		ExtractedEntities: entities,
		DocumentID:        documentID,
		FileInfo: FileInfo{
			Filename:   header.Filename,
			FileType:   ext,
			SizeMB:     float64(header.Size) / (1024 * 1024),
			TextLength: len(text),
		},
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
