package analysis

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medassist/cdss/internal/shared/errors"
)

// Handler provides HTTP handlers for the analysis module
type Handler struct {
	svc *Service
}

// NewHandler creates a new analysis handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register registers the analysis routes on the /api subrouter
func (h *Handler) Register(r chi.Router) {
	r.Post("/analyze", h.Analyze)
	r.Post("/analyze-with-documents", h.AnalyzeWithDocuments)
}

// Analyze handles symptom analysis requests
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var profile SymptomProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	if err := profile.Validate(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.Analyze(r.Context(), profile))
}

// AnalyzeWithDocuments handles analysis requests enriched with document
// context
func (h *Handler) AnalyzeWithDocuments(w http.ResponseWriter, r *http.Request) {
	var input EnhancedProfile
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, errors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	if err := input.Validate(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.svc.AnalyzeWithDocuments(r.Context(), input))
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
