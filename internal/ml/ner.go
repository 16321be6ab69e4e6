package ml

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/shared/metrics"
)

// Extractor wraps a pre-trained medical NER model. Extraction is
// fail-open: an adapter failure degrades to an empty entity list so one
// misbehaving model never blocks the rest of the analysis.
type Extractor struct {
	client *Client
	model  string
	log    zerolog.Logger
}

// NewExtractor creates an entity extraction adapter
func NewExtractor(client *Client, model string, log zerolog.Logger) *Extractor {
	return &Extractor{
		client: client,
		model:  model,
		log:    log.With().Str("component", "ner").Logger(),
	}
}

// nerSpan mirrors the aggregated token-classification output of the
// inference service.
type nerSpan struct {
	Word        string  `json:"word"`
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
}

// ExtractEntities extracts medical entities from free text. The result is
// deduplicated by exact span text (case-sensitive), spans shorter than 3
// characters are dropped, and order follows the extractor output. Never
// returns nil.
func (e *Extractor) ExtractEntities(ctx context.Context, text string) []MedicalEntity {
	start := time.Now()

	var spans []nerSpan
	payload := map[string]any{"inputs": text}

	if err := e.client.post(ctx, "/models/"+e.model, payload, &spans); err != nil {
		metrics.RecordModelCall(e.model, "error", time.Since(start))
		e.log.Warn().Err(err).Msg("entity extraction failed, continuing with empty result")
		return []MedicalEntity{}
	}
	metrics.RecordModelCall(e.model, "ok", time.Since(start))

	entities := make([]MedicalEntity, 0, len(spans))
	seen := make(map[string]bool, len(spans))

	for _, span := range spans {
		word := strings.TrimSpace(span.Word)
		if len(word) < 3 || seen[word] {
			continue
		}
		seen[word] = true

		entities = append(entities, MedicalEntity{
			Text:       word,
			EntityType: span.EntityGroup,
			Confidence: clamp01(span.Score),
		})
	}

	e.log.Debug().Int("entities", len(entities)).Msg("entities extracted")
	return entities
}
