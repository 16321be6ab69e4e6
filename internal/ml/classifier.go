package ml

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/shared/metrics"
)

// minConfidence filters out predictions the classifier is barely
// committed to.
const minConfidence = 0.1

// Classifier wraps a pre-trained zero-shot classification model scoring
// text against the fixed disease taxonomy. Multi-label: one text may match
// several categories with independent confidences. Fail-open like the
// extractor.
type Classifier struct {
	client     *Client
	model      string
	categories []string
	log        zerolog.Logger
}

// NewClassifier creates a symptom classification adapter
func NewClassifier(client *Client, model string, log zerolog.Logger) *Classifier {
	return &Classifier{
		client:     client,
		model:      model,
		categories: DiseaseCategories,
		log:        log.With().Str("component", "classifier").Logger(),
	}
}

// zeroShotResult mirrors the zero-shot pipeline output: labels and scores
// are parallel slices.
type zeroShotResult struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify scores text against the disease taxonomy and returns at most
// topK predictions with confidence above the floor, sorted descending.
// The sort is applied here rather than trusted from the service. Never
// returns nil.
func (c *Classifier) Classify(ctx context.Context, text string, topK int) []CategoryPrediction {
	start := time.Now()

	payload := map[string]any{
		"inputs": text,
		"parameters": map[string]any{
			"candidate_labels": c.categories,
			"multi_label":      true,
		},
	}

	var result zeroShotResult
	if err := c.client.post(ctx, "/models/"+c.model, payload, &result); err != nil {
		metrics.RecordModelCall(c.model, "error", time.Since(start))
		c.log.Warn().Err(err).Msg("classification failed, continuing with empty result")
		return []CategoryPrediction{}
	}
	metrics.RecordModelCall(c.model, "ok", time.Since(start))

	n := len(result.Labels)
	if len(result.Scores) < n {
		n = len(result.Scores)
	}

	predictions := make([]CategoryPrediction, 0, n)
	for i := 0; i < n; i++ {
		score := clamp01(result.Scores[i])
		if score <= minConfidence {
			continue
		}
		predictions = append(predictions, CategoryPrediction{
			Category:   result.Labels[i],
			Confidence: score,
			Reasoning:  reasoning(result.Labels[i], score),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Confidence > predictions[j].Confidence
	})

	if topK > 0 && len(predictions) > topK {
		predictions = predictions[:topK]
	}

	c.log.Debug().Int("predictions", len(predictions)).Msg("symptoms classified")
	return predictions
}

// reasoning builds the human-readable explanation attached to a
// prediction.
func reasoning(category string, confidence float64) string {
	level := "low"
	switch {
	case confidence > 0.7:
		level = "high"
	case confidence > 0.4:
		level = "moderate"
	}

	name := strings.TrimSpace(strings.SplitN(category, "(", 2)[0])
	return fmt.Sprintf(
		"Based on symptom analysis, there is %s confidence (%.1f%%) that symptoms align with %s.",
		level, confidence*100, name,
	)
}
