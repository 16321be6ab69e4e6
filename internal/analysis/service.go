package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/shared/metrics"
	"github.com/medassist/cdss/internal/shared/types"
	"github.com/medassist/cdss/internal/triage"
)

// documentSeparator labels document context appended to the symptom text
const documentSeparator = "\n\nMedical History from Documents:\n"

// maxDocumentChars bounds how much document text joins the analysis
const maxDocumentChars = 1000

const documentContextNote = "Analysis enhanced with uploaded medical history documents"

// EntityExtractor extracts medical entities from text. Satisfied by
// ml.Extractor; fail-open by contract.
type EntityExtractor interface {
	ExtractEntities(ctx context.Context, text string) []ml.MedicalEntity
}

// SymptomClassifier classifies text against the disease taxonomy.
// Satisfied by ml.Classifier; fail-open by contract.
type SymptomClassifier interface {
	Classify(ctx context.Context, text string, topK int) []ml.CategoryPrediction
}

// Service orchestrates the analysis pipeline: entity extraction,
// classification, risk scoring and recommendation generation. Stateless
// per request; adapters are shared read-only.
type Service struct {
	ner        EntityExtractor
	classifier SymptomClassifier
	policy     triage.Policy
	topK       int
	log        zerolog.Logger
}

// NewService creates the analysis service
func NewService(ner EntityExtractor, classifier SymptomClassifier, policy triage.Policy, topK int, log zerolog.Logger) *Service {
	if topK <= 0 {
		topK = 5
	}
	return &Service{
		ner:        ner,
		classifier: classifier,
		policy:     policy,
		topK:       topK,
		log:        log.With().Str("component", "analysis").Logger(),
	}
}

// Analyze runs the full pipeline over a symptom profile
func (s *Service) Analyze(ctx context.Context, profile SymptomProfile) *Result {
	return s.analyze(ctx, profile, profile.SymptomsText, false)
}

// AnalyzeWithDocuments combines the symptom text with extracted document
// context before running the same pipeline. When document text was
// supplied, one extra recommendation is prepended.
func (s *Service) AnalyzeWithDocuments(ctx context.Context, input EnhancedProfile) *Result {
	text := input.SymptomsText
	withDocs := input.DocumentText != ""
	if withDocs {
		docText := input.DocumentText
		if len(docText) > maxDocumentChars {
			docText = docText[:maxDocumentChars]
		}
		text += documentSeparator + docText
	}

	return s.analyze(ctx, input.SymptomProfile, text, withDocs)
}

func (s *Service) analyze(ctx context.Context, profile SymptomProfile, text string, withDocs bool) *Result {
	patientID := types.NewPatientToken()

	entities := s.ner.ExtractEntities(ctx, text)
	predictions := s.classifier.Classify(ctx, text, s.topK)

	tier, score := s.policy.AssessRisk(profile.Age, profile.Severity, profile.DurationDays, entities, predictions)
	recommendations := s.policy.GenerateRecommendations(predictions, score, profile.Severity)
	if withDocs {
		recommendations = append([]string{documentContextNote}, recommendations...)
	}

	overallConfidence := 0.0
	conditions := make([]PredictedCondition, 0, len(predictions))
	for _, p := range predictions {
		conditions = append(conditions, PredictedCondition{
			ConditionCategory: p.Category,
			ConfidenceScore:   p.Confidence,
			Reasoning:         p.Reasoning,
		})
	}
	if len(predictions) > 0 {
		overallConfidence = predictions[0].Confidence
	}

	metrics.RecordAnalysis(string(tier))
	s.log.Info().
		Str("patient_id", patientID.String()).
		Str("risk_tier", string(tier)).
		Float64("risk_score", score).
		Int("entities", len(entities)).
		Int("predictions", len(predictions)).
		Msg("analysis complete")

	return &Result{
		PatientID:           patientID,
		ExtractedEntities:   entities,
		PredictedConditions: conditions,
		RiskTier:            tier,
		RiskLevel:           tier.Description(),
		RiskScore:           score,
		Recommendations:     recommendations,
		OverallConfidence:   overallConfidence,
		Disclaimer:          ResultDisclaimer,
	}
}
