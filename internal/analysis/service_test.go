package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/triage"
)

type stubExtractor struct {
	entities []ml.MedicalEntity
	lastText string
}

func (s *stubExtractor) ExtractEntities(ctx context.Context, text string) []ml.MedicalEntity {
	s.lastText = text
	if s.entities == nil {
		return []ml.MedicalEntity{}
	}
	return s.entities
}

type stubClassifier struct {
	predictions []ml.CategoryPrediction
	lastText    string
	lastTopK    int
}

func (s *stubClassifier) Classify(ctx context.Context, text string, topK int) []ml.CategoryPrediction {
	s.lastText = text
	s.lastTopK = topK
	if s.predictions == nil {
		return []ml.CategoryPrediction{}
	}
	return s.predictions
}

func validProfile() SymptomProfile {
	return SymptomProfile{
		Age:          30,
		Gender:       "female",
		SymptomsText: "persistent cough and mild fever for two days",
		DurationDays: 2,
		Severity:     "mild",
	}
}

func newTestService(ner *stubExtractor, classifier *stubClassifier) *Service {
	return NewService(ner, classifier, triage.DefaultPolicy(), 5, zerolog.Nop())
}

// TestAnalyzeWithEmptyModelOutput verifies a complete, valid result is
// returned when both adapters degrade to empty output
func TestAnalyzeWithEmptyModelOutput(t *testing.T) {
	svc := newTestService(&stubExtractor{}, &stubClassifier{})

	result := svc.Analyze(context.Background(), validProfile())

	if result.ExtractedEntities == nil || len(result.ExtractedEntities) != 0 {
		t.Errorf("expected empty entity list, got %v", result.ExtractedEntities)
	}
	if result.PredictedConditions == nil || len(result.PredictedConditions) != 0 {
		t.Errorf("expected empty prediction list, got %v", result.PredictedConditions)
	}
	if result.OverallConfidence != 0 {
		t.Errorf("expected overall confidence 0, got %v", result.OverallConfidence)
	}
	if result.RiskScore != 10 {
		t.Errorf("expected score 10 from metadata alone, got %v", result.RiskScore)
	}
	if result.RiskTier != triage.TierLow {
		t.Errorf("expected LOW tier, got %s", result.RiskTier)
	}
	if !result.PatientID.HasPrefix("PAT") {
		t.Errorf("expected PAT- prefixed patient ID, got %s", result.PatientID)
	}
	if result.Disclaimer != ResultDisclaimer {
		t.Errorf("unexpected disclaimer %q", result.Disclaimer)
	}
	if last := result.Recommendations[len(result.Recommendations)-1]; last != triage.Disclaimer {
		t.Errorf("expected recommendation disclaimer last, got %q", last)
	}
}

// TestAnalyzeOverallConfidence verifies overall confidence comes from the
// top prediction
func TestAnalyzeOverallConfidence(t *testing.T) {
	classifier := &stubClassifier{predictions: []ml.CategoryPrediction{
		{Category: "Respiratory infection (cold, flu, COVID-19, pneumonia)", Confidence: 0.82, Reasoning: "r"},
		{Category: "Infectious disease (bacterial or viral infection)", Confidence: 0.4, Reasoning: "r"},
	}}
	svc := newTestService(&stubExtractor{}, classifier)

	result := svc.Analyze(context.Background(), validProfile())

	if result.OverallConfidence != 0.82 {
		t.Errorf("expected overall confidence 0.82, got %v", result.OverallConfidence)
	}
	if len(result.PredictedConditions) != 2 {
		t.Fatalf("expected 2 predicted conditions, got %d", len(result.PredictedConditions))
	}
	if result.PredictedConditions[0].ConditionCategory != classifier.predictions[0].Category {
		t.Errorf("prediction mapping mismatch: %+v", result.PredictedConditions[0])
	}
	if classifier.lastTopK != 5 {
		t.Errorf("expected topK 5 passed to classifier, got %d", classifier.lastTopK)
	}
}

// TestAnalyzeWithDocumentsCombinesText verifies document context is
// truncated and appended after the separator label
func TestAnalyzeWithDocumentsCombinesText(t *testing.T) {
	ner := &stubExtractor{}
	classifier := &stubClassifier{}
	svc := newTestService(ner, classifier)

	input := EnhancedProfile{
		SymptomProfile: validProfile(),
		DocumentText:   strings.Repeat("x", 1500),
	}

	result := svc.AnalyzeWithDocuments(context.Background(), input)

	wantPrefix := input.SymptomsText + "\n\nMedical History from Documents:\n"
	if !strings.HasPrefix(ner.lastText, wantPrefix) {
		t.Errorf("combined text missing separator label: %q", ner.lastText[:80])
	}
	if want := len(wantPrefix) + 1000; len(ner.lastText) != want {
		t.Errorf("expected document text truncated to 1000 chars, combined length %d want %d", len(ner.lastText), want)
	}
	if ner.lastText != classifier.lastText {
		t.Error("extractor and classifier should receive the same combined text")
	}
	if result.Recommendations[0] != documentContextNote {
		t.Errorf("expected document note prepended, got %q", result.Recommendations[0])
	}
}

// TestAnalyzeWithDocumentsNoDocumentText verifies no note is prepended
// without document context
func TestAnalyzeWithDocumentsNoDocumentText(t *testing.T) {
	svc := newTestService(&stubExtractor{}, &stubClassifier{})

	result := svc.AnalyzeWithDocuments(context.Background(), EnhancedProfile{SymptomProfile: validProfile()})

	if result.Recommendations[0] == documentContextNote {
		t.Error("document note should not be prepended without document text")
	}
}

// TestAnalyzeHighRiskScenario runs the saturating scenario end to end
func TestAnalyzeHighRiskScenario(t *testing.T) {
	ner := &stubExtractor{entities: make([]ml.MedicalEntity, 6)}
	classifier := &stubClassifier{predictions: []ml.CategoryPrediction{
		{Category: "Cardiovascular disease (hypertension, heart disease)", Confidence: 0.8},
	}}
	svc := newTestService(ner, classifier)

	profile := SymptomProfile{
		Age:          75,
		Gender:       "male",
		SymptomsText: "severe chest pain radiating to the left arm",
		DurationDays: 20,
		Severity:     "severe",
	}

	result := svc.Analyze(context.Background(), profile)

	if result.RiskScore != 100 {
		t.Errorf("expected clamped score 100, got %v", result.RiskScore)
	}
	if result.RiskTier != triage.TierVeryHigh {
		t.Errorf("expected VERY_HIGH tier, got %s", result.RiskTier)
	}
	if result.RiskLevel != triage.TierVeryHigh.Description() {
		t.Errorf("unexpected risk level %q", result.RiskLevel)
	}
}
