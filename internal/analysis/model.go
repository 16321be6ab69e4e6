package analysis

import (
	"fmt"

	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/shared/errors"
	"github.com/medassist/cdss/internal/shared/types"
	"github.com/medassist/cdss/internal/triage"
)

// ResultDisclaimer is carried on every analysis response.
const ResultDisclaimer = "AI-generated analysis for educational purposes only. Consult a healthcare professional."

// SymptomProfile is the patient input for an analysis request. Immutable,
// request-scoped.
type SymptomProfile struct {
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	SymptomsText string `json:"symptoms_text"`
	DurationDays int    `json:"symptom_duration_days"`
	Severity     string `json:"severity"`
}

// EnhancedProfile is a symptom profile plus optional context from
// previously uploaded documents.
type EnhancedProfile struct {
	SymptomProfile
	DocumentText       string   `json:"document_text,omitempty"`
	PreviousDiagnoses  []string `json:"previous_diagnoses,omitempty"`
	CurrentMedications []string `json:"current_medications,omitempty"`
}

var validGenders = map[string]bool{"male": true, "female": true, "other": true}
var validSeverities = map[string]bool{"mild": true, "moderate": true, "severe": true}

// Validate checks field ranges. Fail-closed: a validation failure aborts
// the request before any model call.
func (p SymptomProfile) Validate() error {
	details := map[string]string{}

	if p.Age < 0 || p.Age > 120 {
		details["age"] = fmt.Sprintf("must be between 0 and 120, got %d", p.Age)
	}
	if !validGenders[p.Gender] {
		details["gender"] = "must be one of: male, female, other"
	}
	if len(p.SymptomsText) < 10 || len(p.SymptomsText) > 2000 {
		details["symptoms_text"] = fmt.Sprintf("must be between 10 and 2000 characters, got %d", len(p.SymptomsText))
	}
	if p.DurationDays < 0 || p.DurationDays > 365 {
		details["symptom_duration_days"] = fmt.Sprintf("must be between 0 and 365, got %d", p.DurationDays)
	}
	if !validSeverities[p.Severity] {
		details["severity"] = "must be one of: mild, moderate, severe"
	}

	if len(details) > 0 {
		return errors.Validation("invalid symptom profile", details)
	}
	return nil
}

// PredictedCondition is the response shape of one category prediction
type PredictedCondition struct {
	ConditionCategory string  `json:"condition_category"`
	ConfidenceScore   float64 `json:"confidence_score"`
	Reasoning         string  `json:"reasoning"`
}

// Result is the complete analysis response
type Result struct {
	PatientID           types.Token          `json:"patient_id"`
	ExtractedEntities   []ml.MedicalEntity   `json:"extracted_entities"`
	PredictedConditions []PredictedCondition `json:"predicted_conditions"`
	RiskTier            triage.RiskTier      `json:"risk_tier"`
	RiskLevel           string               `json:"risk_level"`
	RiskScore           float64              `json:"risk_score"`
	Recommendations     []string             `json:"recommendations"`
	OverallConfidence   float64              `json:"overall_confidence"`
	Disclaimer          string               `json:"disclaimer"`
}
