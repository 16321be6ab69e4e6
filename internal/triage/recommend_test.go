package triage

import (
	"strings"
	"testing"

	"github.com/medassist/cdss/internal/ml"
)

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// TestRecommendationOrdering verifies the ordering contract: the two
// general-care strings come first and the disclaimer is always last.
func TestRecommendationOrdering(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name        string
		predictions []ml.CategoryPrediction
		score       float64
		severity    string
	}{
		{"low risk no predictions", nil, 10, "mild"},
		{"moderate risk", nil, 55, "moderate"},
		{"high risk severe", []ml.CategoryPrediction{{Category: "Cardiovascular disease", Confidence: 0.9}}, 85, "severe"},
		{"unknown severity", nil, 40, "weird"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := p.GenerateRecommendations(tt.predictions, tt.score, tt.severity)

			if len(recs) < 5 {
				t.Fatalf("expected at least 5 recommendations, got %d", len(recs))
			}
			if recs[0] != generalAdvice[0] || recs[1] != generalAdvice[1] {
				t.Errorf("general-care pair not first: %q, %q", recs[0], recs[1])
			}
			if recs[len(recs)-1] != Disclaimer {
				t.Errorf("disclaimer not last: %q", recs[len(recs)-1])
			}
		})
	}
}

// TestRiskTierBranch tests the mutually exclusive score branches
func TestRiskTierBranch(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name        string
		score       float64
		wantPair    []string
		rejectPairs [][]string
	}{
		{"urgent above 70", 71, urgentAdvice, [][]string{soonAdvice, selfCareAdvice}},
		{"soon between 50 and 70", 60, soonAdvice, [][]string{urgentAdvice, selfCareAdvice}},
		{"boundary 70 is not urgent", 70, soonAdvice, [][]string{urgentAdvice}},
		{"boundary 50 is self-care", 50, selfCareAdvice, [][]string{urgentAdvice, soonAdvice}},
		{"self-care below 50", 20, selfCareAdvice, [][]string{urgentAdvice, soonAdvice}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := p.GenerateRecommendations(nil, tt.score, "mild")

			if recs[2] != tt.wantPair[0] || recs[3] != tt.wantPair[1] {
				t.Errorf("expected tier pair %q at positions 2-3, got %q, %q", tt.wantPair[0], recs[2], recs[3])
			}
			for _, pair := range tt.rejectPairs {
				if contains(recs, pair[0]) {
					t.Errorf("unexpected advice %q for score %v", pair[0], tt.score)
				}
			}
		})
	}
}

// TestSevereAdvice verifies the extra worsening-care string, matched
// case-insensitively like the scoring table.
func TestSevereAdvice(t *testing.T) {
	p := DefaultPolicy()

	for _, severity := range []string{"severe", "Severe", "SEVERE"} {
		recs := p.GenerateRecommendations(nil, 20, severity)
		if !contains(recs, worseningAdvice) {
			t.Errorf("severity %q: expected worsening-care advice", severity)
		}
	}

	recs := p.GenerateRecommendations(nil, 20, "mild")
	if contains(recs, worseningAdvice) {
		t.Error("mild severity should not add worsening-care advice")
	}
}

// TestCategoryAdvice tests category-specific advice from the top
// prediction
func TestCategoryAdvice(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name     string
		category string
		want     string
	}{
		{"respiratory", "Respiratory infection (cold, flu, COVID-19, pneumonia)", "Avoid smoke and air pollutants"},
		{"cardiovascular", "Cardiovascular disease (hypertension, heart disease)", "Monitor blood pressure if equipment available"},
		{"gastrointestinal", "Gastrointestinal disorder (gastritis, IBS, food poisoning)", "Follow bland diet (BRAT: bananas, rice, applesauce, toast)"},
		{"mental health", "Mental health condition (anxiety, depression, stress)", "Practice stress-reduction techniques"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictions := []ml.CategoryPrediction{{Category: tt.category, Confidence: 0.9}}
			recs := p.GenerateRecommendations(predictions, 20, "mild")

			if !contains(recs, tt.want) {
				t.Errorf("expected %q in recommendations", tt.want)
			}
		})
	}
}

// TestCategoryAdviceFirstMatchWins verifies category branches are
// mutually exclusive: a category matching several keywords only fires the
// first branch.
func TestCategoryAdviceFirstMatchWins(t *testing.T) {
	p := DefaultPolicy()

	predictions := []ml.CategoryPrediction{
		{Category: "Cardiovascular and respiratory complications", Confidence: 0.9},
	}
	recs := p.GenerateRecommendations(predictions, 20, "mild")

	if !contains(recs, "Avoid smoke and air pollutants") {
		t.Error("expected respiratory advice (first matching branch)")
	}
	if contains(recs, "Monitor blood pressure if equipment available") {
		t.Error("cardiovascular advice should not fire when respiratory matched first")
	}
}

// TestNoCategoryAdviceWithoutPredictions verifies empty predictions add
// no category-specific strings
func TestNoCategoryAdviceWithoutPredictions(t *testing.T) {
	p := DefaultPolicy()

	recs := p.GenerateRecommendations(nil, 20, "mild")

	// 2 general + 2 self-care + disclaimer
	if len(recs) != 5 {
		t.Fatalf("expected exactly 5 recommendations, got %d: %s", len(recs), strings.Join(recs, " | "))
	}
}

// TestOnlyTopPredictionDrivesAdvice verifies lower-ranked predictions are
// ignored
func TestOnlyTopPredictionDrivesAdvice(t *testing.T) {
	p := DefaultPolicy()

	predictions := []ml.CategoryPrediction{
		{Category: "Dermatological condition (skin rash, eczema, acne)", Confidence: 0.8},
		{Category: "Respiratory infection (cold, flu, COVID-19, pneumonia)", Confidence: 0.7},
	}
	recs := p.GenerateRecommendations(predictions, 20, "mild")

	if contains(recs, "Avoid smoke and air pollutants") {
		t.Error("second-ranked prediction should not drive category advice")
	}
}
