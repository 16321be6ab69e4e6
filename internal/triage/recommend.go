package triage

import (
	"strings"

	"github.com/medassist/cdss/internal/ml"
)

// Disclaimer is appended to every recommendation list and carried on
// every analysis response.
const Disclaimer = "This is AI-generated advice - always consult qualified healthcare provider"

var generalAdvice = []string{
	"Monitor your symptoms and track any changes",
	"Stay well hydrated and get adequate rest",
}

var urgentAdvice = []string{
	"URGENT: Contact healthcare provider or consider emergency services",
	"Do not delay seeking medical attention",
}

var soonAdvice = []string{
	"Schedule appointment with healthcare provider soon",
	"Keep record of symptom progression",
}

var selfCareAdvice = []string{
	"Continue self-monitoring for 24-48 hours",
	"Over-the-counter remedies may help with symptom relief",
}

const worseningAdvice = "If symptoms worsen rapidly, seek immediate medical care"

// categoryAdvice maps a category keyword to its advice pair. Checked in
// order against the top prediction; the first match wins and the branches
// are mutually exclusive.
var categoryAdvice = []struct {
	keyword string
	advice  [2]string
}{
	{"respiratory", [2]string{
		"Avoid smoke and air pollutants",
		"Use humidifier if air is dry",
	}},
	{"cardiovascular", [2]string{
		"Monitor blood pressure if equipment available",
		"Avoid strenuous activity until evaluated",
	}},
	{"gastrointestinal", [2]string{
		"Follow bland diet (BRAT: bananas, rice, applesauce, toast)",
		"Avoid dairy and fatty foods temporarily",
	}},
	{"mental health", [2]string{
		"Practice stress-reduction techniques",
		"Consider speaking with mental health professional",
	}},
}

// GenerateRecommendations builds the ordered recommendation list. The
// ordering is a contract: the two general-care strings come first and the
// disclaimer is always last. Severity matching is case-insensitive, same
// as the scoring table.
func (p Policy) GenerateRecommendations(predictions []ml.CategoryPrediction, score float64, severity string) []string {
	recommendations := make([]string, 0, 8)
	recommendations = append(recommendations, generalAdvice...)

	switch {
	case score > 70:
		recommendations = append(recommendations, urgentAdvice...)
	case score > 50:
		recommendations = append(recommendations, soonAdvice...)
	default:
		recommendations = append(recommendations, selfCareAdvice...)
	}

	if strings.EqualFold(severity, "severe") {
		recommendations = append(recommendations, worseningAdvice)
	}

	if len(predictions) > 0 {
		topCategory := strings.ToLower(predictions[0].Category)
		for _, ca := range categoryAdvice {
			if strings.Contains(topCategory, ca.keyword) {
				recommendations = append(recommendations, ca.advice[0], ca.advice[1])
				break
			}
		}
	}

	recommendations = append(recommendations, Disclaimer)
	return recommendations
}
