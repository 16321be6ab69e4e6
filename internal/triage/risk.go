package triage

import (
	"math"
	"strings"

	"github.com/medassist/cdss/internal/ml"
)

// AssessRisk computes the deterministic risk score from patient metadata
// and model outputs. Five independent additive components, summed and
// clamped to [0, MaxScore]. Pure: no I/O, no shared state, safe for
// concurrent use.
func (p Policy) AssessRisk(age int, severity string, durationDays int, entities []ml.MedicalEntity, predictions []ml.CategoryPrediction) (RiskTier, float64) {
	score := p.ageComponent(age) +
		p.severityComponent(severity) +
		p.durationComponent(durationDays) +
		p.predictionComponent(predictions) +
		p.entityComponent(len(entities))

	if score > p.MaxScore {
		score = p.MaxScore
	}
	if score < 0 {
		score = 0
	}
	score = round2(score)

	return p.Tier(score), score
}

func (p Policy) ageComponent(age int) float64 {
	switch {
	case age > 70:
		return p.AgeOver70
	case age > 60:
		return p.AgeOver60
	case age > 50:
		return p.AgeOver50
	case age < 5:
		return p.AgeUnder5
	case age < 12:
		return p.AgeUnder12
	default:
		return 0
	}
}

func (p Policy) severityComponent(severity string) float64 {
	if pts, ok := p.SeverityPoints[strings.ToLower(severity)]; ok {
		return pts
	}
	return p.SeverityDefault
}

func (p Policy) durationComponent(days int) float64 {
	switch {
	case days > 14:
		return p.DurationOver14
	case days > 7:
		return p.DurationOver7
	case days > 3:
		return p.DurationOver3
	default:
		return 0
	}
}

// predictionComponent weighs the first-ranked prediction. The prediction
// list contract says it arrives sorted descending by confidence; the
// classifier adapter re-sorts defensively, so index 0 is the top category.
func (p Policy) predictionComponent(predictions []ml.CategoryPrediction) float64 {
	if len(predictions) == 0 {
		return 0
	}

	top := predictions[0]
	category := strings.ToLower(top.Category)

	for _, keyword := range p.HighRiskKeywords {
		if strings.Contains(category, keyword) {
			return top.Confidence * p.HighRiskWeight
		}
	}
	return top.Confidence * p.BaseCategoryWeight
}

func (p Policy) entityComponent(count int) float64 {
	switch {
	case count > 5:
		return p.EntitiesOver5
	case count > 3:
		return p.EntitiesOver3
	default:
		return 0
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
