package triage

// RiskTier is a discrete risk bucket derived from the continuous score.
type RiskTier string

const (
	TierLow      RiskTier = "LOW"
	TierModerate RiskTier = "MODERATE"
	TierHigh     RiskTier = "HIGH"
	TierVeryHigh RiskTier = "VERY_HIGH"
)

var tierDescriptions = map[RiskTier]string{
	TierLow:      "LOW RISK - Self-monitoring recommended. Symptoms may resolve with rest and basic care.",
	TierModerate: "MODERATE RISK - Consider scheduling appointment with healthcare provider within 1-3 days.",
	TierHigh:     "HIGH RISK - Recommend consulting healthcare provider within 24 hours.",
	TierVeryHigh: "VERY HIGH RISK - Consider urgent medical evaluation or emergency services if worsening.",
}

// Description returns the fixed human-readable description for the tier
func (t RiskTier) Description() string {
	return tierDescriptions[t]
}

// Policy is the complete scoring configuration: component weights,
// breakpoints, the high-risk keyword table and tier thresholds. The
// breakpoints are policy constants, not learned values; changing any of
// them changes clinical behavior, so they live in one place and the
// scoring functions stay pure.
type Policy struct {
	// Age component (0-20)
	AgeOver70  float64
	AgeOver60  float64
	AgeOver50  float64
	AgeUnder5  float64
	AgeUnder12 float64

	// Severity component (0-30); keys are lower-case
	SeverityPoints  map[string]float64
	SeverityDefault float64

	// Duration component (0-15), thresholds in days
	DurationOver14 float64
	DurationOver7  float64
	DurationOver3  float64

	// Top-prediction component (0-35). A top category whose name contains
	// one of HighRiskKeywords weighs the model confidence more heavily.
	HighRiskKeywords   []string
	HighRiskWeight     float64
	BaseCategoryWeight float64

	// Entity-count component (0-10)
	EntitiesOver5 float64
	EntitiesOver3 float64

	// MaxScore caps the summed components. The component maxima sum to
	// 110, so the scale deliberately saturates at the top.
	MaxScore float64

	// Tier thresholds on the clamped score
	ModerateFrom float64
	HighFrom     float64
	VeryHighFrom float64
}

// DefaultPolicy returns the scoring policy in production use.
func DefaultPolicy() Policy {
	return Policy{
		AgeOver70:  20,
		AgeOver60:  15,
		AgeOver50:  10,
		AgeUnder5:  15,
		AgeUnder12: 10,

		SeverityPoints: map[string]float64{
			"mild":     10,
			"moderate": 20,
			"severe":   30,
		},
		SeverityDefault: 10,

		DurationOver14: 15,
		DurationOver7:  10,
		DurationOver3:  5,

		HighRiskKeywords:   []string{"cardiovascular", "neurological", "infection", "metabolic"},
		HighRiskWeight:     35,
		BaseCategoryWeight: 20,

		EntitiesOver5: 10,
		EntitiesOver3: 5,

		MaxScore: 100,

		ModerateFrom: 30,
		HighFrom:     60,
		VeryHighFrom: 80,
	}
}

// Tier maps a clamped score onto its risk tier
func (p Policy) Tier(score float64) RiskTier {
	switch {
	case score < p.ModerateFrom:
		return TierLow
	case score < p.HighFrom:
		return TierModerate
	case score < p.VeryHighFrom:
		return TierHigh
	default:
		return TierVeryHigh
	}
}
