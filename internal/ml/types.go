package ml

// MedicalEntity is a labeled span extracted from symptom text by the NER
// model. Constructed at the adapter boundary with the confidence clamped
// to [0,1].
type MedicalEntity struct {
	Text       string  `json:"text"`
	EntityType string  `json:"entity_type"`
	Confidence float64 `json:"confidence"`
}

// CategoryPrediction is one zero-shot classification result against the
// fixed disease taxonomy. Lists are sorted descending by confidence.
type CategoryPrediction struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// DiseaseCategories is the fixed 10-item taxonomy used as candidate labels
// for zero-shot classification. Never mutated at runtime.
var DiseaseCategories = []string{
	"Respiratory infection (cold, flu, COVID-19, pneumonia)",
	"Cardiovascular disease (hypertension, heart disease)",
	"Gastrointestinal disorder (gastritis, IBS, food poisoning)",
	"Neurological condition (migraine, headache, dizziness)",
	"Musculoskeletal problem (arthritis, muscle pain, injury)",
	"Allergic reaction (hay fever, food allergy, skin allergy)",
	"Mental health condition (anxiety, depression, stress)",
	"Metabolic disorder (diabetes, thyroid issues)",
	"Infectious disease (bacterial or viral infection)",
	"Dermatological condition (skin rash, eczema, acne)",
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
