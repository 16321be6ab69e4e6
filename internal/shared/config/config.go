package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	ML        MLConfig
	OCR       OCRConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

// MLConfig holds configuration for the model inference service.
type MLConfig struct {
	// URL is the base URL of the inference service
	URL string
	// APIKey is sent as a bearer token (optional)
	APIKey string
	// NERModel is the named entity recognition model identifier
	NERModel string
	// ClassifierModel is the zero-shot classification model identifier
	ClassifierModel string
	// Timeout bounds a single inference call
	Timeout time.Duration
	// TopK is the maximum number of category predictions returned
	TopK int
}

// OCRConfig holds configuration for the OCR engine sidecar.
type OCRConfig struct {
	// URL is the base URL of the OCR service
	URL string
	// Enabled controls whether image uploads are accepted
	Enabled bool
	// Timeout bounds a single OCR call
	Timeout time.Duration
}

// UploadConfig holds limits for document ingestion.
type UploadConfig struct {
	// MaxSizeBytes is the upload size cap (10 MB by default)
	MaxSizeBytes int64
}

type RateLimitConfig struct {
	Enabled bool
	RPS     int
	Burst   int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		ML: MLConfig{
			URL:             getEnv("ML_SERVICE_URL", "http://localhost:5000"),
			APIKey:          getEnv("ML_API_KEY", ""),
			NERModel:        getEnv("ML_NER_MODEL", "d4data/biomedical-ner-all"),
			ClassifierModel: getEnv("ML_CLASSIFIER_MODEL", "facebook/bart-large-mnli"),
			Timeout:         getEnvDuration("ML_TIMEOUT", 30*time.Second),
			TopK:            getEnvInt("ML_TOP_K", 5),
		},
		OCR: OCRConfig{
			URL:     getEnv("OCR_SERVICE_URL", "http://localhost:8884"),
			Enabled: getEnvBool("OCR_ENABLED", true),
			Timeout: getEnvDuration("OCR_TIMEOUT", 30*time.Second),
		},
		Upload: UploadConfig{
			MaxSizeBytes: int64(getEnvInt("UPLOAD_MAX_SIZE_MB", 10)) * 1024 * 1024,
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", false),
			RPS:     getEnvInt("RATE_LIMIT_RPS", 50),
			Burst:   getEnvInt("RATE_LIMIT_BURST", 100),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
