package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/analysis"
	"github.com/medassist/cdss/internal/document"
	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/shared/config"
	"github.com/medassist/cdss/internal/shared/metrics"
	appmw "github.com/medassist/cdss/internal/shared/middleware"
	"github.com/medassist/cdss/internal/triage"
)

const version = "2.0.0"

// App holds all application dependencies. Adapters are built once here
// and shared read-only across requests.
type App struct {
	Config *config.Config
	ML     *ml.Client
	OCR    *document.OCRClient
	Log    zerolog.Logger
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Server.Env)

	app := &App{Config: cfg, Log: logger}

	// Inference client, shared by both model adapters
	app.ML = ml.NewClient(ml.ClientConfig{
		BaseURL: cfg.ML.URL,
		APIKey:  cfg.ML.APIKey,
		Timeout: cfg.ML.Timeout,
	})
	extractor := ml.NewExtractor(app.ML, cfg.ML.NERModel, logger)
	classifier := ml.NewClassifier(app.ML, cfg.ML.ClassifierModel, logger)

	// Document pipeline
	if cfg.OCR.Enabled {
		app.OCR = document.NewOCRClient(document.OCRClientConfig{
			BaseURL: cfg.OCR.URL,
			Timeout: cfg.OCR.Timeout,
		})
	} else {
		logger.Warn().Msg("OCR disabled, image uploads will be rejected")
	}
	docExtractor := document.NewExtractor(app.OCR, cfg.OCR.Enabled, logger)
	docHandler := document.NewHandler(docExtractor, extractor, cfg.Upload.MaxSizeBytes, logger)

	// Analysis pipeline
	analysisSvc := analysis.NewService(extractor, classifier, triage.DefaultPolicy(), cfg.ML.TopK, logger)
	analysisHandler := analysis.NewHandler(analysisSvc)

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(appmw.SecurityHeaders)
	r.Use(appmw.MaxBody(cfg.Upload.MaxSizeBytes + 1024*1024))
	r.Use(metrics.Middleware)
	r.Use(appmw.RequestLogger(logger))
	r.Use(corsMiddleware)
	if cfg.RateLimit.Enabled {
		r.Use(appmw.RateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	// Health checks (unauthenticated)
	r.Get("/health", healthHandler)
	r.Get("/ready", readyHandler(app))
	r.Handle("/metrics", metrics.Handler())

	// API info
	r.Get("/", infoHandler)

	// API routes
	r.Route("/api", func(api chi.Router) {
		analysisHandler.Register(api)
		docHandler.Register(api)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info().Msg("shutting down server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		close(done)
	}()

	logger.Info().
		Str("env", cfg.Server.Env).
		Int("port", cfg.Server.Port).
		Str("ml_service", cfg.ML.URL).
		Str("ocr_service", cfg.OCR.URL).
		Bool("ocr_enabled", cfg.OCR.Enabled).
		Msg("MedAssist CDSS starting")

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}

	<-done
	logger.Info().Msg("server stopped")
}

func newLogger(env string) zerolog.Logger {
	if env == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

func infoHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"name":    "MedAssist CDSS",
		"version": version,
		"features": []string{
			"Symptom Analysis with AI",
			"Medical Document Upload (PDF/Images)",
			"Risk Stratification",
			"Evidence-based Recommendations",
		},
		"models": []string{
			"Medical NER (d4data/biomedical-ner-all)",
			"Zero-shot Classification (facebook/bart-large-mnli)",
		},
		"disclaimer": "For educational purposes only",
		"endpoints": map[string]string{
			"analyze":                "/api/analyze",
			"upload_document":        "/api/upload-document",
			"analyze_with_documents": "/api/analyze-with-documents",
		},
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

func readyHandler(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"server": "ready",
		}

		// Check inference service
		if err := app.ML.Health(r.Context()); err != nil {
			checks["ml_service"] = "not ready: " + err.Error()
		} else {
			checks["ml_service"] = "ready"
		}

		// Check OCR engine
		if app.OCR != nil {
			if err := app.OCR.Health(r.Context()); err != nil {
				checks["ocr_engine"] = "not ready: " + err.Error()
			} else {
				checks["ocr_engine"] = "ready"
			}
		} else {
			checks["ocr_engine"] = "not configured"
		}

		allReady := true
		for _, status := range checks {
			if status != "ready" && status != "not configured" {
				allReady = false
				break
			}
		}

		status := http.StatusOK
		if !allReady {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": map[bool]string{true: "ready", false: "not ready"}[allReady],
			"checks": checks,
		})
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
