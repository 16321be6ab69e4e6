package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/medassist/cdss/internal/shared/errors"
)

// Extractor turns an uploaded binary blob into normalized UTF-8 text.
// Extraction is fail-closed: an unsupported type, empty result or
// unavailable OCR engine is reported as an error to the caller.
type Extractor struct {
	ocr        *OCRClient
	ocrEnabled bool
	log        zerolog.Logger
}

// NewExtractor creates a text extraction service
func NewExtractor(ocr *OCRClient, ocrEnabled bool, log zerolog.Logger) *Extractor {
	return &Extractor{
		ocr:        ocr,
		ocrEnabled: ocrEnabled,
		log:        log.With().Str("component", "document").Logger(),
	}
}

// ExtractText extracts text from file data. fileType is the lower-case
// extension without the dot.
func (e *Extractor) ExtractText(ctx context.Context, data []byte, fileType string) (string, error) {
	var (
		text string
		err  error
	)

	switch fileType {
	case "pdf":
		text, err = e.extractPDF(data)
	case "jpg", "jpeg", "png":
		text, err = e.extractImage(ctx, data, fileType)
	default:
		return "", errors.BadRequest(fmt.Sprintf("unsupported file type: %s", fileType))
	}
	if err != nil {
		return "", err
	}

	text = normalize(text)
	if text == "" {
		return "", errors.BadRequest("no text could be extracted from the document")
	}

	e.log.Info().Str("file_type", fileType).Int("text_length", len(text)).Msg("text extracted")
	return text, nil
}

func (e *Extractor) extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.BadRequest("failed to parse PDF: " + err.Error())
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.BadRequest("failed to extract text from PDF: " + err.Error())
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", errors.Processing(err, "failed to read PDF text")
	}

	return sb.String(), nil
}

func (e *Extractor) extractImage(ctx context.Context, data []byte, fileType string) (string, error) {
	if !e.ocrEnabled || e.ocr == nil {
		return "", errors.Processing(fmt.Errorf("OCR disabled"), "OCR engine not available")
	}

	contentType := "image/" + fileType
	if fileType == "jpg" {
		contentType = "image/jpeg"
	}

	text, err := e.ocr.Recognize(ctx, data, contentType)
	if err != nil {
		return "", errors.Processing(err, "OCR engine not available")
	}

	return text, nil
}

// normalize collapses runs of whitespace (including newlines) to single
// spaces and trims the result. No other character filtering.
func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
