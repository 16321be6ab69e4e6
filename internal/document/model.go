package document

import (
	"github.com/medassist/cdss/internal/ml"
	"github.com/medassist/cdss/internal/shared/types"
)

// AllowedFileTypes are the upload extensions accepted for processing.
var AllowedFileTypes = []string{"pdf", "jpg", "jpeg", "png"}

// MaxPreviewChars bounds the text preview in the upload response.
const MaxPreviewChars = 500

// FileInfo describes the processed upload
type FileInfo struct {
	Filename   string  `json:"filename"`
	FileType   string  `json:"file_type"`
	SizeMB     float64 `json:"size_mb"`
	TextLength int     `json:"text_length"`
}

// UploadResponse is returned after a document upload. The document ID is
// response-scoped; nothing is persisted.
type UploadResponse struct {
	Success           bool               `json:"success"`
	Message           string             `json:"message"`
	ExtractedText     string             `json:"extracted_text"`
	TextPreview       string             `json:"text_preview"`
	ExtractedEntities []ml.MedicalEntity `json:"extracted_entities"`
	DocumentID        types.Token        `json:"document_id"`
	FileInfo          FileInfo           `json:"file_info"`
}

func isAllowedFileType(ext string) bool {
	for _, t := range AllowedFileTypes {
		if ext == t {
			return true
		}
	}
	return false
}

// preview returns the first MaxPreviewChars characters of text, with an
// ellipsis when truncated.
func preview(text string) string {
	if len(text) <= MaxPreviewChars {
		return text
	}
	return text[:MaxPreviewChars] + "..."
}
