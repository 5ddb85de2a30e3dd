package documents

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput is returned for malformed upload requests.
	ErrInvalidInput = errors.New("invalid input")
)

// Document represents an uploaded document and its extracted text.
type Document struct {
	ID                string
	FileName          string
	MimeType          string
	SizeBytes         int64
	StorageKey        string
	DocumentType      string
	ExtractedText     string
	ExtractConfidence int
	CreatedAt         time.Time
}
