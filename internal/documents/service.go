package documents

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"contract-backend/internal/analysis"
	"contract-backend/internal/extract"
	"contract-backend/internal/shared/storage/object"
)

// Service contains business logic for documents.
type Service struct {
	Store    object.Store
	Registry *Registry
}

// Upload saves the file to object storage, extracts its text, and records
// the document in the registry.
func (s *Service) Upload(ctx context.Context, fileName string, r io.Reader) (Document, error) {
	if fileName == "" {
		return Document{}, ErrInvalidInput
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, fileName, r)
	if err != nil {
		return Document{}, err
	}

	extracted, err := extract.Text(ctx, s.Store, storageKey, mimeType, fileName)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		ID:                uuid.NewString(),
		FileName:          fileName,
		MimeType:          mimeType,
		SizeBytes:         size,
		StorageKey:        storageKey,
		DocumentType:      analysis.DetectDocumentType(extracted.Text),
		ExtractedText:     extracted.Text,
		ExtractConfidence: extracted.Confidence,
		CreatedAt:         time.Now().UTC(),
	}

	if err := s.Registry.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	return doc, nil
}

// Get returns a document by ID.
func (s *Service) Get(ctx context.Context, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Registry.GetByID(ctx, documentID)
}

// List returns documents newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Document, error) {
	return s.Registry.List(ctx, limit, offset)
}
