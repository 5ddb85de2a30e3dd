package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	DocumentID        string    `json:"documentId"`
	FileName          string    `json:"fileName"`
	MimeType          string    `json:"mimeType"`
	SizeBytes         int64     `json:"sizeBytes"`
	DocumentType      string    `json:"documentType"`
	ExtractConfidence int       `json:"extractConfidence"`
	UploadedAt        time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:        doc.ID,
		FileName:          doc.FileName,
		MimeType:          doc.MimeType,
		SizeBytes:         doc.SizeBytes,
		DocumentType:      doc.DocumentType,
		ExtractConfidence: doc.ExtractConfidence,
		UploadedAt:        doc.CreatedAt,
	}
}
