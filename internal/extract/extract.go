package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"contract-backend/internal/shared/storage/object"
)

const (
	mimePDF   = "application/pdf"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"
)

// Result carries the extracted text and a 0-100 confidence score for how
// faithfully the text reflects the source document.
type Result struct {
	Text       string
	Confidence int
}

// Text pulls text from a stored object.
func Text(ctx context.Context, store object.Store, fileKey string, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s mime=%s: read: %w", fileKey, mimeType, err)
	}

	res, err := FromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return Result{}, fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	return res, nil
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	normalized := normalizeMimeType(mimeType, fileName, data)
	switch {
	case normalized == mimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Confidence: scoreText(text, 85)}, nil
	case normalized == mimeDOCX:
		text, err := extractDOCX(data)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: text, Confidence: scoreText(text, 95)}, nil
	case strings.HasPrefix(normalized, "text/"):
		if !utf8.Valid(data) {
			return Result{}, errors.New("text payload is not valid utf-8")
		}
		text := strings.TrimSpace(string(data))
		return Result{Text: text, Confidence: scoreText(text, 100)}, nil
	default:
		return Result{}, fmt.Errorf("unsupported mime type: %s", normalized)
	}
}

// scoreText degrades the format's base confidence for thin extractions, which
// usually mean a scanned or image-heavy source.
func scoreText(text string, base int) int {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return 0
	case len(trimmed) < 50:
		return base / 2
	case len(trimmed) < 200:
		return base - 15
	default:
		return base
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	if clean == "application/octet-stream" {
		if ext := strings.ToLower(filepath.Ext(fileName)); ext == ".txt" || ext == ".md" {
			return mimePlain
		}
	}
	if clean != "application/zip" {
		return clean
	}

	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}

	if strings.ToLower(filepath.Ext(fileName)) == ".docx" {
		return mimeDOCX
	}
	return clean
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			return mimeDOCX
		}
	}
	return ""
}
