package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytes_DocxParagraphs(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body>` +
		`<w:p><w:r><w:t>MUTUAL NON-DISCLOSURE AGREEMENT</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>The parties agree to keep information confidential.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDocx(t, doc)

	res, err := FromBytes(context.Background(), data, mimeDOCX, "nda.docx")
	if err != nil {
		t.Fatalf("extract docx: %v", err)
	}
	lines := strings.Split(res.Text, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected paragraph break, got %q", res.Text)
	}
	if lines[0] != "MUTUAL NON-DISCLOSURE AGREEMENT" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if res.Confidence <= 0 {
		t.Fatalf("expected positive confidence, got %d", res.Confidence)
	}
}

func TestFromBytes_ZipDocxNormalizes(t *testing.T) {
	doc := `<w:document xmlns:w="ns"><w:body><w:p><w:r><w:t>Service agreement body text long enough to register.</w:t></w:r></w:p></w:body></w:document>`
	data := buildDocx(t, doc)

	if _, err := FromBytes(context.Background(), data, "application/zip", "test.docx"); err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
}

func TestFromBytes_RealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = FromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if err == nil {
		t.Fatal("expected unsupported mime error for zip")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: application/zip") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromBytes_PlainText(t *testing.T) {
	body := strings.Repeat("This Employment Agreement is made between the parties. ", 5)
	res, err := FromBytes(context.Background(), []byte(body), "text/plain; charset=utf-8", "contract.txt")
	if err != nil {
		t.Fatalf("extract plain text: %v", err)
	}
	if res.Confidence != 100 {
		t.Fatalf("expected confidence 100 for long plain text, got %d", res.Confidence)
	}
	if !strings.Contains(res.Text, "Employment Agreement") {
		t.Fatalf("text lost content: %q", res.Text)
	}
}

func TestFromBytes_ShortTextLowersConfidence(t *testing.T) {
	res, err := FromBytes(context.Background(), []byte("short"), "text/plain", "note.txt")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if res.Confidence >= 100 {
		t.Fatalf("expected degraded confidence for thin text, got %d", res.Confidence)
	}
}

func TestStripDocxXML_InvalidFallsBackToRaw(t *testing.T) {
	raw := "<w:p>unclosed"
	if got := stripDocxXML(raw); got != raw {
		t.Fatalf("expected raw fallback, got %q", got)
	}
}
