package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	got, err := SanitizeFileName("  nda/v2\\final.pdf ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "nda_v2_final.pdf" {
		t.Fatalf("expected separators replaced, got %q", got)
	}
}

func TestSanitizeFileNameStripsControlChars(t *testing.T) {
	got, err := SanitizeFileName("contract\x00\x1f.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "contract.docx" {
		t.Fatalf("expected control characters removed, got %q", got)
	}
}

func TestSanitizeFileNameRejectsTraversal(t *testing.T) {
	if _, err := SanitizeFileName("../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
}
