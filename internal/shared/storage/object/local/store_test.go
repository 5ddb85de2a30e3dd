package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, mimeType, err := store.Save(context.Background(), "contract.txt", strings.NewReader("This service agreement covers consulting."))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("This service agreement covers consulting.")) {
		t.Fatalf("size = %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("mimeType = %q", mimeType)
	}
	if !strings.HasSuffix(key, "_contract.txt") {
		t.Fatalf("key = %q, want random prefix plus sanitized name", key)
	}

	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "This service agreement covers consulting." {
		t.Fatalf("data = %q", data)
	}
}

func TestSaveRejectsTraversalName(t *testing.T) {
	store := New(t.TempDir())

	if _, _, _, err := store.Save(context.Background(), "../../etc/passwd", strings.NewReader("x")); err == nil {
		t.Fatal("expected traversal file name to be rejected")
	}
}

func TestOpenRejectsTraversalKey(t *testing.T) {
	store := New(t.TempDir())

	if _, err := store.Open(context.Background(), "../secret"); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
	if _, err := store.Open(context.Background(), "/etc/passwd"); err == nil {
		t.Fatal("expected absolute key to be rejected")
	}
}

func TestSaveEmptyFile(t *testing.T) {
	store := New(t.TempDir())

	key, size, _, err := store.Save(context.Background(), "empty.txt", strings.NewReader(""))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != 0 {
		t.Fatalf("size = %d", size)
	}
	rc, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rc.Close()
}
