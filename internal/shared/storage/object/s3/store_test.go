package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	putKey  string
	putBody []byte
	getKey  string
}

func (f *fakeS3) PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.putKey = *params.Key
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.putBody = body
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	f.getKey = *params.Key
	return &awss3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(f.putBody)))}, nil
}

func TestSaveAppliesPrefixAndSniffsMime(t *testing.T) {
	fake := &fakeS3{}
	store := New(fake, "bucket", "documents/")

	key, size, mimeType, err := store.Save(context.Background(), "contract.txt", strings.NewReader("Plain text body"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("Plain text body")) {
		t.Fatalf("size = %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("mimeType = %q", mimeType)
	}
	if !strings.HasPrefix(fake.putKey, "documents/") {
		t.Fatalf("putKey = %q, want prefix applied", fake.putKey)
	}
	if strings.HasPrefix(key, "documents/") {
		t.Fatalf("key = %q, storage key should not include the prefix", key)
	}
}

func TestOpenAppliesPrefix(t *testing.T) {
	fake := &fakeS3{putBody: []byte("data")}
	store := New(fake, "bucket", "documents")

	rc, err := store.Open(context.Background(), "abc_contract.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	if fake.getKey != "documents/abc_contract.txt" {
		t.Fatalf("getKey = %q", fake.getKey)
	}
}

func TestOpenRejectsTraversalKey(t *testing.T) {
	store := New(&fakeS3{}, "bucket", "")
	if _, err := store.Open(context.Background(), "../other/key"); err == nil {
		t.Fatal("expected traversal key to be rejected")
	}
}

func TestApplyPrefix(t *testing.T) {
	cases := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "file.pdf", "file.pdf"},
		{"root", "file.pdf", "root/file.pdf"},
		{"root/", "file.pdf", "root/file.pdf"},
		{"/root/", "file.pdf", "root/file.pdf"},
		{"root/sub", "file.pdf", "root/sub/file.pdf"},
	}
	for _, tc := range cases {
		s := New(&fakeS3{}, "bucket", tc.prefix).(*Store)
		if got := s.applyPrefix(tc.key); got != tc.want {
			t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tc.prefix, tc.key, got, tc.want)
		}
	}
}
