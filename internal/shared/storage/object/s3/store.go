package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"contract-backend/internal/shared/storage/object"
	"contract-backend/internal/shared/util"
)

// Client is the subset of the S3 API the store needs.
type Client interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
}

// Store implements object.Store backed by an S3 bucket.
type Store struct {
	client Client
	bucket string
	prefix string
}

// New creates a new S3 object store. prefix may be empty.
func New(client Client, bucket, prefix string) object.Store {
	return &Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Save uploads the reader to S3 under a random key prefix and returns the
// storage key, size, and sniffed mime type.
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (string, int64, string, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", 0, "", fmt.Errorf("sanitize file name: %w", err)
	}

	key := fmt.Sprintf("%s_%s", randomID(), sanitizedName)

	// PutObject needs a seekable body for signing, so buffer the upload.
	body, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", fmt.Errorf("read body: %w", err)
	}
	mimeType := http.DetectContentType(body)

	_, err = s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.applyPrefix(key)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", 0, "", fmt.Errorf("put object: %w", err)
	}

	return key, int64(len(body)), mimeType, nil
}

// Open fetches a stored object from S3.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if strings.Contains(storageKey, "..") {
		return nil, fmt.Errorf("invalid storage key")
	}

	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.applyPrefix(storageKey)),
	})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return out.Body, nil
}

func (s *Store) applyPrefix(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
