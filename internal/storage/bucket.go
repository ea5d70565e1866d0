// Package storage uploads submission attachments to a GCS bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"beetacademy/internal/pkg/logger"
)

// AttachmentStore persists submission attachments and resolves their public
// URLs.
type AttachmentStore interface {
	Upload(ctx context.Context, key string, file io.Reader) (string, error)
}

type bucketStore struct {
	log       *logger.Logger
	client    *gcs.Client
	bucket    string
	cdnDomain string
}

// NewBucketStore creates a GCS-backed attachment store. The bucket name comes
// from ATTACHMENT_GCS_BUCKET; ATTACHMENT_CDN_DOMAIN optionally fronts public
// URLs.
func NewBucketStore(ctx context.Context, log *logger.Logger) (AttachmentStore, error) {
	bucket := os.Getenv("ATTACHMENT_GCS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var ATTACHMENT_GCS_BUCKET")
	}

	client, err := gcs.NewClient(ctx, option.WithScopes(gcs.ScopeReadWrite))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &bucketStore{
		log:       log.With("component", "attachment-store"),
		client:    client,
		bucket:    bucket,
		cdnDomain: os.Getenv("ATTACHMENT_CDN_DOMAIN"),
	}, nil
}

func (s *bucketStore) Upload(ctx context.Context, key string, file io.Reader) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write attachment to bucket: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close bucket writer: %w", err)
	}

	s.log.Debug("attachment uploaded", "key", key)
	return s.publicURL(key), nil
}

func (s *bucketStore) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// BuildKey derives a collision-resistant object key from the upload time and
// the original file name.
func BuildKey(now time.Time, filename string) string {
	name := strings.TrimSpace(filename)
	name = unsafeKeyChars.ReplaceAllString(name, "_")
	if name == "" || name == "_" {
		name = "attachment"
	}
	return fmt.Sprintf("submissions/%d-%s", now.UnixMilli(), name)
}
