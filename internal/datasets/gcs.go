package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

type GCSConfig struct {
	Bucket string
	Prefix string
	// CredentialsJSON or CredentialsFile; both empty means application default credentials.
	CredentialsJSON string
	CredentialsFile string
}

type GCSSource struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSSource(ctx context.Context, cfg GCSConfig) (*GCSSource, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("gcs bucket required")
	}
	opts := clientOptions(cfg)
	opts = append(opts, option.WithScopes(storage.ScopeReadOnly))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &GCSSource{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func clientOptions(cfg GCSConfig) []option.ClientOption {
	opts := []option.ClientOption{}
	if creds := strings.TrimSpace(cfg.CredentialsJSON); creds != "" {
		return append(opts, option.WithCredentialsJSON([]byte(creds)))
	}
	if path := strings.TrimSpace(cfg.CredentialsFile); path != "" {
		return append(opts, option.WithCredentialsFile(path))
	}
	return opts
}

func (s *GCSSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := objectKey(s.prefix, name)
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read %s/%s: %w", s.bucket, key, err)
	}
	return r, nil
}

func (s *GCSSource) Kind() string { return "gs" }

func (s *GCSSource) String() string { return "gs://" + objectKey(s.bucket, s.prefix) }

func (s *GCSSource) Close() error { return s.client.Close() }
