package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ErrNotExist is returned by a Source when the named file is absent.
var ErrNotExist = errors.New("dataset file does not exist")

// Source hands out the raw dataset files by name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Kind() string
	String() string
}

type Location struct {
	Kind   string // "fs", "s3" or "gs"
	Bucket string
	Prefix string
	Path   string
}

// ParseLocation understands s3://bucket/prefix, gs://bucket/prefix and plain
// directory paths (optionally written as file://path).
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, fmt.Errorf("empty dataset location")
	}
	switch {
	case strings.HasPrefix(raw, "s3://"), strings.HasPrefix(raw, "gs://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("parse dataset location: %w", err)
		}
		if u.Host == "" {
			return Location{}, fmt.Errorf("dataset location %q has no bucket", raw)
		}
		return Location{
			Kind:   u.Scheme,
			Bucket: u.Host,
			Prefix: strings.Trim(u.Path, "/"),
		}, nil
	case strings.HasPrefix(raw, "file://"):
		return Location{Kind: "fs", Path: strings.TrimPrefix(raw, "file://")}, nil
	}
	return Location{Kind: "fs", Path: raw}, nil
}

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

// CloudOptions carries the provider settings that the location string
// cannot express.
type CloudOptions struct {
	S3Region     string
	S3Endpoint   string
	S3PathStyle  bool
	GCSCredsJSON string
	GCSCredsFile string
}

// NewSource builds the Source matching raw's scheme.
func NewSource(ctx context.Context, raw string, opts CloudOptions) (Source, error) {
	loc, err := ParseLocation(raw)
	if err != nil {
		return nil, err
	}
	switch loc.Kind {
	case "s3":
		return NewS3Source(ctx, S3Config{
			Bucket:    loc.Bucket,
			Prefix:    loc.Prefix,
			Region:    opts.S3Region,
			Endpoint:  opts.S3Endpoint,
			PathStyle: opts.S3PathStyle,
		})
	case "gs":
		return NewGCSSource(ctx, GCSConfig{
			Bucket:          loc.Bucket,
			Prefix:          loc.Prefix,
			CredentialsJSON: opts.GCSCredsJSON,
			CredentialsFile: opts.GCSCredsFile,
		})
	}
	return NewDirSource(loc.Path), nil
}
