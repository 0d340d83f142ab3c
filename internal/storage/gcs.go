// Package storage fetches statement documents referenced by gs:// URIs.
// Long-term raw-file storage is not the pipeline's concern; this only
// covers pulling bytes for one run.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

// IsGCSURI reports whether uri names a Google Cloud Storage object.
func IsGCSURI(uri string) bool {
	return strings.HasPrefix(uri, "gs://")
}

// SplitGCSURI splits "gs://bucket/path/to/file.pdf" into bucket and
// object name.
func SplitGCSURI(uri string) (bucket, object string, err error) {
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("SplitGCSURI: malformed GCS URI %q", uri)
	}
	return parts[0], parts[1], nil
}

// Filename extracts the base filename from a GCS URI.
func Filename(uri string) string {
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}

// Fetch downloads the object named by a gs:// URI.
func Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := SplitGCSURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.Fetch: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage.Fetch: open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storage.Fetch: read GCS object: %w", err)
	}
	return data, nil
}
