package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// LoadGCS fetches and parses a catalog YAML object from a "gs://bucket/path"
// URI. Deployments that manage catalogs centrally point the process at a
// bucket instead of shipping files with the binary.
func LoadGCS(ctx context.Context, gcsURI string) (*Catalog, error) {
	bucket, object, err := splitGCSURI(gcsURI)
	if err != nil {
		return nil, fmt.Errorf("LoadGCS: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadGCS: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("LoadGCS: open object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("LoadGCS: read object: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("LoadGCS: %s: %w", gcsURI, err)
	}
	return c, nil
}

func splitGCSURI(uri string) (bucket, object string, err error) {
	trimmed, ok := strings.CutPrefix(uri, "gs://")
	if !ok {
		return "", "", fmt.Errorf("URI %q does not start with gs://", uri)
	}
	bucket, object, ok = strings.Cut(trimmed, "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("URI %q is not gs://bucket/object", uri)
	}
	return bucket, object, nil
}
