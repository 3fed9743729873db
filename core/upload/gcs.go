package upload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/zeyal/storefront/config"
)

// GCS stores blobs in a publicly readable Cloud Storage bucket. With uniform
// bucket-level access and an allUsers object-viewer grant, the returned URL
// stays valid for the life of the object, which is the durability the
// catalog needs for image links.
type GCS struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewGCS(client *storage.Client, cfg config.Storage) (*GCS, error) {
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New("storage bucket is not configured")
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = "https://storage.googleapis.com"
	}

	return &GCS{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// Upload writes data to the bucket under name and returns the object's
// public URL.
func (g *GCS) Upload(ctx context.Context, data []byte, name string, contentType string) (string, error) {
	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.ChunkSize = 0

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("writing object[%s]: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing object[%s]: %w", name, err)
	}

	return g.publicURL(name), nil
}

func (g *GCS) publicURL(name string) string {
	parts := strings.Split(name, "/")
	for i := range parts {
		parts[i] = url.PathEscape(parts[i])
	}
	return fmt.Sprintf("%s/%s/%s", g.baseURL, g.bucket, strings.Join(parts, "/"))
}
