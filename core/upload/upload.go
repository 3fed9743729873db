// Package upload is the blob storage collaborator: it accepts raw file bytes
// and returns a durable URL the catalog can reference.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"

	"github.com/zeyal/storefront/api/web"
	"github.com/zeyal/storefront/api/weberr"
	"github.com/zeyal/storefront/validate"
)

// maxUploadBytes caps product images at 10MiB.
const maxUploadBytes = 10 << 20

// Uploader stores a blob under the given object name and returns its durable
// URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, name string, contentType string) (string, error)
}

// HandleCreate accepts a multipart form with a "file" field, stores the blob
// under a fresh name and responds with its URL.
func HandleCreate(up Uploader) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			return weberr.NewError(err, "file is required", http.StatusBadRequest)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("reading upload: %w", err)
		}
		if len(data) == 0 {
			err := errors.New("empty upload")
			return weberr.NewError(err, "file is required", http.StatusBadRequest)
		}

		url, err := up.Upload(ctx, data, objectName(header), contentType(header))
		if err != nil {
			return fmt.Errorf("storing upload[%s]: %w", header.Filename, err)
		}

		resp := struct {
			URL string `json:"url"`
		}{url}
		return web.Respond(ctx, w, resp, http.StatusOK)
	}
}

// objectName builds a collision-free object path, keeping only the original
// file extension.
func objectName(header *multipart.FileHeader) string {
	ext := path.Ext(header.Filename)
	if ext == "" {
		ext = ".bin"
	}
	return "uploads/" + validate.GenerateID() + ext
}

func contentType(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
