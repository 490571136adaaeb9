// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

package objstore

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hondana-app/hondana/pkg/uuidv7"
)

// localStore implements [Store] on the local filesystem. The image directory
// is served as static content by the API server (or a fronting CDN in
// production deployments that mount the same volume).
type localStore struct {
	baseDir string
	baseURL string
}

// NewLocalStore constructs a filesystem backed [Store] rooted at baseDir.
// Stored objects become reachable under baseURL.
func NewLocalStore(baseDir, baseURL string) Store {
	return &localStore{
		baseDir: baseDir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// extensionFor maps supported image MIME types to file extensions.
func extensionFor(mimeType string) (string, error) {
	switch mimeType {
	case "image/webp":
		return ".webp", nil
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	case "image/gif":
		return ".gif", nil
	}
	return "", fmt.Errorf("unsupported mime type %q", mimeType)
}

// sanitizeFolder keeps the folder hint inside the storage root.
func sanitizeFolder(folderHint string) string {
	cleaned := path.Clean("/" + folderHint)
	return strings.TrimPrefix(cleaned, "/")
}

func (store *localStore) Put(_ context.Context, data []byte, mimeType, folderHint string) (Object, error) {
	extension, err := extensionFor(mimeType)
	if err != nil {
		return Object{}, WrapErr(err)
	}

	folder := sanitizeFolder(folderHint)
	filename := uuidv7.Must() + extension

	directory := filepath.Join(store.baseDir, filepath.FromSlash(folder))
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return Object{}, WrapErr(err)
	}
	if err := os.WriteFile(filepath.Join(directory, filename), data, 0o644); err != nil {
		return Object{}, WrapErr(err)
	}

	object := Object{URL: store.baseURL + "/" + path.Join(folder, filename)}

	// Dimensions are best-effort; webp has no stdlib decoder and reports 0x0.
	if dimensions, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		object.Width = dimensions.Width
		object.Height = dimensions.Height
	}

	return object, nil
}
