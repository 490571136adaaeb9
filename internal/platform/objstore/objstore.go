// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

/*
Package objstore defines the binary object storage collaborator contract.

Page images and cover art are materialized to an S3-compatible bucket before
the catalog rows referencing them are written. The catalog core only depends
on this interface; the concrete S3/R2 client lives outside the core and is
injected at startup.

Failure Semantics:

  - Any storage failure is surfaced as an UPSTREAM_ERROR (502-class).
  - The owning catalog mutation must abort: no Title or Chapter row is
    persisted without its declared image set, except where image URLs were
    supplied directly instead of bytes.
*/
package objstore

import (
	"context"

	"github.com/hondana-app/hondana/internal/platform/apperr"
)

// Object describes a stored binary object.
type Object struct {
	// URL is the public location of the stored object.
	URL string `json:"url"`
	// Width and Height are pixel dimensions for image objects, zero otherwise.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Store is the abstract contract consumed by the catalog services.
type Store interface {

	/*
		Put uploads raw bytes and returns the resulting object reference.

		Parameters:
		  - context: context.Context
		  - data: []byte (Raw object content)
		  - mimeType: string (e.g. "image/webp")
		  - folderHint: string (Logical prefix, e.g. "chapters/{id}")

		Returns:
		  - Object: The stored object's URL and dimensions
		  - error: Upstream failure; callers must abort the owning mutation
	*/
	Put(context context.Context, data []byte, mimeType, folderHint string) (Object, error)
}

// WrapErr converts a raw storage failure into the canonical upstream error.
func WrapErr(err error) error {
	if err == nil {
		return nil
	}
	return apperr.Upstream("Image storage", err)
}
