// Copyright (c) 2026 Hondana. All rights reserved.
// Author: dev@hondana.app

// Package requestutil centralizes the repetitive mechanics of HTTP handlers:
// decoding JSON bodies, reading route parameters, and pulling the acting
// principal out of the request context.
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hondana-app/hondana/internal/platform/apperr"
	"github.com/hondana-app/hondana/internal/platform/ctxutil"
	"github.com/hondana-app/hondana/internal/platform/sec"
	"github.com/hondana-app/hondana/internal/platform/validate"
)

// maxBodyBytes caps JSON request bodies at 1 MiB. Image bytes travel as
// multipart uploads, never through this path.
const maxBodyBytes = 1 << 20

// DecodeJSON parses the request body into destination, enforcing a size cap
// and rejecting unknown fields. Returns a VALIDATION_ERROR on malformed input.
func DecodeJSON(writer http.ResponseWriter, request *http.Request, destination any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(destination); err != nil {
		var maxBytesError *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperr.ValidationError("Request body is empty")
		case errors.As(err, &maxBytesError):
			return apperr.ValidationError("Request body is too large")
		default:
			return apperr.ValidationError("Request body is not valid JSON")
		}
	}

	// Reject trailing garbage after the first JSON value.
	if decoder.More() {
		return apperr.ValidationError("Request body must contain a single JSON object")
	}

	return nil
}

// Param returns the named chi route parameter.
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// ID returns the named route parameter, validated as a UUID.
func ID(request *http.Request, name string) (string, error) {
	value := chi.URLParam(request, name)

	validator := &validate.Validator{}
	validator.UUID(name, value)
	if err := validator.Err(); err != nil {
		return "", err
	}

	return value, nil
}

// Claims returns the acting principal, or nil for anonymous requests.
func Claims(request *http.Request) *sec.AuthClaims {
	return ctxutil.GetAuthUser(request.Context())
}

// RequiredClaims returns the acting principal or an UNAUTHORIZED error.
func RequiredClaims(request *http.Request) (*sec.AuthClaims, error) {
	claims := ctxutil.GetAuthUser(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return claims, nil
}

// RequiredUserID returns the acting principal's user ID or an UNAUTHORIZED error.
func RequiredUserID(request *http.Request) (string, error) {
	claims, err := RequiredClaims(request)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}
