// Copyright (c) 2026 Minh Dang. All rights reserved.

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters.
// Lists are always ordered by identifier ascending, so a (page, limit) pair maps
// to a deterministic window of records.
package pagination

import (
	"net/http"
	"strconv"

	"github.com/minhdang/bookcatalog/internal/platform/apperr"
)

const (
	// MaxLimit is the upper bound for items per page to prevent system abuse.
	MaxLimit = 500
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and limit from a request's query string.
type Params struct {
	Page  int
	Limit int
}

// Skip returns the number of records to skip before the requested window,
// i.e. (page-1) * limit.
func (p Params) Skip() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// FromRequest parses "page" and "limit" query parameters from an HTTP request.
//
// # Validation
//
// Unlike lenient parsers that silently clamp, out-of-range or non-integer
// values are rejected with a field-level validation error: page must be >= 1
// and limit must be within [1, MaxLimit]. Absent parameters fall back to
// [DefaultPage] and the supplied default limit.
func FromRequest(r *http.Request, defaultLimit int) (Params, error) {
	v := validationErrors{}

	page := v.parse(r, "page", DefaultPage)
	limit := v.parse(r, "limit", defaultLimit)

	if page < DefaultPage {
		v.add("page", "Must be greater than or equal to 1")
	}

	if limit < 1 || limit > MaxLimit {
		v.add("limit", "Must be between 1 and "+strconv.Itoa(MaxLimit))
	}

	if len(v.errs) > 0 {
		return Params{}, apperr.ValidationError("Invalid pagination parameters", v.errs...)
	}

	return Params{Page: page, Limit: limit}, nil
}

// validationErrors accumulates field errors while parsing query parameters.
type validationErrors struct {
	errs []apperr.FieldError
}

func (v *validationErrors) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// parse reads a single integer query parameter with a fallback default.
func (v *validationErrors) parse(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		v.add(key, "Must be an integer")
		return defaultVal
	}

	return n
}
