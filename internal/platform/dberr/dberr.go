// Copyright (c) 2026 Minh Dang. All rights reserved.

// Package dberr provides a bridge between low-level document store errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minhdang/bookcatalog/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried document doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a store error and wraps it into a meaningful [apperr.AppError].
// Anything that is not a missing-document error is classified as a store
// operation failure and surfaces its text to the caller.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// 2. Already classified errors pass through unchanged
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Everything else is a store operation failure
	return apperr.Store(err)
}

// ParseObjectID converts a raw identifier from the URL path or a payload into
// a store ObjectID. Unparseable input yields a MALFORMED_IDENTIFIER error.
func ParseObjectID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.MalformedIdentifier(err)
	}
	return id, nil
}
