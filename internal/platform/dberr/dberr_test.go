// Copyright (c) 2026 Minh Dang. All rights reserved.

package dberr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minhdang/bookcatalog/internal/platform/apperr"
	"github.com/minhdang/bookcatalog/internal/platform/dberr"
)

/*
TestParseObjectID verifies valid hex identifiers round-trip and malformed
ones are classified as MALFORMED_IDENTIFIER.
*/
func TestParseObjectID(t *testing.T) {
	t.Run("valid_hex", func(t *testing.T) {
		id, err := dberr.ParseObjectID("64f1b2c3d4e5f6a7b8c9d0e1")

		require.NoError(t, err)
		assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", id.Hex())
	})

	malformed := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"too_short", "abc123"},
		{"not_hex", "zzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too_long", "64f1b2c3d4e5f6a7b8c9d0e1ff"},
	}

	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dberr.ParseObjectID(tt.raw)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "MALFORMED_IDENTIFIER", ae.Code)
			assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		})
	}
}

/*
TestWrap verifies the store error classification rules.
*/
func TestWrap(t *testing.T) {
	t.Run("nil_passes_through", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "noop"))
	})

	t.Run("no_documents_becomes_not_found", func(t *testing.T) {
		err := dberr.Wrap(mongo.ErrNoDocuments, "get_book")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
	})

	t.Run("app_error_passes_through", func(t *testing.T) {
		original := apperr.NotFound("Book")

		err := dberr.Wrap(original, "get_book")

		assert.Same(t, original, apperr.As(err))
	})

	t.Run("driver_error_becomes_store_error", func(t *testing.T) {
		cause := errors.New("connection reset by peer")

		err := dberr.Wrap(cause, "list_books")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "STORE_ERROR", ae.Code)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		// The underlying failure text is surfaced verbatim.
		assert.Equal(t, "connection reset by peer", ae.Message)
	})
}
