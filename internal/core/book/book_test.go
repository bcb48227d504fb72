package book_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/core/book"
	"github.com/minhdang/bookcatalog/internal/platform/apperr"
	"github.com/minhdang/bookcatalog/pkg/pointer"
)

/*
TestInput_Document_Partial verifies that only supplied fields end up in the
store document, so partial updates leave other fields untouched.
*/
func TestInput_Document_Partial(t *testing.T) {
	input := &book.Input{
		Title: pointer.To("Roadside Picnic"),
		Pages: pointer.To(224),
	}

	doc, err := input.Document()

	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"title": true, "pages": true}, keysOf(doc))
	assert.Equal(t, "Roadside Picnic", doc["title"])
	assert.Equal(t, 224, doc["pages"])
}

/*
TestInput_Document_Full verifies a complete payload maps every field and that
the derived aggregates are never part of a write.
*/
func TestInput_Document_Full(t *testing.T) {
	published := time.Date(1972, 5, 1, 0, 0, 0, 0, time.UTC)

	input := &book.Input{
		Title:         pointer.To("Roadside Picnic"),
		Authors:       []book.Author{{FirstName: "Arkady", LastName: "Strugatsky"}},
		PublishedDate: &published,
		Language:      pointer.To("Russian"),
		Genres:        []string{"Science Fiction"},
		Edition:       pointer.To(2),
		ISBN:          pointer.To("978-0-575-07053-9"),
		Pages:         pointer.To(224),
		CoverImage:    pointer.To("https://covers.example/picnic.jpg"),
		Publisher:     pointer.To("Macmillan"),
		Summary:       pointer.To("A visit zone and its stalkers."),
	}

	doc, err := input.Document()

	require.NoError(t, err)
	assert.Len(t, doc, 11)
	assert.NotContains(t, doc, "number_of_reviews")
	assert.NotContains(t, doc, "average_rating")
	assert.Equal(t, published, doc["published_date"])
}

/*
TestInput_Document_ClientID verifies a client-supplied identifier is kept only
when it re-parses as a store ObjectID.
*/
func TestInput_Document_ClientID(t *testing.T) {
	t.Run("valid_id_is_reparsed", func(t *testing.T) {
		input := &book.Input{
			ID:    pointer.To("64f1b2c3d4e5f6a7b8c9d0e1"),
			Title: pointer.To("Solaris"),
		}

		doc, err := input.Document()

		require.NoError(t, err)
		id, ok := doc["_id"].(primitive.ObjectID)
		require.True(t, ok, "identifier must be stored as an ObjectID, not a string")
		assert.Equal(t, "64f1b2c3d4e5f6a7b8c9d0e1", id.Hex())
	})

	t.Run("malformed_id_fails", func(t *testing.T) {
		input := &book.Input{
			ID:    pointer.To("not-an-object-id"),
			Title: pointer.To("Solaris"),
		}

		_, err := input.Document()

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "MALFORMED_IDENTIFIER", ae.Code)
	})
}

/*
TestInput_Document_Empty verifies an empty payload produces an empty document.
*/
func TestInput_Document_Empty(t *testing.T) {
	doc, err := (&book.Input{}).Document()

	require.NoError(t, err)
	assert.Empty(t, doc)
}

func keysOf(doc map[string]interface{}) map[string]bool {
	keys := make(map[string]bool, len(doc))
	for key := range doc {
		keys[key] = true
	}
	return keys
}
