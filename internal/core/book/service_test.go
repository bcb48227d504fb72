package book_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/core/book"
	"github.com/minhdang/bookcatalog/internal/platform/apperr"
	"github.com/minhdang/bookcatalog/pkg/pointer"
)

// fakeRepository is an in-memory Repository capturing the documents the
// service hands to the store.
type fakeRepository struct {
	summaries []*book.Summary
	book      *book.Book

	createdDoc bson.M
	createdID  primitive.ObjectID

	updatedID  primitive.ObjectID
	updatedSet bson.M

	deletedID primitive.ObjectID

	err error
}

func (f *fakeRepository) ListBooks(_ context.Context, skip, limit int) ([]*book.Summary, error) {
	return f.summaries, f.err
}

func (f *fakeRepository) SearchBooks(_ context.Context) ([]*book.Summary, error) {
	return f.summaries, f.err
}

func (f *fakeRepository) GetBook(_ context.Context, id primitive.ObjectID) (*book.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.book, nil
}

func (f *fakeRepository) CreateBook(_ context.Context, doc bson.M) (primitive.ObjectID, error) {
	if f.err != nil {
		return primitive.NilObjectID, f.err
	}
	f.createdDoc = doc
	return f.createdID, nil
}

func (f *fakeRepository) UpdateBook(_ context.Context, id primitive.ObjectID, set bson.M) error {
	f.updatedID = id
	f.updatedSet = set
	return f.err
}

func (f *fakeRepository) DeleteBook(_ context.Context, id primitive.ObjectID) error {
	f.deletedID = id
	return f.err
}

func newTestService(repo book.Repository) *book.Service {
	return book.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// validInput returns a complete create payload.
func validInput() *book.Input {
	published := time.Date(1961, 6, 1, 0, 0, 0, 0, time.UTC)
	return &book.Input{
		Title:         pointer.To("Solaris"),
		Authors:       []book.Author{{FirstName: "Stanislaw", LastName: "Lem"}},
		PublishedDate: &published,
		Language:      pointer.To("Polish"),
		Genres:        []string{"Science Fiction"},
		ISBN:          pointer.To("978-0-15-683750-2"),
		Pages:         pointer.To(204),
		Publisher:     pointer.To("Walker"),
	}
}

/*
TestService_CreateBook_Valid verifies a full payload is inserted and the
store-assigned identifier is returned.
*/
func TestService_CreateBook_Valid(t *testing.T) {
	repo := &fakeRepository{createdID: primitive.NewObjectID()}
	service := newTestService(repo)

	id, err := service.CreateBook(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, repo.createdID, id)
	assert.Equal(t, "Solaris", repo.createdDoc["title"])
	assert.NotContains(t, repo.createdDoc, "number_of_reviews")
	assert.NotContains(t, repo.createdDoc, "average_rating")
}

/*
TestService_CreateBook_MissingFields verifies every absent required field is
reported in one validation error.
*/
func TestService_CreateBook_MissingFields(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	_, err := service.CreateBook(context.Background(), &book.Input{})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	fields := make(map[string]bool)
	for _, detail := range ae.Details {
		fields[detail.Field] = true
	}
	for _, field := range []string{"title", "authors", "published_date", "language", "genres", "isbn", "pages", "publisher"} {
		assert.True(t, fields[field], "missing error for field %q", field)
	}

	// Nothing reached the store.
	assert.Nil(t, repo.createdDoc)
}

/*
TestService_CreateBook_Invalid covers the per-field rules on a full payload.
*/
func TestService_CreateBook_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*book.Input)
		field  string
	}{
		{"future_published_date", func(in *book.Input) {
			future := time.Now().AddDate(1, 0, 0)
			in.PublishedDate = &future
		}, "published_date"},
		{"zero_pages", func(in *book.Input) { in.Pages = pointer.To(0) }, "pages"},
		{"negative_edition", func(in *book.Input) { in.Edition = pointer.To(-1) }, "edition"},
		{"empty_title", func(in *book.Input) { in.Title = pointer.To("  ") }, "title"},
		{"no_authors", func(in *book.Input) { in.Authors = []book.Author{} }, "authors"},
		{"author_without_last_name", func(in *book.Input) {
			in.Authors = []book.Author{{FirstName: "Stanislaw"}}
		}, "authors.last_name"},
		{"future_author_birth_date", func(in *book.Input) {
			future := time.Now().AddDate(2, 0, 0)
			in.Authors = []book.Author{{FirstName: "S", LastName: "Lem", BirthDate: &future}}
		}, "authors.birth_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{}
			service := newTestService(repo)

			input := validInput()
			tt.mutate(input)

			_, err := service.CreateBook(context.Background(), input)

			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			found := false
			for _, detail := range ae.Details {
				if detail.Field == tt.field {
					found = true
				}
			}
			assert.True(t, found, "expected error on field %q, got %+v", tt.field, ae.Details)
		})
	}
}

/*
TestService_UpdateBook_Partial verifies only supplied fields are written and
the identifier can never change through the payload.
*/
func TestService_UpdateBook_Partial(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)
	targetID := primitive.NewObjectID()

	input := &book.Input{
		ID:    pointer.To(primitive.NewObjectID().Hex()),
		Title: pointer.To("Solaris (2nd ed.)"),
	}

	err := service.UpdateBook(context.Background(), targetID.Hex(), input)

	require.NoError(t, err)
	assert.Equal(t, targetID, repo.updatedID)
	assert.Equal(t, bson.M{"title": "Solaris (2nd ed.)"}, repo.updatedSet)
}

/*
TestService_UpdateBook_SkipsAbsentRequiredFields verifies partial payloads do
not trip the create-time presence checks.
*/
func TestService_UpdateBook_SkipsAbsentRequiredFields(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)

	err := service.UpdateBook(context.Background(), primitive.NewObjectID().Hex(), &book.Input{
		Pages: pointer.To(256),
	})

	require.NoError(t, err)
	assert.Equal(t, bson.M{"pages": 256}, repo.updatedSet)
}

/*
TestService_MalformedIdentifiers verifies every id-based operation rejects a
bad identifier before touching the store.
*/
func TestService_MalformedIdentifiers(t *testing.T) {
	repo := &fakeRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	_, getErr := service.GetBook(ctx, "nope")
	updateErr := service.UpdateBook(ctx, "nope", &book.Input{Title: pointer.To("x")})
	deleteErr := service.DeleteBook(ctx, "nope")

	for _, err := range []error{getErr, updateErr, deleteErr} {
		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "MALFORMED_IDENTIFIER", ae.Code)
	}

	assert.Equal(t, primitive.NilObjectID, repo.updatedID)
	assert.Equal(t, primitive.NilObjectID, repo.deletedID)
}

/*
TestService_DeleteBook verifies delete delegates to the store and surfaces
its NotFound on a second delete.
*/
func TestService_DeleteBook(t *testing.T) {
	id := primitive.NewObjectID()

	repo := &fakeRepository{}
	service := newTestService(repo)

	require.NoError(t, service.DeleteBook(context.Background(), id.Hex()))
	assert.Equal(t, id, repo.deletedID)

	repo.err = apperr.NotFound("Book")
	err := service.DeleteBook(context.Background(), id.Hex())

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_SearchBooks verifies the title term is required but, for now,
not matched against: the stub returns the unfiltered projection.
*/
func TestService_SearchBooks(t *testing.T) {
	summaries := []*book.Summary{
		{ID: primitive.NewObjectID(), Title: "Solaris"},
		{ID: primitive.NewObjectID(), Title: "Roadside Picnic"},
	}
	repo := &fakeRepository{summaries: summaries}
	service := newTestService(repo)

	t.Run("missing_title_rejected", func(t *testing.T) {
		_, err := service.SearchBooks(context.Background(), "   ")

		require.Error(t, err)
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	})

	t.Run("term_not_applied", func(t *testing.T) {
		result, err := service.SearchBooks(context.Background(), "Solaris")

		require.NoError(t, err)
		assert.Equal(t, summaries, result)
	})
}
