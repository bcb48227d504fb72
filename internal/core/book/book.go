package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/platform/dberr"
)

// Author is an embedded author record inside a book document.
type Author struct {
	FirstName   string     `bson:"first_name" json:"first_name"`
	LastName    string     `bson:"last_name" json:"last_name"`
	BirthDate   *time.Time `bson:"birth_date,omitempty" json:"birth_date,omitempty"`
	Nationality *string    `bson:"nationality,omitempty" json:"nationality,omitempty"`
}

// Book is the full catalog record enriched with the read-time review aggregates.
type Book struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Authors       []Author           `bson:"authors" json:"authors"`
	PublishedDate time.Time          `bson:"published_date" json:"published_date"`
	Language      string             `bson:"language" json:"language"`
	Genres        []string           `bson:"genres" json:"genres"`
	Edition       *int               `bson:"edition,omitempty" json:"edition,omitempty"`
	ISBN          string             `bson:"isbn" json:"isbn"`
	Pages         int                `bson:"pages" json:"pages"`
	CoverImage    *string            `bson:"cover_image,omitempty" json:"cover_image,omitempty"`
	Publisher     string             `bson:"publisher" json:"publisher"`
	Summary       *string            `bson:"summary,omitempty" json:"summary,omitempty"`

	// Derived by the review join on every fetch; never persisted.
	NumberOfReviews int     `bson:"number_of_reviews" json:"number_of_reviews"`
	AverageRating   float64 `bson:"average_rating" json:"average_rating"`
}

// AuthorName is the reduced author projection used in list views.
type AuthorName struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
}

// Summary is the reduced book projection returned by list and search endpoints.
type Summary struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Title         string             `bson:"title" json:"title"`
	Authors       []AuthorName       `bson:"authors" json:"authors"`
	PublishedDate time.Time          `bson:"published_date" json:"published_date"`
	Language      string             `bson:"language" json:"language"`
	Genres        []string           `bson:"genres" json:"genres"`

	NumberOfReviews int     `bson:"number_of_reviews" json:"number_of_reviews"`
	AverageRating   float64 `bson:"average_rating" json:"average_rating"`
}

// Input is a create/update payload. Every field is a pointer (or nilable
// slice) so that an absent JSON field is distinguishable from a zero value:
// nil means "not supplied" and is skipped by partial updates.
type Input struct {
	ID            *string    `json:"_id"`
	Title         *string    `json:"title"`
	Authors       []Author   `json:"authors"`
	PublishedDate *time.Time `json:"published_date"`
	Language      *string    `json:"language"`
	Genres        []string   `json:"genres"`
	Edition       *int       `json:"edition"`
	ISBN          *string    `json:"isbn"`
	Pages         *int       `json:"pages"`
	CoverImage    *string    `json:"cover_image"`
	Publisher     *string    `json:"publisher"`
	Summary       *string    `json:"summary"`
}

// Document converts the input into a store document containing only the
// fields present in the payload.
//
// A client-supplied identifier is kept only if it re-parses as a store
// ObjectID; unparseable identifiers fail with MALFORMED_IDENTIFIER.
func (in *Input) Document() (bson.M, error) {
	doc := bson.M{}

	if in.ID != nil {
		id, err := dberr.ParseObjectID(*in.ID)
		if err != nil {
			return nil, err
		}
		doc[fieldID] = id
	}
	if in.Title != nil {
		doc[FieldTitle] = *in.Title
	}
	if in.Authors != nil {
		doc[FieldAuthors] = in.Authors
	}
	if in.PublishedDate != nil {
		doc[FieldPublishedDate] = *in.PublishedDate
	}
	if in.Language != nil {
		doc[FieldLanguage] = *in.Language
	}
	if in.Genres != nil {
		doc[FieldGenres] = in.Genres
	}
	if in.Edition != nil {
		doc[FieldEdition] = *in.Edition
	}
	if in.ISBN != nil {
		doc[FieldISBN] = *in.ISBN
	}
	if in.Pages != nil {
		doc[FieldPages] = *in.Pages
	}
	if in.CoverImage != nil {
		doc[FieldCoverImage] = *in.CoverImage
	}
	if in.Publisher != nil {
		doc[FieldPublisher] = *in.Publisher
	}
	if in.Summary != nil {
		doc[FieldSummary] = *in.Summary
	}

	return doc, nil
}

// Store document / validation field names.
const (
	fieldID            = "_id"
	FieldTitle         = "title"
	FieldAuthors       = "authors"
	FieldPublishedDate = "published_date"
	FieldLanguage      = "language"
	FieldGenres        = "genres"
	FieldEdition       = "edition"
	FieldISBN          = "isbn"
	FieldPages         = "pages"
	FieldCoverImage    = "cover_image"
	FieldPublisher     = "publisher"
	FieldSummary       = "summary"
)
