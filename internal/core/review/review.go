package review

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/platform/dberr"
)

// Reviewer is the embedded identity of the person who wrote a review.
type Reviewer struct {
	FirstName string `bson:"first_name" json:"first_name"`
	LastName  string `bson:"last_name" json:"last_name"`
}

// Review is a rating and comment referencing exactly one book. The reference
// is a plain foreign identifier, not an ownership relation.
type Review struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	BookID     primitive.ObjectID `bson:"book_id" json:"book_id"`
	Rating     int                `bson:"rating" json:"rating"`
	Comment    string             `bson:"comment" json:"comment"`
	Reviewer   Reviewer           `bson:"reviewer" json:"reviewer"`
	ReviewDate time.Time          `bson:"review_date" json:"review_date"`
}

// Input is a create/update payload; nil fields were absent from the request.
type Input struct {
	ID         *string    `json:"_id"`
	BookID     *string    `json:"book_id"`
	Rating     *int       `json:"rating"`
	Comment    *string    `json:"comment"`
	Reviewer   *Reviewer  `json:"reviewer"`
	ReviewDate *time.Time `json:"review_date"`
}

// Document converts the input into a store document containing only the
// fields present in the payload. The owning book reference is never taken
// from the payload — callers set it from the URL path.
func (in *Input) Document() (bson.M, error) {
	doc := bson.M{}

	if in.ID != nil {
		id, err := dberr.ParseObjectID(*in.ID)
		if err != nil {
			return nil, err
		}
		doc[fieldID] = id
	}
	if in.Rating != nil {
		doc[FieldRating] = *in.Rating
	}
	if in.Comment != nil {
		doc[FieldComment] = *in.Comment
	}
	if in.Reviewer != nil {
		doc[FieldReviewer] = *in.Reviewer
	}
	if in.ReviewDate != nil {
		doc[FieldReviewDate] = *in.ReviewDate
	}

	return doc, nil
}

// Store document / validation field names.
const (
	fieldID         = "_id"
	FieldBookID     = "book_id"
	FieldRating     = "rating"
	FieldComment    = "comment"
	FieldReviewer   = "reviewer"
	FieldReviewDate = "review_date"
)

// maxCommentLen bounds review comments.
const maxCommentLen = 2000
