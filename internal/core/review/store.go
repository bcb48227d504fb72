package review

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	ListReviews(context context.Context, bookID primitive.ObjectID, skip, limit int) ([]*Review, error)
	GetReview(context context.Context, bookID, reviewID primitive.ObjectID) (*Review, error)
	CreateReview(context context.Context, doc bson.M) (primitive.ObjectID, error)
	UpdateReview(context context.Context, bookID, reviewID primitive.ObjectID, set bson.M) error
	DeleteReview(context context.Context, bookID, reviewID primitive.ObjectID) error
}
