package review

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/minhdang/bookcatalog/internal/platform/apperr"
	"github.com/minhdang/bookcatalog/internal/platform/constants"
	"github.com/minhdang/bookcatalog/internal/platform/dberr"
)

type MongoRepository struct {
	reviews *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{reviews: db.Collection(constants.CollectionReviews)}
}

func (repository *MongoRepository) ListReviews(context context.Context, bookID primitive.ObjectID, skip, limit int) ([]*Review, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := repository.reviews.Find(context, bson.M{FieldBookID: bookID}, findOptions)
	if err != nil {
		return nil, dberr.Wrap(err, "list_reviews")
	}

	reviews := []*Review{}
	if err := cursor.All(context, &reviews); err != nil {
		return nil, dberr.Wrap(err, "decode_reviews")
	}

	return reviews, nil
}

func (repository *MongoRepository) GetReview(context context.Context, bookID, reviewID primitive.ObjectID) (*Review, error) {
	filter := bson.M{"_id": reviewID, FieldBookID: bookID}

	r := &Review{}
	err := repository.reviews.FindOne(context, filter).Decode(r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("Review")
		}
		return nil, dberr.Wrap(err, "get_review")
	}

	return r, nil
}

func (repository *MongoRepository) CreateReview(context context.Context, doc bson.M) (primitive.ObjectID, error) {
	result, err := repository.reviews.InsertOne(context, doc)
	if err != nil {
		return primitive.NilObjectID, dberr.Wrap(err, "create_review")
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperr.Store(errors.New("error occurred while creating a review"))
	}

	return id, nil
}

func (repository *MongoRepository) UpdateReview(context context.Context, bookID, reviewID primitive.ObjectID, set bson.M) error {
	filter := bson.M{"_id": reviewID, FieldBookID: bookID}

	result, err := repository.reviews.UpdateOne(context, filter, bson.M{"$set": set})
	if err != nil {
		return dberr.Wrap(err, "update_review")
	}

	// Matched, not modified: a no-op update on an existing review is a success.
	if result.MatchedCount == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}

func (repository *MongoRepository) DeleteReview(context context.Context, bookID, reviewID primitive.ObjectID) error {
	filter := bson.M{"_id": reviewID, FieldBookID: bookID}

	result, err := repository.reviews.DeleteOne(context, filter)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}

	if result.DeletedCount == 0 {
		return apperr.NotFound("Review")
	}
	return nil
}
