package book

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/minhdang/bookcatalog/internal/platform/apperr"
	"github.com/minhdang/bookcatalog/internal/platform/constants"
	"github.com/minhdang/bookcatalog/internal/platform/dberr"
)

type MongoRepository struct {
	books *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{books: db.Collection(constants.CollectionBooks)}
}

// reviewJoinStages are the pipeline stages deriving the review aggregates.
//
// The join pulls every review referencing the book, then number_of_reviews is
// the size of the joined array and average_rating the mean rating rounded to
// 2 decimal places. A book with zero reviews yields numeric 0, not null.
// The joined array itself is discarded before projection.
func reviewJoinStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: constants.CollectionReviews},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "book_id"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "number_of_reviews", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
			{Key: "average_rating", Value: bson.D{{Key: "$round", Value: bson.A{
				bson.D{{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$avg", Value: "$reviews.rating"}},
					0,
				}}},
				2,
			}}}},
		}}},
		{{Key: "$unset", Value: "reviews"}},
	}
}

// summaryProjection reduces a book document to the list view fields.
func summaryProjection() bson.D {
	return bson.D{{Key: "$project", Value: bson.D{
		{Key: "title", Value: 1},
		{Key: "authors.first_name", Value: 1},
		{Key: "authors.last_name", Value: 1},
		{Key: "published_date", Value: 1},
		{Key: "language", Value: 1},
		{Key: "genres", Value: 1},
		{Key: "number_of_reviews", Value: 1},
		{Key: "average_rating", Value: 1},
	}}}
}

// listPipeline pages through books in ascending identifier order, then joins
// and projects each page. Sorting by _id keeps pagination deterministic even
// for records created at the same instant.
func listPipeline(skip, limit int) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: skip}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, reviewJoinStages()...)
	return append(pipeline, summaryProjection())
}

// getPipeline selects a single book by identifier and applies the same
// join/derive stages as the list view, keeping the full document.
func getPipeline(id primitive.ObjectID) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}
	return append(pipeline, reviewJoinStages()...)
}

// searchPipeline backs the declared-but-stubbed title search. It reuses the
// summary projection without matching on a title term.
//
// TODO: add a $match on title once the text index is provisioned.
func searchPipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	pipeline = append(pipeline, reviewJoinStages()...)
	return append(pipeline, summaryProjection())
}

func (repository *MongoRepository) ListBooks(context context.Context, skip, limit int) ([]*Summary, error) {
	cursor, err := repository.books.Aggregate(context, listPipeline(skip, limit))
	if err != nil {
		return nil, dberr.Wrap(err, "list_books")
	}

	summaries := []*Summary{}
	if err := cursor.All(context, &summaries); err != nil {
		return nil, dberr.Wrap(err, "decode_books")
	}

	return summaries, nil
}

func (repository *MongoRepository) SearchBooks(context context.Context) ([]*Summary, error) {
	cursor, err := repository.books.Aggregate(context, searchPipeline())
	if err != nil {
		return nil, dberr.Wrap(err, "search_books")
	}

	summaries := []*Summary{}
	if err := cursor.All(context, &summaries); err != nil {
		return nil, dberr.Wrap(err, "decode_books")
	}

	return summaries, nil
}

func (repository *MongoRepository) GetBook(context context.Context, id primitive.ObjectID) (*Book, error) {
	cursor, err := repository.books.Aggregate(context, getPipeline(id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_book")
	}
	defer cursor.Close(context)

	if !cursor.Next(context) {
		if err := cursor.Err(); err != nil {
			return nil, dberr.Wrap(err, "get_book")
		}
		return nil, apperr.NotFound("Book")
	}

	b := &Book{}
	if err := cursor.Decode(b); err != nil {
		return nil, dberr.Wrap(err, "decode_book")
	}

	return b, nil
}

func (repository *MongoRepository) CreateBook(context context.Context, doc bson.M) (primitive.ObjectID, error) {
	result, err := repository.books.InsertOne(context, doc)
	if err != nil {
		return primitive.NilObjectID, dberr.Wrap(err, "create_book")
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, apperr.Store(errors.New("error occurred while creating a book"))
	}

	return id, nil
}

func (repository *MongoRepository) UpdateBook(context context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := repository.books.UpdateByID(context, id, bson.M{"$set": set})
	if err != nil {
		return dberr.Wrap(err, "update_book")
	}

	// Matched, not modified: a no-op update on an existing book is a success.
	if result.MatchedCount == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}

func (repository *MongoRepository) DeleteBook(context context.Context, id primitive.ObjectID) error {
	result, err := repository.books.DeleteOne(context, bson.M{"_id": id})
	if err != nil {
		return dberr.Wrap(err, "delete_book")
	}

	// Reviews referencing the book are left in place: every mutation touches
	// exactly one document in one collection.
	if result.DeletedCount == 0 {
		return apperr.NotFound("Book")
	}
	return nil
}
