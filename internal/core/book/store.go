package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	ListBooks(context context.Context, skip, limit int) ([]*Summary, error)
	SearchBooks(context context.Context) ([]*Summary, error)
	GetBook(context context.Context, id primitive.ObjectID) (*Book, error)
	CreateBook(context context.Context, doc bson.M) (primitive.ObjectID, error)
	UpdateBook(context context.Context, id primitive.ObjectID, set bson.M) error
	DeleteBook(context context.Context, id primitive.ObjectID) error
}
