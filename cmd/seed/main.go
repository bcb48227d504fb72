// Copyright (c) 2026 Minh Dang. All rights reserved.

// Command seed fills the document store with generated catalog data.
//
// It is a non-serving, offline utility: it connects with the same
// configuration as the API server, generates fake books with a random
// number of reviews each, and batch-inserts them. Individual batch
// failures are logged and skipped so a partial load still succeeds.
package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/core/book"
	"github.com/minhdang/bookcatalog/internal/core/review"
	"github.com/minhdang/bookcatalog/internal/platform/config"
	"github.com/minhdang/bookcatalog/internal/platform/constants"
	"github.com/minhdang/bookcatalog/internal/platform/mongodb"
)

const batchSize = 50

var (
	nationalities = []string{
		"American", "British", "French", "German", "Spanish",
		"Chinese", "Japanese", "Ukrainian", "Italian", "Portuguese",
	}
	languages = []string{
		"English", "Spanish", "French", "German", "Chinese",
		"Japanese", "Ukrainian", "Italian", "Portuguese",
	}
	genres = []string{
		"Fiction", "Non-Fiction", "Mystery", "Science Fiction", "Fantasy",
		"Romance", "Thriller", "Horror", "Biography", "History",
	}
)

func main() {
	bookCount := flag.Int("books", 100, "number of books to generate")
	maxReviews := flag.Int("max-reviews", 5, "maximum reviews per book")
	flag.Parse()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String("app", constants.AppName+"-seed"))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load configuration failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := mongodb.NewClient(ctx, cfg.MongoDBURL, log)
	if err != nil {
		log.Error("connect to mongodb failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer mongodb.Disconnect(context.Background(), client, log)

	db := client.Database(cfg.DatabaseName)
	books := db.Collection(constants.CollectionBooks)
	reviews := db.Collection(constants.CollectionReviews)

	insertedBooks := 0
	insertedReviews := 0
	pendingBooks := make([]any, 0, batchSize)
	pendingReviews := make([]any, 0, batchSize)

	flushBooks := func() {
		if len(pendingBooks) == 0 {
			return
		}
		result, err := books.InsertMany(ctx, pendingBooks)
		if err != nil {
			// Keep going: a failed batch should not abort the whole load.
			log.Error("book batch insert failed", slog.Any("error", err))
		} else {
			insertedBooks += len(result.InsertedIDs)
		}
		pendingBooks = pendingBooks[:0]
	}
	flushReviews := func() {
		if len(pendingReviews) == 0 {
			return
		}
		result, err := reviews.InsertMany(ctx, pendingReviews)
		if err != nil {
			log.Error("review batch insert failed", slog.Any("error", err))
		} else {
			insertedReviews += len(result.InsertedIDs)
		}
		pendingReviews = pendingReviews[:0]
	}

	for i := 0; i < *bookCount; i++ {
		bookID := primitive.NewObjectID()
		pendingBooks = append(pendingBooks, generateBook(bookID))

		for j := 0; j < rand.IntN(*maxReviews+1); j++ {
			pendingReviews = append(pendingReviews, generateReview(bookID))
			if len(pendingReviews) == batchSize {
				flushReviews()
			}
		}

		if len(pendingBooks) == batchSize {
			flushBooks()
		}
	}
	flushBooks()
	flushReviews()

	log.Info("seeding finished",
		slog.Int("books_inserted", insertedBooks),
		slog.Int("reviews_inserted", insertedReviews),
	)
}

// generateBook builds a raw book document. Raw bson is used instead of the
// domain struct so the read-time derived fields are never written.
func generateBook(id primitive.ObjectID) bson.M {
	authors := make([]bson.M, 0, 3)
	for i := 0; i < 1+rand.IntN(3); i++ {
		authors = append(authors, bson.M{
			"first_name":  gofakeit.FirstName(),
			"last_name":   gofakeit.LastName(),
			"birth_date":  pastDate(100 * 365 * 24 * time.Hour),
			"nationality": pick(nationalities),
		})
	}

	return bson.M{
		"_id":                   id,
		book.FieldTitle:         gofakeit.BookTitle(),
		book.FieldAuthors:       authors,
		book.FieldPublishedDate: pastDate(80 * 365 * 24 * time.Hour),
		book.FieldLanguage:      pick(languages),
		book.FieldGenres:        pickN(genres, 1+rand.IntN(3)),
		book.FieldEdition:       1 + rand.IntN(10),
		book.FieldISBN:          gofakeit.Numerify("978-#-###-#####-#"),
		book.FieldPages:         100 + rand.IntN(700),
		book.FieldCoverImage:    gofakeit.ImageURL(200, 300),
		book.FieldPublisher:     gofakeit.Company(),
		book.FieldSummary:       gofakeit.Sentence(12),
	}
}

func generateReview(bookID primitive.ObjectID) bson.M {
	return bson.M{
		review.FieldBookID:  bookID,
		review.FieldRating:  1 + rand.IntN(10),
		review.FieldComment: gofakeit.Sentence(10),
		review.FieldReviewer: bson.M{
			"first_name": gofakeit.FirstName(),
			"last_name":  gofakeit.LastName(),
		},
		review.FieldReviewDate: pastDate(2 * 365 * 24 * time.Hour),
	}
}

// pastDate returns a random instant within the given span before now.
func pastDate(span time.Duration) time.Time {
	return time.Now().Add(-time.Duration(rand.Int64N(int64(span)))).Truncate(time.Second)
}

func pick(values []string) string {
	return values[rand.IntN(len(values))]
}

func pickN(values []string, n int) []string {
	shuffled := make([]string, len(values))
	copy(shuffled, values)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
