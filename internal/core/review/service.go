package review

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/minhdang/bookcatalog/internal/platform/dberr"
	"github.com/minhdang/bookcatalog/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListReviews(context context.Context, rawBookID string, skip, limit int) ([]*Review, error) {
	bookID, err := dberr.ParseObjectID(rawBookID)
	if err != nil {
		return nil, err
	}

	return service.repo.ListReviews(context, bookID, skip, limit)
}

func (service *Service) GetReview(context context.Context, rawBookID, rawReviewID string) (*Review, error) {
	bookID, reviewID, err := parseIDs(rawBookID, rawReviewID)
	if err != nil {
		return nil, err
	}

	return service.repo.GetReview(context, bookID, reviewID)
}

func (service *Service) CreateReview(context context.Context, rawBookID string, input *Input) (primitive.ObjectID, error) {
	bookID, err := dberr.ParseObjectID(rawBookID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	if err := validateInput(input, true); err != nil {
		return primitive.NilObjectID, err
	}

	doc, err := input.Document()
	if err != nil {
		return primitive.NilObjectID, err
	}

	// The owning book comes from the URL path; any payload value is ignored.
	doc[FieldBookID] = bookID

	id, err := service.repo.CreateReview(context, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	service.logger.Info("review_created",
		slog.String("review_id", id.Hex()),
		slog.String("book_id", bookID.Hex()),
	)
	return id, nil
}

func (service *Service) UpdateReview(context context.Context, rawBookID, rawReviewID string, input *Input) error {
	bookID, reviewID, err := parseIDs(rawBookID, rawReviewID)
	if err != nil {
		return err
	}

	if err := validateInput(input, false); err != nil {
		return err
	}

	doc, err := input.Document()
	if err != nil {
		return err
	}

	// Identifier and owning book reference are immutable.
	delete(doc, fieldID)
	delete(doc, FieldBookID)

	if err := service.repo.UpdateReview(context, bookID, reviewID, doc); err != nil {
		return err
	}

	service.logger.Info("review_updated",
		slog.String("review_id", reviewID.Hex()),
		slog.String("book_id", bookID.Hex()),
	)
	return nil
}

func (service *Service) DeleteReview(context context.Context, rawBookID, rawReviewID string) error {
	bookID, reviewID, err := parseIDs(rawBookID, rawReviewID)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteReview(context, bookID, reviewID); err != nil {
		return err
	}

	service.logger.Warn("review_deleted",
		slog.String("review_id", reviewID.Hex()),
		slog.String("book_id", bookID.Hex()),
	)
	return nil
}

// parseIDs converts the raw path identifiers of a scoped review operation.
func parseIDs(rawBookID, rawReviewID string) (bookID, reviewID primitive.ObjectID, err error) {
	bookID, err = dberr.ParseObjectID(rawBookID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}

	reviewID, err = dberr.ParseObjectID(rawReviewID)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, err
	}

	return bookID, reviewID, nil
}

// validateInput checks a review payload, collecting every offending field.
// With full set, required fields must be present (create); otherwise only
// the supplied fields are checked (partial update).
func validateInput(input *Input, full bool) error {
	validator := &validate.Validator{}

	if full {
		if input.Rating == nil {
			validator.Custom(FieldRating, true, "This field is required")
		}
		if input.Comment == nil {
			validator.Custom(FieldComment, true, "This field is required")
		}
		if input.Reviewer == nil {
			validator.Custom(FieldReviewer, true, "This field is required")
		}
		if input.ReviewDate == nil {
			validator.Custom(FieldReviewDate, true, "This field is required")
		}
	}

	if input.Rating != nil {
		validator.Range(FieldRating, *input.Rating, 1, 10)
	}
	if input.Comment != nil {
		validator.Required(FieldComment, *input.Comment)
		validator.MaxLen(FieldComment, *input.Comment, maxCommentLen)
	}
	if input.Reviewer != nil {
		validator.Required("reviewer.first_name", input.Reviewer.FirstName)
		validator.Required("reviewer.last_name", input.Reviewer.LastName)
	}
	if input.ReviewDate != nil {
		validator.PastDate(FieldReviewDate, *input.ReviewDate)
	}

	return validator.Err()
}
