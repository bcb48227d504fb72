package book

import (
	"context"
	"log/slog"
	"strings"

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

func (service *Service) ListBooks(context context.Context, skip, limit int) ([]*Summary, error) {
	return service.repo.ListBooks(context, skip, limit)
}

// SearchBooks is the declared title-search operation. The title term is
// required but not yet matched against — the query returns the summary
// projection unfiltered, preserving the endpoint shape until search lands.
func (service *Service) SearchBooks(context context.Context, title string) ([]*Summary, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validate.RequiredError(FieldTitle, "This field is required")
	}

	return service.repo.SearchBooks(context)
}

func (service *Service) GetBook(context context.Context, rawID string) (*Book, error) {
	id, err := dberr.ParseObjectID(rawID)
	if err != nil {
		return nil, err
	}

	return service.repo.GetBook(context, id)
}

func (service *Service) CreateBook(context context.Context, input *Input) (primitive.ObjectID, error) {
	if err := validateInput(input, true); err != nil {
		return primitive.NilObjectID, err
	}

	doc, err := input.Document()
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, err := service.repo.CreateBook(context, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", id.Hex()),
		slog.String("title", *input.Title),
	)
	return id, nil
}

func (service *Service) UpdateBook(context context.Context, rawID string, input *Input) error {
	id, err := dberr.ParseObjectID(rawID)
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

	// The identifier is immutable; the target comes from the URL path only.
	delete(doc, fieldID)

	if err := service.repo.UpdateBook(context, id, doc); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", id.Hex()))
	return nil
}

func (service *Service) DeleteBook(context context.Context, rawID string) error {
	id, err := dberr.ParseObjectID(rawID)
	if err != nil {
		return err
	}

	if err := service.repo.DeleteBook(context, id); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", id.Hex()))
	return nil
}

// validateInput checks a book payload, collecting every offending field.
//
// With full set, every required field must be present (create). Without it,
// absent fields are skipped and only the supplied ones are checked (partial
// update).
func validateInput(input *Input, full bool) error {
	validator := &validate.Validator{}

	if full {
		if input.Title == nil {
			validator.Custom(FieldTitle, true, "This field is required")
		}
		if input.Authors == nil {
			validator.Custom(FieldAuthors, true, "This field is required")
		}
		if input.PublishedDate == nil {
			validator.Custom(FieldPublishedDate, true, "This field is required")
		}
		if input.Language == nil {
			validator.Custom(FieldLanguage, true, "This field is required")
		}
		if input.Genres == nil {
			validator.Custom(FieldGenres, true, "This field is required")
		}
		if input.ISBN == nil {
			validator.Custom(FieldISBN, true, "This field is required")
		}
		if input.Pages == nil {
			validator.Custom(FieldPages, true, "This field is required")
		}
		if input.Publisher == nil {
			validator.Custom(FieldPublisher, true, "This field is required")
		}
	}

	if input.Title != nil {
		validator.Required(FieldTitle, *input.Title)
	}
	if input.Authors != nil {
		validator.Custom(FieldAuthors, len(input.Authors) == 0, "At least one author is required")
		for _, author := range input.Authors {
			validator.Required("authors.first_name", author.FirstName)
			validator.Required("authors.last_name", author.LastName)
			if author.BirthDate != nil {
				validator.PastDate("authors.birth_date", *author.BirthDate)
			}
		}
	}
	if input.PublishedDate != nil {
		validator.PastDate(FieldPublishedDate, *input.PublishedDate)
	}
	if input.Language != nil {
		validator.Required(FieldLanguage, *input.Language)
	}
	if input.Edition != nil {
		validator.Positive(FieldEdition, *input.Edition)
	}
	if input.ISBN != nil {
		validator.Required(FieldISBN, *input.ISBN)
	}
	if input.Pages != nil {
		validator.Positive(FieldPages, *input.Pages)
	}
	if input.Publisher != nil {
		validator.Required(FieldPublisher, *input.Publisher)
	}

	return validator.Err()
}
