package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/minhdang/bookcatalog/internal/platform/request"
	"github.com/minhdang/bookcatalog/internal/platform/respond"
	"github.com/minhdang/bookcatalog/pkg/pagination"
)

type Handler struct {
	service      *Service
	defaultLimit int
}

func NewHandler(service *Service, defaultLimit int) *Handler {
	return &Handler{service: service, defaultLimit: defaultLimit}
}

// RegisterRoutes mounts the review endpoints. The routes are registered
// under /books/{book_id}/reviews, so every operation is scoped to the
// owning book identifier.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listReviews)
	router.Post("/", handler.createReview)

	router.Get("/{review_id}", handler.getReview)
	router.Put("/{review_id}", handler.updateReview)
	router.Delete("/{review_id}", handler.deleteReview)
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	rawBookID := requestutil.ID(request, "book_id")

	params, err := pagination.FromRequest(request, handler.defaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ListReviews(request.Context(), rawBookID, params.Skip(), params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, reviews)
}

func (handler *Handler) getReview(writer http.ResponseWriter, request *http.Request) {
	rawBookID := requestutil.ID(request, "book_id")
	rawReviewID := requestutil.ID(request, "review_id")

	r, err := handler.service.GetReview(request.Context(), rawBookID, rawReviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, r)
}

func (handler *Handler) createReview(writer http.ResponseWriter, request *http.Request) {
	rawBookID := requestutil.ID(request, "book_id")

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.CreateReview(request.Context(), rawBookID, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"review_id": id.Hex()})
}

func (handler *Handler) updateReview(writer http.ResponseWriter, request *http.Request) {
	rawBookID := requestutil.ID(request, "book_id")
	rawReviewID := requestutil.ID(request, "review_id")

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateReview(request.Context(), rawBookID, rawReviewID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	rawBookID := requestutil.ID(request, "book_id")
	rawReviewID := requestutil.ID(request, "review_id")

	if err := handler.service.DeleteReview(request.Context(), rawBookID, rawReviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
