package book

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

// RegisterRoutes mounts the book endpoints. The identifier parameter is named
// book_id so the nested review routes can share the same URL segment.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Post("/", handler.createBook)
	router.Get("/search", handler.searchBooks)

	router.Get("/{book_id}", handler.getBook)
	router.Put("/{book_id}", handler.updateBook)
	router.Delete("/{book_id}", handler.deleteBook)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request, handler.defaultLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, err := handler.service.ListBooks(request.Context(), params.Skip(), params.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	title := requestutil.Query(request, "title")

	books, err := handler.service.SearchBooks(request.Context(), title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	rawID := requestutil.ID(request, "book_id")

	b, err := handler.service.GetBook(request.Context(), rawID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, b)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.service.CreateBook(request.Context(), &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{"book_id": id.Hex()})
}

func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	rawID := requestutil.ID(request, "book_id")

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateBook(request.Context(), rawID, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	rawID := requestutil.ID(request, "book_id")

	if err := handler.service.DeleteBook(request.Context(), rawID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
