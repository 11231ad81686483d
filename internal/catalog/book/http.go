package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/marcodallan/biblio/internal/platform/request"
	"github.com/marcodallan/biblio/internal/platform/respond"
	"github.com/marcodallan/biblio/pkg/pagination"
	"github.com/marcodallan/biblio/pkg/pointer"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the book route group for mounting under the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listBooks)
	router.Get("/search", handler.searchBooks)
	router.Get("/{id}", handler.getBook)
	router.Post("/", handler.createBook)

	return router
}

// searchBooks handles GET /books/search?q=&category=&available=.
func (handler *Handler) searchBooks(writer http.ResponseWriter, request *http.Request) {
	query := request.URL.Query()

	filter := SearchFilter{
		Text:         query.Get("q"),
		CategoryName: query.Get("category"),
	}

	switch query.Get("available") {
	case "true":
		filter.AvailableOnly = pointer.To(true)
	case "false":
		filter.AvailableOnly = pointer.To(false)
	}

	summaries, err := handler.service.Search(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summaries)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	books, total, err := handler.service.ListBooks(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	bookID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.GetBook(request.Context(), bookID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, book)
}

func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	var input Book
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateBook(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}
