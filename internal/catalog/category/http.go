package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/marcodallan/biblio/internal/platform/request"
	"github.com/marcodallan/biblio/internal/platform/respond"
	"github.com/marcodallan/biblio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the category route group for mounting under the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Get("/{id}", handler.getCategory)
	router.Post("/", handler.createCategory)

	return router
}

func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	categories, total, err := handler.service.ListCategories(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, categories, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	categoryID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category, err := handler.service.GetCategory(request.Context(), categoryID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, category)
}

func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input Category
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCategory(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}
