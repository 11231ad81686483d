package member

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

// Routes returns the member route group for mounting under the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listMembers)
	router.Get("/{id}", handler.getMember)
	router.Post("/", handler.registerMember)
	router.Post("/{id}/deactivate", handler.deactivateMember)
	router.Post("/{id}/reactivate", handler.reactivateMember)

	return router
}

func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	members, total, err := handler.service.ListMembers(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMember(writer http.ResponseWriter, request *http.Request) {
	memberID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.GetMember(request.Context(), memberID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) registerMember(writer http.ResponseWriter, request *http.Request) {
	var input Member
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RegisterMember(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deactivateMember(writer http.ResponseWriter, request *http.Request) {
	handler.setActive(writer, request, false)
}

func (handler *Handler) reactivateMember(writer http.ResponseWriter, request *http.Request) {
	handler.setActive(writer, request, true)
}

func (handler *Handler) setActive(writer http.ResponseWriter, request *http.Request, active bool) {
	memberID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if active {
		err = handler.service.ReactivateMember(request.Context(), memberID)
	} else {
		err = handler.service.DeactivateMember(request.Context(), memberID)
	}
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
