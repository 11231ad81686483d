package loan

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	requestutil "github.com/marcodallan/biblio/internal/platform/request"
	"github.com/marcodallan/biblio/internal/platform/respond"
	"github.com/marcodallan/biblio/internal/platform/validate"
	"github.com/marcodallan/biblio/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the loan route group for mounting under the API root.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listLoans)
	router.Get("/{id}", handler.getLoan)
	router.Post("/", handler.createLoan)
	router.Post("/{id}/return", handler.returnLoan)

	return router
}

type createLoanInput struct {
	MemberID   primitive.ObjectID `json:"member_id"`
	BookID     primitive.ObjectID `json:"book_id"`
	PeriodDays int                `json:"period_days"`
}

func (handler *Handler) listLoans(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{State: request.URL.Query().Get("state")}
	if raw := request.URL.Query().Get("member"); raw != "" {
		memberID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError("member", "Must be a valid document id"))
			return
		}
		filter.MemberID = &memberID
	}

	loans, total, err := handler.service.ListLoans(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, loans, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getLoan(writer http.ResponseWriter, request *http.Request) {
	loanID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	l, err := handler.service.GetLoan(request.Context(), loanID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, l)
}

func (handler *Handler) createLoan(writer http.ResponseWriter, request *http.Request) {
	var input createLoanInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.CreateLoan(request.Context(), input.MemberID, input.BookID, input.PeriodDays)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, result)
}

func (handler *Handler) returnLoan(writer http.ResponseWriter, request *http.Request) {
	loanID, err := requestutil.ObjectID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReturnLoan(request.Context(), loanID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
