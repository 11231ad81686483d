package book

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/platform/validate"
	"github.com/marcodallan/biblio/pkg/textnorm"
)

// Service implements the catalog query engine and book management use cases.
type Service struct {
	repo       Repository
	categories CategoryResolver
	logger     *slog.Logger
}

func NewService(repo Repository, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		categories: categories,
		logger:     logger,
	}
}

// Search executes a multi-criteria book search. All criteria are conjunctive.
//
// # Degradation
//
// A store failure is not fatal to the caller: Search returns an empty
// sequence together with the error, and logs the degradation. An unknown
// category name is not an error at all — it simply matches nothing.
func (service *Service) Search(context context.Context, filter SearchFilter) ([]*Summary, error) {
	spec := SearchSpec{
		Text:          textnorm.Clean(filter.Text),
		AvailableOnly: filter.AvailableOnly,
	}

	if filter.CategoryName != "" {
		categoryID, err := service.categories.ResolveCategoryID(context, filter.CategoryName)
		if err != nil {
			if apperr.IsCode(err, "NOT_FOUND") {
				return []*Summary{}, nil
			}
			service.logger.Warn("search_degraded",
				slog.String("stage", "resolve_category"),
				slog.Any("error", err),
			)
			return []*Summary{}, err
		}
		spec.CategoryID = &categoryID
	}

	summaries, err := service.repo.SearchBooks(context, spec)
	if err != nil {
		service.logger.Warn("search_degraded",
			slog.String("stage", "aggregate"),
			slog.Any("error", err),
		)
		return []*Summary{}, err
	}

	return summaries, nil
}

func (service *Service) ListBooks(context context.Context, limit, offset int) ([]*Book, int, error) {
	return service.repo.ListBooks(context, limit, offset)
}

func (service *Service) GetBook(context context.Context, id primitive.ObjectID) (*Book, error) {
	return service.repo.GetBook(context, id)
}

func (service *Service) CreateBook(context context.Context, book *Book) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 300).
		Min(FieldCopyCount, book.CopyCount, 0).
		Custom(FieldAuthorIDs, len(book.AuthorIDs) == 0, "At least one author is required").
		Custom(FieldCategoryID, book.CategoryID.IsZero(), "A category is required")

	if book.ISBN != "" {
		validator.MinLen(FieldISBN, book.ISBN, 10).MaxLen(FieldISBN, book.ISBN, 13)
	}

	if err := validator.Err(); err != nil {
		return err
	}

	// Derived flag: available exactly when copies remain.
	book.Available = book.CopyCount > 0
	book.CreatedAt = time.Now().UTC()

	if err := service.repo.CreateBook(context, book); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("title", book.Title),
		slog.String("book_id", book.ID.Hex()),
		slog.Int("copy_count", book.CopyCount),
	)
	return nil
}
