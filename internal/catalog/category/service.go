package category

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/internal/platform/validate"
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

func (service *Service) ListCategories(context context.Context, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, limit, offset)
}

func (service *Service) GetCategory(context context.Context, id primitive.ObjectID) (*Category, error) {
	return service.repo.GetCategory(context, id)
}

func (service *Service) CreateCategory(context context.Context, category *Category) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldName, category.Name).MaxLen(FieldName, category.Name, 100).
		MaxLen(FieldDescription, category.Description, 500)

	if err := validator.Err(); err != nil {
		return err
	}

	category.CreatedAt = time.Now().UTC()

	if err := service.repo.CreateCategory(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("name", category.Name))
	return nil
}
