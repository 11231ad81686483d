package author

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

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id primitive.ObjectID) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

func (service *Service) CreateAuthor(context context.Context, author *Author) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldGivenName, author.GivenName).MaxLen(FieldGivenName, author.GivenName, 100).
		Required(FieldFamilyName, author.FamilyName).MaxLen(FieldFamilyName, author.FamilyName, 100).
		MaxLen(FieldNationality, author.Nationality, 100)

	if err := validator.Err(); err != nil {
		return err
	}

	author.CreatedAt = time.Now().UTC()

	if err := service.repo.CreateAuthor(context, author); err != nil {
		return err
	}

	service.logger.Info("author_created",
		slog.String("family_name", author.FamilyName),
		slog.String("author_id", author.ID.Hex()),
	)
	return nil
}
