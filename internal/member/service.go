package member

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

func (service *Service) ListMembers(context context.Context, limit, offset int) ([]*Member, int, error) {
	return service.repo.ListMembers(context, limit, offset)
}

func (service *Service) GetMember(context context.Context, id primitive.ObjectID) (*Member, error) {
	return service.repo.GetMember(context, id)
}

// RegisterMember validates and stores a new patron. New members start
// active with the registration timestamp set server-side.
func (service *Service) RegisterMember(context context.Context, member *Member) error {
	validator := &validate.Validator{}

	validator.
		Required(FieldGivenName, member.GivenName).MaxLen(FieldGivenName, member.GivenName, 100).
		Required(FieldFamilyName, member.FamilyName).MaxLen(FieldFamilyName, member.FamilyName, 100).
		Required(FieldEmail, member.Email).Email(FieldEmail, member.Email).
		MaxLen(FieldPhone, member.Phone, 30)

	if err := validator.Err(); err != nil {
		return err
	}

	now := time.Now().UTC()
	member.RegisteredAt = now
	member.CreatedAt = now
	member.Active = true

	if err := service.repo.CreateMember(context, member); err != nil {
		return err
	}

	service.logger.Info("member_registered",
		slog.String("member_id", member.ID.Hex()),
		slog.String("email", member.Email),
	)
	return nil
}

func (service *Service) DeactivateMember(context context.Context, id primitive.ObjectID) error {
	if err := service.repo.SetMemberActive(context, id, false); err != nil {
		return err
	}

	service.logger.Info("member_deactivated", slog.String("member_id", id.Hex()))
	return nil
}

func (service *Service) ReactivateMember(context context.Context, id primitive.ObjectID) error {
	if err := service.repo.SetMemberActive(context, id, true); err != nil {
		return err
	}

	service.logger.Info("member_reactivated", slog.String("member_id", id.Hex()))
	return nil
}
