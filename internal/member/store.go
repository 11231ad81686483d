package member

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	ListMembers(context context.Context, limit, offset int) ([]*Member, int, error)
	GetMember(context context.Context, id primitive.ObjectID) (*Member, error)
	CreateMember(context context.Context, m *Member) error
	SetMemberActive(context context.Context, id primitive.ObjectID, active bool) error
}
