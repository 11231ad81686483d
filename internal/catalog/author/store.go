package author

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error)
	GetAuthor(context context.Context, id primitive.ObjectID) (*Author, error)
	CreateAuthor(context context.Context, a *Author) error
}
