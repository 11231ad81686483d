package category

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	ListCategories(context context.Context, limit, offset int) ([]*Category, int, error)
	GetCategory(context context.Context, id primitive.ObjectID) (*Category, error)
	GetCategoryByName(context context.Context, name string) (*Category, error)
	CreateCategory(context context.Context, c *Category) error
}
