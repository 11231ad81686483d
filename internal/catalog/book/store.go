package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository interface {
	SearchBooks(context context.Context, spec SearchSpec) ([]*Summary, error)
	ListBooks(context context.Context, limit, offset int) ([]*Book, int, error)
	GetBook(context context.Context, id primitive.ObjectID) (*Book, error)
	CreateBook(context context.Context, b *Book) error
}

// CategoryResolver maps a category name to its document id. The concrete
// implementation lives in the category package; a fake suffices in tests.
type CategoryResolver interface {
	ResolveCategoryID(context context.Context, name string) (primitive.ObjectID, error)
}
