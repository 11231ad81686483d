package category

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups books into a catalog section (e.g. "Fantascienza").
// The name is unique within the catalog.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nome" json:"name"`
	Description string             `bson:"descrizione" json:"description"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Global field names for validation
const (
	FieldName        = "name"
	FieldDescription = "description"
)
