package author

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Author represents the writer of one or more catalogued books.
type Author struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GivenName   string             `bson:"nome" json:"given_name"`
	FamilyName  string             `bson:"cognome" json:"family_name"`
	BirthDate   *time.Time         `bson:"data_nascita,omitempty" json:"birth_date,omitempty"`
	Nationality string             `bson:"nazionalita" json:"nationality"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// Filter holds the parameters for a paginated author listing.
type Filter struct {
	Query string // Prefix match against family name
}

// Global field names for validation
const (
	FieldGivenName   = "given_name"
	FieldFamilyName  = "family_name"
	FieldNationality = "nationality"
)
