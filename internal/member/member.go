package member

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member is a registered library patron. Only active members may take
// out loans; deactivating a member blocks new loans without touching
// the ones already open.
type Member struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GivenName    string             `bson:"nome" json:"given_name"`
	FamilyName   string             `bson:"cognome" json:"family_name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"telefono,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"indirizzo,omitempty" json:"address,omitempty"`
	RegisteredAt time.Time          `bson:"data_registrazione" json:"registered_at"`
	Active       bool               `bson:"attivo" json:"active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// Global field names for validation
const (
	FieldGivenName  = "given_name"
	FieldFamilyName = "family_name"
	FieldEmail      = "email"
	FieldPhone      = "phone"
)
