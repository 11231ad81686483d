package loan

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Loan states. A loan is either open or closed; there is no intermediate
// state.
const (
	StateActive   = "attivo"
	StateReturned = "restituito"
)

// Loan records that a member holds one copy of a book. A returned loan
// keeps its record for lending-history statistics.
type Loan struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   primitive.ObjectID `bson:"utente_id" json:"member_id"`
	BookID     primitive.ObjectID `bson:"libro_id" json:"book_id"`
	StartedAt  time.Time          `bson:"data_prestito" json:"started_at"`
	DueAt      time.Time          `bson:"data_scadenza" json:"due_at"`
	State      string             `bson:"stato" json:"state"`
	ReturnedAt *time.Time         `bson:"data_restituzione,omitempty" json:"returned_at,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Result reports the outcome of a successful checkout.
type Result struct {
	LoanID primitive.ObjectID `json:"loan_id"`
	DueAt  time.Time          `json:"due_at"`
}

// Filter narrows loan listings.
type Filter struct {
	MemberID *primitive.ObjectID
	State    string
}

// Global field names for validation
const (
	FieldMemberID   = "member_id"
	FieldBookID     = "book_id"
	FieldPeriodDays = "period_days"
)
