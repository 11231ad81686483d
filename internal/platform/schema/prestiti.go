package schema

// RefLoanCollection represents the 'prestiti' collection
type RefLoanCollection struct {
	Collection string
	ID         string
	MemberID   string
	BookID     string
	StartedAt  string
	DueAt      string
	State      string
	ReturnedAt string
	CreatedAt  string
}

// RefLoan is the schema definition for prestiti
var RefLoan = RefLoanCollection{
	Collection: "prestiti",
	ID:         "_id",
	MemberID:   "utente_id",
	BookID:     "libro_id",
	StartedAt:  "data_prestito",
	DueAt:      "data_scadenza",
	State:      "stato",
	ReturnedAt: "data_restituzione",
	CreatedAt:  "created_at",
}
