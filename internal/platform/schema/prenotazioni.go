package schema

// RefReservationCollection represents the 'prenotazioni' collection.
// Reservations are provisioned in the schema but carry no operations yet.
type RefReservationCollection struct {
	Collection string
	ID         string
	MemberID   string
	BookID     string
	State      string
	CreatedAt  string
}

// RefReservation is the schema definition for prenotazioni
var RefReservation = RefReservationCollection{
	Collection: "prenotazioni",
	ID:         "_id",
	MemberID:   "utente_id",
	BookID:     "libro_id",
	State:      "stato",
	CreatedAt:  "created_at",
}
