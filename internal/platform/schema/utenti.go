package schema

// RefMemberCollection represents the 'utenti' collection
type RefMemberCollection struct {
	Collection   string
	ID           string
	GivenName    string
	FamilyName   string
	Email        string
	Phone        string
	Address      string
	RegisteredAt string
	Active       string
	CreatedAt    string
}

// RefMember is the schema definition for utenti
var RefMember = RefMemberCollection{
	Collection:   "utenti",
	ID:           "_id",
	GivenName:    "nome",
	FamilyName:   "cognome",
	Email:        "email",
	Phone:        "telefono",
	Address:      "indirizzo",
	RegisteredAt: "data_registrazione",
	Active:       "attivo",
	CreatedAt:    "created_at",
}
