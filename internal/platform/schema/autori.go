package schema

// RefAuthorCollection represents the 'autori' collection
type RefAuthorCollection struct {
	Collection  string
	ID          string
	GivenName   string
	FamilyName  string
	BirthDate   string
	Nationality string
	CreatedAt   string
}

// RefAuthor is the schema definition for autori
var RefAuthor = RefAuthorCollection{
	Collection:  "autori",
	ID:          "_id",
	GivenName:   "nome",
	FamilyName:  "cognome",
	BirthDate:   "data_nascita",
	Nationality: "nazionalita",
	CreatedAt:   "created_at",
}
