package schema

// RefCategoryCollection represents the 'categorie' collection
type RefCategoryCollection struct {
	Collection  string
	ID          string
	Name        string
	Description string
	CreatedAt   string
}

// RefCategory is the schema definition for categorie
var RefCategory = RefCategoryCollection{
	Collection:  "categorie",
	ID:          "_id",
	Name:        "nome",
	Description: "descrizione",
	CreatedAt:   "created_at",
}
