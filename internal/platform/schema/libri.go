package schema

// RefBookCollection represents the 'libri' collection
type RefBookCollection struct {
	Collection      string
	ID              string
	Title           string
	ISBN            string
	PublicationYear string
	PageCount       string
	Language        string
	Publisher       string
	CategoryID      string
	AuthorIDs       string
	CopyCount       string
	Available       string
	CreatedAt       string
}

// RefBook is the schema definition for libri
var RefBook = RefBookCollection{
	Collection:      "libri",
	ID:              "_id",
	Title:           "titolo",
	ISBN:            "isbn",
	PublicationYear: "anno_pubblicazione",
	PageCount:       "numero_pagine",
	Language:        "lingua",
	Publisher:       "editore",
	CategoryID:      "categoria_id",
	AuthorIDs:       "autore_ids",
	CopyCount:       "numero_copie",
	Available:       "disponibile",
	CreatedAt:       "created_at",
}
