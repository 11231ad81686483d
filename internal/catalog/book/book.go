package book

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Book is a catalogued title, holding the copy inventory for lending.
//
// # Invariant
//
// Available mirrors CopyCount: it is true exactly when CopyCount > 0. Every
// write path that touches CopyCount recomputes Available in the same store
// operation.
type Book struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title           string               `bson:"titolo" json:"title"`
	ISBN            string               `bson:"isbn,omitempty" json:"isbn,omitempty"`
	PublicationYear int                  `bson:"anno_pubblicazione" json:"publication_year"`
	PageCount       int                  `bson:"numero_pagine" json:"page_count"`
	Language        string               `bson:"lingua" json:"language"`
	Publisher       string               `bson:"editore" json:"publisher"`
	CategoryID      primitive.ObjectID   `bson:"categoria_id" json:"category_id"`
	AuthorIDs       []primitive.ObjectID `bson:"autore_ids" json:"author_ids"`
	CopyCount       int                  `bson:"numero_copie" json:"copy_count"`
	Available       bool                 `bson:"disponibile" json:"available"`
	CreatedAt       time.Time            `bson:"created_at" json:"created_at"`
}

// Summary is the search result projection: the book joined with its author
// family names (in the book's author-reference order) and category name.
type Summary struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	ISBN            string             `json:"isbn,omitempty"`
	PublicationYear int                `json:"publication_year"`
	Available       bool               `json:"available"`
	CopyCount       int                `json:"copy_count"`
	Authors         []string           `json:"authors"`
	Category        *string            `json:"category"`
}

// SearchFilter holds the caller-facing search criteria. All filters are
// conjunctive; zero values mean "no constraint".
type SearchFilter struct {
	// Text is matched against book titles via the catalog text index.
	Text string
	// CategoryName is resolved to a category id before querying. An unknown
	// name matches nothing.
	CategoryName string
	// AvailableOnly, when set, constrains the derived availability flag.
	AvailableOnly *bool
}

// SearchSpec is the resolved, store-facing form of a [SearchFilter].
type SearchSpec struct {
	Text          string
	CategoryID    *primitive.ObjectID
	AvailableOnly *bool
}

// Global field names for validation
const (
	FieldTitle           = "title"
	FieldISBN            = "isbn"
	FieldPublicationYear = "publication_year"
	FieldPageCount       = "page_count"
	FieldCategoryID      = "category_id"
	FieldAuthorIDs       = "author_ids"
	FieldCopyCount       = "copy_count"
)
