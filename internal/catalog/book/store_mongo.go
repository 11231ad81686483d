package book

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcodallan/biblio/internal/platform/schema"
	"github.com/marcodallan/biblio/internal/platform/storeerr"
	"github.com/marcodallan/biblio/pkg/pipeline"
	"github.com/marcodallan/biblio/pkg/slice"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(schema.RefBook.Collection)}
}

// # Search

// summaryRow is the raw aggregation output before author ordering is applied.
type summaryRow struct {
	ID              primitive.ObjectID   `bson:"_id"`
	Title           string               `bson:"titolo"`
	ISBN            string               `bson:"isbn,omitempty"`
	PublicationYear int                  `bson:"anno_pubblicazione"`
	Available       bool                 `bson:"disponibile"`
	CopyCount       int                  `bson:"numero_copie"`
	AuthorIDs       []primitive.ObjectID `bson:"autore_ids"`
	AuthorInfo      []authorRef          `bson:"autori_info"`
	Category        *string              `bson:"categoria"`
}

type authorRef struct {
	ID         primitive.ObjectID `bson:"_id"`
	FamilyName string             `bson:"cognome"`
}

func (repository *MongoRepository) SearchBooks(context context.Context, spec SearchSpec) ([]*Summary, error) {
	cursor, err := repository.collection.Aggregate(context, buildSearchPipeline(spec))
	if err != nil {
		return nil, storeerr.Wrap(err, "search_books")
	}
	defer cursor.Close(context)

	var rows []summaryRow
	if err := cursor.All(context, &rows); err != nil {
		return nil, storeerr.Wrap(err, "decode_book_summaries")
	}

	return slice.Map(rows, toSummary), nil
}

// buildSearchPipeline composes the aggregation joining books to their authors
// and category. Results are sorted by title, then id, so a fixed store state
// always yields the same sequence.
func buildSearchPipeline(spec SearchSpec) []bson.D {
	match := bson.D{}

	if spec.Text != "" {
		match = append(match, bson.E{Key: "$text", Value: bson.D{{Key: "$search", Value: spec.Text}}})
	}

	if spec.CategoryID != nil {
		match = append(match, bson.E{Key: schema.RefBook.CategoryID, Value: *spec.CategoryID})
	}

	if spec.AvailableOnly != nil {
		match = append(match, bson.E{Key: schema.RefBook.Available, Value: *spec.AvailableOnly})
	}

	return pipeline.New().
		Match(match).
		Lookup(schema.RefAuthor.Collection, schema.RefBook.AuthorIDs, schema.RefAuthor.ID, "autori_info").
		Lookup(schema.RefCategory.Collection, schema.RefBook.CategoryID, schema.RefCategory.ID, "categoria_info").
		Project(bson.D{
			{Key: schema.RefBook.Title, Value: 1},
			{Key: schema.RefBook.ISBN, Value: 1},
			{Key: schema.RefBook.PublicationYear, Value: 1},
			{Key: schema.RefBook.Available, Value: 1},
			{Key: schema.RefBook.CopyCount, Value: 1},
			{Key: schema.RefBook.AuthorIDs, Value: 1},
			{Key: "autori_info." + schema.RefAuthor.ID, Value: 1},
			{Key: "autori_info." + schema.RefAuthor.FamilyName, Value: 1},
			{Key: "categoria", Value: bson.D{{Key: "$arrayElemAt", Value: bson.A{
				"$categoria_info." + schema.RefCategory.Name, 0,
			}}}},
		}).
		Sort(bson.D{
			{Key: schema.RefBook.Title, Value: 1},
			{Key: schema.RefBook.ID, Value: 1},
		}).
		Build()
}

// toSummary reorders the joined author names back into the book's
// author-reference order; $lookup does not guarantee it.
func toSummary(row summaryRow) *Summary {
	byID := make(map[primitive.ObjectID]string, len(row.AuthorInfo))
	for _, ref := range row.AuthorInfo {
		byID[ref.ID] = ref.FamilyName
	}

	authors := make([]string, 0, len(row.AuthorIDs))
	for _, id := range row.AuthorIDs {
		if name, ok := byID[id]; ok {
			authors = append(authors, name)
		}
	}

	return &Summary{
		ID:              row.ID,
		Title:           row.Title,
		ISBN:            row.ISBN,
		PublicationYear: row.PublicationYear,
		Available:       row.Available,
		CopyCount:       row.CopyCount,
		Authors:         authors,
		Category:        row.Category,
	}
}

// # CRUD

func (repository *MongoRepository) ListBooks(context context.Context, limit, offset int) ([]*Book, int, error) {
	filter := bson.D{}

	total, err := repository.collection.CountDocuments(context, filter)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "count_books")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: schema.RefBook.Title, Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "list_books")
	}
	defer cursor.Close(context)

	var books []*Book
	if err := cursor.All(context, &books); err != nil {
		return nil, 0, storeerr.Wrap(err, "decode_books")
	}

	return books, int(total), nil
}

func (repository *MongoRepository) GetBook(context context.Context, id primitive.ObjectID) (*Book, error) {
	b := &Book{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefBook.ID, Value: id}}).Decode(b)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_book")
	}

	return b, nil
}

func (repository *MongoRepository) CreateBook(context context.Context, b *Book) error {
	result, err := repository.collection.InsertOne(context, b)
	if err != nil {
		return storeerr.Wrap(err, "create_book")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		b.ID = id
	}
	return nil
}

// # Copy Inventory

// DecrementCopies atomically takes one copy of the book, but only while at
// least one copy remains. The availability flag is recomputed from the
// decremented count in the same store operation, so no interleaved reader can
// observe the two fields out of sync.
//
// Returns false when the guard failed: the book was already at zero copies
// (or absent) by the time the update executed.
func (repository *MongoRepository) DecrementCopies(context context.Context, id primitive.ObjectID) (bool, error) {
	filter := bson.D{
		{Key: schema.RefBook.ID, Value: id},
		{Key: schema.RefBook.CopyCount, Value: bson.D{{Key: "$gt", Value: 0}}},
	}

	decremented := bson.D{{Key: "$add", Value: bson.A{"$" + schema.RefBook.CopyCount, -1}}}

	// Pipeline-style update: both fields change in one atomic document write.
	update := bson.A{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: schema.RefBook.CopyCount, Value: decremented},
			{Key: schema.RefBook.Available, Value: bson.D{{Key: "$gt", Value: bson.A{decremented, 0}}}},
		}}},
	}

	result, err := repository.collection.UpdateOne(context, filter, update)
	if err != nil {
		return false, storeerr.Wrap(err, "decrement_copies")
	}

	return result.MatchedCount == 1, nil
}

// IncrementCopies returns one copy of the book to the shelf. A book with at
// least one copy is always available, so the flag is simply set true.
func (repository *MongoRepository) IncrementCopies(context context.Context, id primitive.ObjectID) error {
	filter := bson.D{{Key: schema.RefBook.ID, Value: id}}

	update := bson.A{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: schema.RefBook.CopyCount, Value: bson.D{{Key: "$add", Value: bson.A{"$" + schema.RefBook.CopyCount, 1}}}},
			{Key: schema.RefBook.Available, Value: true},
		}}},
	}

	result, err := repository.collection.UpdateOne(context, filter, update)
	if err != nil {
		return storeerr.Wrap(err, "increment_copies")
	}

	if result.MatchedCount == 0 {
		return storeerr.ErrNotFound
	}
	return nil
}
