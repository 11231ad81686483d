package stats

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marcodallan/biblio/internal/loan"
	"github.com/marcodallan/biblio/internal/platform/schema"
	"github.com/marcodallan/biblio/internal/platform/storeerr"
	"github.com/marcodallan/biblio/pkg/pipeline"
	"github.com/marcodallan/biblio/pkg/slice"
)

// MongoRepository reads across the books, members and loans collections.
type MongoRepository struct {
	books   *mongo.Collection
	members *mongo.Collection
	loans   *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		books:   db.Collection(schema.RefBook.Collection),
		members: db.Collection(schema.RefMember.Collection),
		loans:   db.Collection(schema.RefLoan.Collection),
	}
}

func (repository *MongoRepository) CountBooks(context context.Context) (int64, error) {
	total, err := repository.books.CountDocuments(context, bson.D{})
	return total, storeerr.Wrap(err, "count_books")
}

func (repository *MongoRepository) CountAvailableBooks(context context.Context) (int64, error) {
	total, err := repository.books.CountDocuments(context, bson.D{
		{Key: schema.RefBook.Available, Value: true},
	})
	return total, storeerr.Wrap(err, "count_available_books")
}

func (repository *MongoRepository) CountActiveLoans(context context.Context) (int64, error) {
	total, err := repository.loans.CountDocuments(context, bson.D{
		{Key: schema.RefLoan.State, Value: loan.StateActive},
	})
	return total, storeerr.Wrap(err, "count_active_loans")
}

// CountOverdueLoans counts open loans whose due date has passed.
func (repository *MongoRepository) CountOverdueLoans(context context.Context, now time.Time) (int64, error) {
	total, err := repository.loans.CountDocuments(context, bson.D{
		{Key: schema.RefLoan.State, Value: loan.StateActive},
		{Key: schema.RefLoan.DueAt, Value: bson.D{{Key: "$lt", Value: now}}},
	})
	return total, storeerr.Wrap(err, "count_overdue_loans")
}

func (repository *MongoRepository) CountActiveMembers(context context.Context) (int64, error) {
	total, err := repository.members.CountDocuments(context, bson.D{
		{Key: schema.RefMember.Active, Value: true},
	})
	return total, storeerr.Wrap(err, "count_active_members")
}

// topRow is the raw most-borrowed aggregation output.
type topRow struct {
	ID    primitive.ObjectID `bson:"_id"`
	Count int64              `bson:"count"`
	Books []struct {
		Title string `bson:"titolo"`
	} `bson:"libro_info"`
}

// TopBorrowedBooks ranks books by all-time loan count, ties broken by book
// id so the ranking is stable between runs.
func (repository *MongoRepository) TopBorrowedBooks(context context.Context, limit int) ([]TopBook, error) {
	stages := pipeline.New().
		Group(bson.D{
			{Key: schema.RefLoan.ID, Value: "$" + schema.RefLoan.BookID},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}).
		Sort(bson.D{
			{Key: "count", Value: -1},
			{Key: schema.RefLoan.ID, Value: 1},
		}).
		Limit(int64(limit)).
		Lookup(schema.RefBook.Collection, schema.RefLoan.ID, schema.RefBook.ID, "libro_info").
		Build()

	cursor, err := repository.loans.Aggregate(context, stages)
	if err != nil {
		return nil, storeerr.Wrap(err, "top_borrowed_books")
	}
	defer cursor.Close(context)

	var rows []topRow
	if err := cursor.All(context, &rows); err != nil {
		return nil, storeerr.Wrap(err, "decode_top_borrowed")
	}

	ranking := slice.Map(rows, func(row topRow) TopBook {
		entry := TopBook{BookID: row.ID, LoanCount: row.Count}
		// A loan pointing at a deleted book still counts; it just has no title.
		if len(row.Books) > 0 {
			entry.Title = row.Books[0].Title
		}
		return entry
	})

	return ranking, nil
}
