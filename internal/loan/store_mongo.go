package loan

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marcodallan/biblio/internal/platform/schema"
	"github.com/marcodallan/biblio/internal/platform/storeerr"
)

type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(schema.RefLoan.Collection)}
}

func (repository *MongoRepository) ListLoans(context context.Context, filter Filter, limit, offset int) ([]*Loan, int, error) {
	query := bson.D{}

	if filter.MemberID != nil {
		query = append(query, bson.E{Key: schema.RefLoan.MemberID, Value: *filter.MemberID})
	}
	if filter.State != "" {
		query = append(query, bson.E{Key: schema.RefLoan.State, Value: filter.State})
	}

	total, err := repository.collection.CountDocuments(context, query)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "count_loans")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: schema.RefLoan.StartedAt, Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(context, query, findOptions)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "list_loans")
	}
	defer cursor.Close(context)

	var loans []*Loan
	if err := cursor.All(context, &loans); err != nil {
		return nil, 0, storeerr.Wrap(err, "decode_loans")
	}

	return loans, int(total), nil
}

func (repository *MongoRepository) GetLoan(context context.Context, id primitive.ObjectID) (*Loan, error) {
	l := &Loan{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefLoan.ID, Value: id}}).Decode(l)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_loan")
	}

	return l, nil
}

func (repository *MongoRepository) CreateLoan(context context.Context, l *Loan) error {
	result, err := repository.collection.InsertOne(context, l)
	if err != nil {
		return storeerr.Wrap(err, "create_loan")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		l.ID = id
	}
	return nil
}

// MarkReturned flips an active loan to returned. The state guard in the
// filter makes a double return a no-op at the store level; the service
// decides what that means for the caller.
func (repository *MongoRepository) MarkReturned(context context.Context, id primitive.ObjectID, returnedAt time.Time) (bool, error) {
	filter := bson.D{
		{Key: schema.RefLoan.ID, Value: id},
		{Key: schema.RefLoan.State, Value: StateActive},
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: schema.RefLoan.State, Value: StateReturned},
		{Key: schema.RefLoan.ReturnedAt, Value: returnedAt},
	}}}

	result, err := repository.collection.UpdateOne(context, filter, update)
	if err != nil {
		return false, storeerr.Wrap(err, "mark_returned")
	}

	return result.MatchedCount == 1, nil
}
