package member

import (
	"context"

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
	return &MongoRepository{collection: db.Collection(schema.RefMember.Collection)}
}

func (repository *MongoRepository) ListMembers(context context.Context, limit, offset int) ([]*Member, int, error) {
	filter := bson.D{}

	total, err := repository.collection.CountDocuments(context, filter)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "count_members")
	}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: schema.RefMember.FamilyName, Value: 1},
			{Key: schema.RefMember.GivenName, Value: 1},
		}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "list_members")
	}
	defer cursor.Close(context)

	var members []*Member
	if err := cursor.All(context, &members); err != nil {
		return nil, 0, storeerr.Wrap(err, "decode_members")
	}

	return members, int(total), nil
}

func (repository *MongoRepository) GetMember(context context.Context, id primitive.ObjectID) (*Member, error) {
	m := &Member{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefMember.ID, Value: id}}).Decode(m)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_member")
	}

	return m, nil
}

// CreateMember inserts the member. The unique index on email turns a
// duplicate registration into a conflict.
func (repository *MongoRepository) CreateMember(context context.Context, m *Member) error {
	result, err := repository.collection.InsertOne(context, m)
	if err != nil {
		return storeerr.Wrap(err, "create_member")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return nil
}

func (repository *MongoRepository) SetMemberActive(context context.Context, id primitive.ObjectID, active bool) error {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: schema.RefMember.Active, Value: active}}}}

	result, err := repository.collection.UpdateOne(context, bson.D{{Key: schema.RefMember.ID, Value: id}}, update)
	if err != nil {
		return storeerr.Wrap(err, "set_member_active")
	}

	if result.MatchedCount == 0 {
		return storeerr.ErrNotFound
	}
	return nil
}
