package author

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
	return &MongoRepository{collection: db.Collection(schema.RefAuthor.Collection)}
}

func (repository *MongoRepository) ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	filter := bson.D{}
	if f.Query != "" {
		filter = append(filter, bson.E{Key: schema.RefAuthor.FamilyName, Value: bson.D{
			{Key: "$regex", Value: "^" + f.Query},
			{Key: "$options", Value: "i"},
		}})
	}

	total, err := repository.collection.CountDocuments(context, filter)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "count_authors")
	}

	findOptions := options.Find().
		SetSort(bson.D{
			{Key: schema.RefAuthor.FamilyName, Value: 1},
			{Key: schema.RefAuthor.GivenName, Value: 1},
		}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "list_authors")
	}
	defer cursor.Close(context)

	var authors []*Author
	if err := cursor.All(context, &authors); err != nil {
		return nil, 0, storeerr.Wrap(err, "decode_authors")
	}

	return authors, int(total), nil
}

func (repository *MongoRepository) GetAuthor(context context.Context, id primitive.ObjectID) (*Author, error) {
	a := &Author{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefAuthor.ID, Value: id}}).Decode(a)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_author")
	}

	return a, nil
}

func (repository *MongoRepository) CreateAuthor(context context.Context, a *Author) error {
	result, err := repository.collection.InsertOne(context, a)
	if err != nil {
		return storeerr.Wrap(err, "create_author")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}
