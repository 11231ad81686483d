package category

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
	return &MongoRepository{collection: db.Collection(schema.RefCategory.Collection)}
}

func (repository *MongoRepository) ListCategories(context context.Context, limit, offset int) ([]*Category, int, error) {
	filter := bson.D{}

	total, err := repository.collection.CountDocuments(context, filter)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "count_categories")
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: schema.RefCategory.Name, Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := repository.collection.Find(context, filter, findOptions)
	if err != nil {
		return nil, 0, storeerr.Wrap(err, "list_categories")
	}
	defer cursor.Close(context)

	var categories []*Category
	if err := cursor.All(context, &categories); err != nil {
		return nil, 0, storeerr.Wrap(err, "decode_categories")
	}

	return categories, int(total), nil
}

func (repository *MongoRepository) GetCategory(context context.Context, id primitive.ObjectID) (*Category, error) {
	c := &Category{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefCategory.ID, Value: id}}).Decode(c)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_category")
	}

	return c, nil
}

func (repository *MongoRepository) GetCategoryByName(context context.Context, name string) (*Category, error) {
	c := &Category{}

	err := repository.collection.FindOne(context, bson.D{{Key: schema.RefCategory.Name, Value: name}}).Decode(c)
	if err != nil {
		return nil, storeerr.Wrap(err, "get_category_by_name")
	}

	return c, nil
}

// ResolveCategoryID maps a category name to its document id. It satisfies the
// book search engine's resolver contract.
func (repository *MongoRepository) ResolveCategoryID(context context.Context, name string) (primitive.ObjectID, error) {
	c, err := repository.GetCategoryByName(context, name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return c.ID, nil
}

func (repository *MongoRepository) CreateCategory(context context.Context, c *Category) error {
	result, err := repository.collection.InsertOne(context, c)
	if err != nil {
		return storeerr.Wrap(err, "create_category")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}
