package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/marcodallan/biblio/pkg/pointer"
)

func TestBuildSearchPipeline_StageOrder(t *testing.T) {
	categoryID := primitive.NewObjectID()

	stages := buildSearchPipeline(SearchSpec{
		Text:          "1984",
		CategoryID:    &categoryID,
		AvailableOnly: pointer.To(true),
	})

	require.Len(t, stages, 5)
	assert.Equal(t, "$match", stages[0][0].Key)
	assert.Equal(t, "$lookup", stages[1][0].Key)
	assert.Equal(t, "$lookup", stages[2][0].Key)
	assert.Equal(t, "$project", stages[3][0].Key)
	assert.Equal(t, "$sort", stages[4][0].Key)
}

func TestBuildSearchPipeline_MatchIsConjunctive(t *testing.T) {
	categoryID := primitive.NewObjectID()

	stages := buildSearchPipeline(SearchSpec{
		Text:          "rosa",
		CategoryID:    &categoryID,
		AvailableOnly: pointer.To(true),
	})

	match, ok := stages[0][0].Value.(bson.D)
	require.True(t, ok)
	require.Len(t, match, 3)

	assert.Equal(t, "$text", match[0].Key)
	assert.Equal(t, bson.D{{Key: "$search", Value: "rosa"}}, match[0].Value)
	assert.Equal(t, bson.E{Key: "categoria_id", Value: categoryID}, match[1])
	assert.Equal(t, bson.E{Key: "disponibile", Value: true}, match[2])
}

func TestBuildSearchPipeline_EmptySpecMatchesEverything(t *testing.T) {
	stages := buildSearchPipeline(SearchSpec{})

	match, ok := stages[0][0].Value.(bson.D)
	require.True(t, ok)
	assert.Empty(t, match)
}

func TestBuildSearchPipeline_JoinsAuthorsAndCategory(t *testing.T) {
	stages := buildSearchPipeline(SearchSpec{})

	authors, ok := stages[1][0].Value.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "from", Value: "autori"},
		{Key: "localField", Value: "autore_ids"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "autori_info"},
	}, authors)

	categories, ok := stages[2][0].Value.(bson.D)
	require.True(t, ok)
	assert.Equal(t, "categorie", categories[0].Value)
	assert.Equal(t, "categoria_id", categories[1].Value)
}

func TestBuildSearchPipeline_DeterministicSort(t *testing.T) {
	stages := buildSearchPipeline(SearchSpec{})

	sort, ok := stages[4][0].Value.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.D{
		{Key: "titolo", Value: 1},
		{Key: "_id", Value: 1},
	}, sort)
}

func TestToSummary_PreservesAuthorOrder(t *testing.T) {
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	summary := toSummary(summaryRow{
		Title:     "Il Nome della Rosa",
		AuthorIDs: []primitive.ObjectID{second, first},
		AuthorInfo: []authorRef{
			{ID: first, FamilyName: "Alpha"},
			{ID: second, FamilyName: "Beta"},
		},
	})

	// The reference order on the book wins over the join order.
	assert.Equal(t, []string{"Beta", "Alpha"}, summary.Authors)
}

func TestToSummary_SkipsDanglingAuthorRefs(t *testing.T) {
	known := primitive.NewObjectID()

	summary := toSummary(summaryRow{
		AuthorIDs:  []primitive.ObjectID{primitive.NewObjectID(), known},
		AuthorInfo: []authorRef{{ID: known, FamilyName: "Eco"}},
	})

	assert.Equal(t, []string{"Eco"}, summary.Authors)
}
