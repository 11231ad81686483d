// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/marcodallan/biblio/pkg/pipeline"
)

/*
TestBuilder_StageOrder verifies that stages appear in the order they were added.
*/
func TestBuilder_StageOrder(t *testing.T) {
	stages := pipeline.New().
		Match(bson.D{{Key: "disponibile", Value: true}}).
		Lookup("autori", "autore_ids", "_id", "autori_info").
		Sort(bson.D{{Key: "titolo", Value: 1}}).
		Limit(5).
		Build()

	require.Len(t, stages, 4)
	assert.Equal(t, "$match", stages[0][0].Key)
	assert.Equal(t, "$lookup", stages[1][0].Key)
	assert.Equal(t, "$sort", stages[2][0].Key)
	assert.Equal(t, "$limit", stages[3][0].Key)
}

/*
TestBuilder_Lookup checks the shape of the generated $lookup stage.
*/
func TestBuilder_Lookup(t *testing.T) {
	stages := pipeline.New().
		Lookup("categorie", "categoria_id", "_id", "categoria_info").
		Build()

	require.Len(t, stages, 1)
	lookup, ok := stages[0][0].Value.(bson.D)
	require.True(t, ok)

	assert.Equal(t, bson.D{
		{Key: "from", Value: "categorie"},
		{Key: "localField", Value: "categoria_id"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "categoria_info"},
	}, lookup)
}

/*
TestBuilder_MatchNilFilter ensures a nil filter still yields a $match stage,
keeping stage positions deterministic.
*/
func TestBuilder_MatchNilFilter(t *testing.T) {
	stages := pipeline.New().Match(nil).Build()

	require.Len(t, stages, 1)
	assert.Equal(t, "$match", stages[0][0].Key)
	assert.Equal(t, bson.D{}, stages[0][0].Value)
}

/*
TestBuilder_GroupAndLimit builds the most-borrowed ranking shape and checks it.
*/
func TestBuilder_GroupAndLimit(t *testing.T) {
	builder := pipeline.New().
		Group(bson.D{
			{Key: "_id", Value: "$libro_id"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}).
		Sort(bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}).
		Limit(5)

	assert.Equal(t, 3, builder.Len())

	stages := builder.Build()
	assert.Equal(t, int64(5), stages[2][0].Value)
}
