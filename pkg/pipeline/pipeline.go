// Copyright (c) 2026 Biblio. All rights reserved.
// Author: dev.marcodallan@gmail.com

/*
Package pipeline provides a small builder for MongoDB aggregation pipelines.

It replaces deeply nested bson literals with a fluent, stage-per-call API so
that query composition reads top-to-bottom and the resulting pipeline can be
asserted in tests without a live aggregation engine.

Usage:

	stages := pipeline.New().
	    Match(bson.D{{Key: "disponibile", Value: true}}).
	    Lookup("autori", "autore_ids", "_id", "autori_info").
	    Sort(bson.D{{Key: "titolo", Value: 1}}).
	    Build()
*/
package pipeline

import "go.mongodb.org/mongo-driver/bson"

// Builder accumulates aggregation stages in the order they are added.
//
// # Concurrency
//
// Builder is not safe for concurrent use. Build a new one per query.
type Builder struct {
	stages []bson.D
}

// New returns an empty pipeline builder.
func New() *Builder {
	return &Builder{}
}

// Match appends a $match stage with the given filter.
//
// An empty filter is still appended: matching everything explicitly keeps the
// stage order stable for tests and query plans.
func (b *Builder) Match(filter bson.D) *Builder {
	if filter == nil {
		filter = bson.D{}
	}
	return b.append("$match", filter)
}

// Lookup appends a $lookup stage joining documents from another collection.
func (b *Builder) Lookup(from, localField, foreignField, as string) *Builder {
	return b.append("$lookup", bson.D{
		{Key: "from", Value: from},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: foreignField},
		{Key: "as", Value: as},
	})
}

// Project appends a $project stage with the given field specification.
func (b *Builder) Project(spec bson.D) *Builder {
	return b.append("$project", spec)
}

// Group appends a $group stage with the given grouping specification.
func (b *Builder) Group(spec bson.D) *Builder {
	return b.append("$group", spec)
}

// Sort appends a $sort stage. Key order in spec is significant.
func (b *Builder) Sort(spec bson.D) *Builder {
	return b.append("$sort", spec)
}

// Limit appends a $limit stage.
func (b *Builder) Limit(n int64) *Builder {
	return b.append("$limit", n)
}

// Skip appends a $skip stage.
func (b *Builder) Skip(n int64) *Builder {
	return b.append("$skip", n)
}

// Unwind appends a $unwind stage for the given field path (e.g. "$autori_info").
func (b *Builder) Unwind(path string) *Builder {
	return b.append("$unwind", path)
}

// Build returns the accumulated stages, ready to pass to Collection.Aggregate.
func (b *Builder) Build() []bson.D {
	return b.stages
}

// Len reports the number of stages added so far.
func (b *Builder) Len() int {
	return len(b.stages)
}

// append adds a single-operator stage to the pipeline.
func (b *Builder) append(operator string, value any) *Builder {
	b.stages = append(b.stages, bson.D{{Key: operator, Value: value}})
	return b
}
