package mongo

import (
	"regexp"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuildFilter translates a store query into a find filter.
func BuildFilter(q store.Query) bson.M {
	var conds bson.A
	if len(q.Kind) > 0 {
		conds = append(conds, bson.M{store.FieldType: q.Kind})
	}
	if len(q.IDs) > 0 {
		conds = append(conds, bson.M{store.FieldID: bson.M{"$in": q.IDs}})
	}
	for _, filter := range q.Filters {
		conds = append(conds, buildCondition(filter))
	}
	if len(q.Any) > 0 {
		group := make(bson.A, 0, len(q.Any))
		for _, filter := range q.Any {
			group = append(group, buildCondition(filter))
		}
		conds = append(conds, bson.M{"$or": group})
	}

	if len(conds) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": conds}
}

func buildCondition(f store.Filter) bson.M {
	switch f.Op {
	case store.OpEq:
		return bson.M{f.Field: f.Value}
	case store.OpRefEq:
		return bson.M{f.Field + "." + store.FieldRef: f.Value}
	case store.OpUndefined:
		// Matches both missing and null, like defined().
		return bson.M{f.Field: nil}
	case store.OpNonEmpty:
		return bson.M{f.Field + ".0": bson.M{"$exists": true}}
	case store.OpMatch:
		return bson.M{f.Field: bson.M{"$regex": regexp.QuoteMeta(f.Value), "$options": "i"}}
	}
	return bson.M{"_never": bson.M{"$exists": true, "$eq": "_never"}}
}

// BuildPipeline renders a patch as an update pipeline. Each operation group
// is its own stage so later groups observe the earlier ones, which keeps the
// Set, SetIfMissing, Unset, Inc, Append order within one atomic update.
func BuildPipeline(p *store.Patch, rev, updatedAt string) (mongo.Pipeline, error) {
	var pipeline mongo.Pipeline

	if len(p.Set) > 0 {
		stage := bson.D{}
		for _, field := range store.SortedKeys(p.Set) {
			val, err := store.NormalizeValue(p.Set[field])
			if err != nil {
				return nil, err
			}
			stage = append(stage, bson.E{Key: field, Value: bson.M{"$literal": val}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: stage}})
	}

	if len(p.SetIfMissing) > 0 {
		stage := bson.D{}
		for _, field := range store.SortedKeys(p.SetIfMissing) {
			val, err := store.NormalizeValue(p.SetIfMissing[field])
			if err != nil {
				return nil, err
			}
			stage = append(stage, bson.E{Key: field, Value: bson.M{
				"$ifNull": bson.A{"$" + field, bson.M{"$literal": val}},
			}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: stage}})
	}

	var fields []string
	for _, item := range p.Unset {
		if len(item.Ref) == 0 {
			fields = append(fields, item.Field)
			continue
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: bson.D{{
			Key: item.Field,
			Value: bson.M{"$cond": bson.A{
				bson.M{"$isArray": "$" + item.Field},
				bson.M{"$filter": bson.M{
					"input": "$" + item.Field,
					"as":    "item",
					"cond":  bson.M{"$ne": bson.A{"$$item." + store.FieldRef, bson.M{"$literal": item.Ref}}},
				}},
				"$" + item.Field,
			}},
		}}}})
	}
	if len(fields) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: fields}})
	}

	if len(p.Inc) > 0 {
		stage := bson.D{}
		for _, field := range store.SortedKeys(p.Inc) {
			stage = append(stage, bson.E{Key: field, Value: bson.M{
				"$add": bson.A{"$" + field, p.Inc[field]},
			}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: stage}})
	}

	for _, item := range p.Append {
		items := make(bson.A, 0, len(item.Items))
		for _, entry := range item.Items {
			val, err := store.NormalizeValue(entry)
			if err != nil {
				return nil, err
			}
			items = append(items, val)
		}
		pipeline = append(pipeline, bson.D{{Key: "$set", Value: bson.D{{
			Key:   item.Field,
			Value: bson.M{"$concatArrays": bson.A{"$" + item.Field, bson.M{"$literal": items}}},
		}}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$set", Value: bson.D{
		{Key: store.FieldRev, Value: rev},
		{Key: store.FieldUpdatedAt, Value: updatedAt},
	}}})
	return pipeline, nil
}
