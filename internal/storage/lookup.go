package storage

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Relation describes one $lookup join. The key it is stored under in a
// RelationMap becomes the stage's "as" field.
type Relation struct {
	From         string      `json:"from" validate:"required"`
	LocalField   string      `json:"localField" validate:"required"`
	ForeignField string      `json:"foreignField" validate:"required"`
	Nested       RelationMap `json:"nested,omitempty"`
}

// RelationMap maps output field names to relations.
type RelationMap map[string]Relation

// BuildLookupPipeline converts a relation map into $lookup stages. Nested
// relations become the stage's sub-pipeline. Stages are ordered by their
// "as" key so the output is deterministic.
func BuildLookupPipeline(relations RelationMap) (mongo.Pipeline, error) {
	keys := make([]string, 0, len(relations))
	for k := range relations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pipeline := make(mongo.Pipeline, 0, len(keys))
	for _, as := range keys {
		rel := relations[as]
		if as == "" {
			return nil, fmt.Errorf("lookup relation has an empty name")
		}
		if rel.From == "" || rel.LocalField == "" || rel.ForeignField == "" {
			return nil, fmt.Errorf("lookup relation %q needs from, localField and foreignField", as)
		}

		lookup := bson.D{
			{Key: "from", Value: rel.From},
			{Key: "localField", Value: rel.LocalField},
			{Key: "foreignField", Value: rel.ForeignField},
			{Key: "as", Value: as},
		}
		if len(rel.Nested) > 0 {
			nested, err := BuildLookupPipeline(rel.Nested)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", as, err)
			}
			lookup = append(lookup, bson.E{Key: "pipeline", Value: nested})
		}
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: lookup}})
	}
	return pipeline, nil
}

// GroupTreeRelations joins groups to their users and each user to their addresses.
var GroupTreeRelations = RelationMap{
	"users": {
		From:         GroupUsersColl,
		LocalField:   "_id",
		ForeignField: "group",
		Nested: RelationMap{
			"address": {
				From:         AddressesCollection,
				LocalField:   "_id",
				ForeignField: "user",
			},
		},
	},
}

// GroupTree aggregates every group with its users and their addresses.
func (s *Storage) GroupTree(ctx context.Context) ([]bson.M, error) {
	pipeline, err := BuildLookupPipeline(GroupTreeRelations)
	if err != nil {
		return nil, err
	}

	cur, err := s.collection(GroupsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate groups: %w", err)
	}

	groups := make([]bson.M, 0)
	if err := cur.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}
	return groups, nil
}

// MarshalPipeline renders a pipeline as relaxed extended JSON of the form
// {"pipeline": [...]} with stage keys kept in order.
func MarshalPipeline(pipeline mongo.Pipeline) ([]byte, error) {
	return bson.MarshalExtJSON(bson.D{{Key: "pipeline", Value: pipeline}}, false, false)
}
