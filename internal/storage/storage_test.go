package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestParseObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := ParseObjectID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	for _, bad := range []string{"", "123", "zzzzzzzzzzzzzzzzzzzzzzzz", oid.Hex() + "00"} {
		_, err := ParseObjectID(bad)
		assert.ErrorIs(t, err, ErrInvalidID, "input %q", bad)
	}
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil))
	assert.ErrorIs(t, mapError(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, mapError(fmt.Errorf("wrapped: %w", mongo.ErrNoDocuments)), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapError(dup), ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, mapError(other))
}

func TestObjectIDOf(t *testing.T) {
	oid := primitive.NewObjectID()
	assert.Equal(t, oid, objectIDOf(oid))
	assert.Equal(t, primitive.NilObjectID, objectIDOf("not-an-id"))
}

func TestBuildTaskFilter(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    bson.M
		wantErr string
	}{
		{
			name:   "empty",
			params: map[string]string{},
			want:   bson.M{},
		},
		{
			name:   "whitelisted fields",
			params: map[string]string{"title": "milk", "created_by": "alice"},
			want: bson.M{
				"title":      bson.M{"$eq": "milk"},
				"created_by": bson.M{"$eq": "alice"},
			},
		},
		{
			name:   "operator-looking value stays a string",
			params: map[string]string{"description": `{"$ne": null}`},
			want:   bson.M{"description": bson.M{"$eq": `{"$ne": null}`}},
		},
		{
			name:    "unknown field",
			params:  map[string]string{"$where": "1"},
			wantErr: "unsupported filter field: $where",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildTaskFilter(tt.params)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.EqualError(t, err, tt.wantErr)
				var ufe *UnknownFilterError
				assert.True(t, errors.As(err, &ufe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildLookupPipeline(t *testing.T) {
	relations := RelationMap{
		"user": {
			From:         "user",
			LocalField:   "_id",
			ForeignField: "group",
			Nested: RelationMap{
				"addresses": {From: "address", LocalField: "_id", ForeignField: "user"},
			},
		},
		"test": {From: "user", LocalField: "test", ForeignField: "test"},
	}

	pipeline, err := BuildLookupPipeline(relations)
	require.NoError(t, err)
	require.Len(t, pipeline, 2)

	// sorted by "as": test before user
	first := pipeline[0][0]
	assert.Equal(t, "$lookup", first.Key)
	assert.Equal(t, bson.D{
		{Key: "from", Value: "user"},
		{Key: "localField", Value: "test"},
		{Key: "foreignField", Value: "test"},
		{Key: "as", Value: "test"},
	}, first.Value)

	second := pipeline[1][0].Value.(bson.D)
	require.Len(t, second, 5)
	assert.Equal(t, "as", second[3].Key)
	assert.Equal(t, "user", second[3].Value)
	assert.Equal(t, "pipeline", second[4].Key)

	nested := second[4].Value.(mongo.Pipeline)
	require.Len(t, nested, 1)
	nestedLookup := nested[0][0].Value.(bson.D)
	assert.Equal(t, "address", nestedLookup[0].Value)
	assert.Equal(t, "addresses", nestedLookup[3].Value)
}

func TestBuildLookupPipelineDeterministic(t *testing.T) {
	relations := RelationMap{
		"c": {From: "c", LocalField: "a", ForeignField: "b"},
		"a": {From: "a", LocalField: "a", ForeignField: "b"},
		"b": {From: "b", LocalField: "a", ForeignField: "b"},
	}

	first, err := BuildLookupPipeline(relations)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := BuildLookupPipeline(relations)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestBuildLookupPipelineErrors(t *testing.T) {
	_, err := BuildLookupPipeline(RelationMap{"x": {From: "x", LocalField: "a"}})
	assert.ErrorContains(t, err, `lookup relation "x"`)

	_, err = BuildLookupPipeline(RelationMap{
		"outer": {From: "o", LocalField: "a", ForeignField: "b", Nested: RelationMap{"inner": {}}},
	})
	assert.ErrorContains(t, err, "outer:")

	empty, err := BuildLookupPipeline(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMarshalPipeline(t *testing.T) {
	pipeline, err := BuildLookupPipeline(GroupTreeRelations)
	require.NoError(t, err)

	raw, err := MarshalPipeline(pipeline)
	require.NoError(t, err)

	var decoded struct {
		Pipeline []map[string]map[string]any `json:"pipeline"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Pipeline, 1)

	lookup := decoded.Pipeline[0]["$lookup"]
	assert.Equal(t, "user", lookup["from"])
	assert.Equal(t, "users", lookup["as"])
	nested, ok := lookup["pipeline"].([]any)
	require.True(t, ok)
	assert.Len(t, nested, 1)
}
