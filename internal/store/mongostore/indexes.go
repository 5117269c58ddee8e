package mongostore

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ENW_BACK-END/internal/store"
)

type indexSpec struct {
	collection string
	keys       bson.D
	unique     bool
}

func (i indexSpec) name() string {
	parts := make([]string, 0, len(i.keys)*2)
	for _, k := range i.keys {
		parts = append(parts, k.Key, fmt.Sprint(k.Value))
	}
	return strings.Join(parts, "_")
}

func (i indexSpec) fields() []string {
	out := make([]string, 0, len(i.keys))
	for _, k := range i.keys {
		out = append(out, k.Key)
	}
	return out
}

var indexSpecs = []indexSpec{
	{collection: store.CollSeniors, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: store.CollSeniors, keys: bson.D{{Key: "createdAt", Value: -1}}},
	{collection: store.CollSupportRequests, keys: bson.D{{Key: "seniorId", Value: 1}}},
	{collection: store.CollSupportRequests, keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: store.CollVolunteers, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: store.CollVolunteers, keys: bson.D{{Key: "status", Value: 1}}},
	{collection: store.CollPartners, keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: store.CollAssignments, keys: bson.D{{Key: "volunteerId", Value: 1}, {Key: "seniorId", Value: 1}, {Key: "requestId", Value: 1}}, unique: true},
	{collection: store.CollTasks, keys: bson.D{{Key: "requestId", Value: 1}}},
	{collection: store.CollBlogPosts, keys: bson.D{{Key: "slug", Value: 1}}, unique: true},
	{collection: store.CollBlogPosts, keys: bson.D{{Key: "status", Value: 1}, {Key: "publishedAt", Value: -1}}},
	{collection: store.CollBlogPosts, keys: bson.D{{Key: "category", Value: 1}}},
	{collection: store.CollBlogPosts, keys: bson.D{{Key: "tags", Value: 1}}},
	{collection: store.CollBlogCategories, keys: bson.D{{Key: "name", Value: 1}}, unique: true},
	{collection: store.CollBlogCategories, keys: bson.D{{Key: "slug", Value: 1}}, unique: true},
}

// indexFields resolves a violated index name to its key fields.
func indexFields(collection, name string) ([]string, bool) {
	for _, spec := range indexSpecs {
		if spec.collection == collection && spec.name() == name {
			return spec.fields(), true
		}
	}
	return nil, false
}

type maintenance struct{ s *Store }

func (m maintenance) EnsureIndexes(ctx context.Context) ([]store.IndexInfo, error) {
	byColl := map[string][]mongo.IndexModel{}
	var order []string
	out := make([]store.IndexInfo, 0, len(indexSpecs))
	for _, spec := range indexSpecs {
		if _, ok := byColl[spec.collection]; !ok {
			order = append(order, spec.collection)
		}
		byColl[spec.collection] = append(byColl[spec.collection], mongo.IndexModel{
			Keys:    spec.keys,
			Options: options.Index().SetName(spec.name()).SetUnique(spec.unique),
		})
		out = append(out, store.IndexInfo{
			Collection: spec.collection,
			Name:       spec.name(),
			Keys:       strings.Join(spec.fields(), ","),
			Unique:     spec.unique,
		})
	}
	for _, coll := range order {
		if _, err := m.s.coll(coll).Indexes().CreateMany(ctx, byColl[coll]); err != nil {
			return nil, fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return out, nil
}

func (m maintenance) DuplicateEmails(ctx context.Context, collection string) ([]store.DuplicateGroup, error) {
	if err := store.CheckEmailCollection(collection); err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$email"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "ids", Value: bson.D{{Key: "$push", Value: "$_id"}}},
		}}},
		{{Key: "$match", Value: bson.D{{Key: "count", Value: bson.D{{Key: "$gt", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	cur, err := m.s.coll(collection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []store.DuplicateGroup{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
