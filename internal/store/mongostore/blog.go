package mongostore

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

var optionalPostFields = []string{
	"contentHtml", "featuredImage", "category", "publishedAt",
	"metaTitle", "metaDescription", "metaKeywords",
}

type blog struct{ s *Store }

func (b blog) posts() *mongo.Collection      { return b.s.coll(store.CollBlogPosts) }
func (b blog) categories() *mongo.Collection { return b.s.coll(store.CollBlogCategories) }

func (b blog) CreatePost(ctx context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, b.posts(), &doc)
}

// UpdatePost rewrites every field except views and createdAt, so a concurrent
// view increment is never lost.
func (b blog) UpdatePost(ctx context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	set, err := toSet(&doc, "views", "createdAt")
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": set}
	unset := bson.M{}
	for _, k := range optionalPostFields {
		if _, ok := set[k]; !ok {
			unset[k] = ""
		}
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := b.posts().UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return nil, translate(err, store.CollBlogPosts, &doc)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return b.GetPost(ctx, doc.ID)
}

func (b blog) DeletePost(ctx context.Context, id string) error {
	res, err := b.posts().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b blog) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	return findByID[models.BlogPost](ctx, b.posts(), id)
}

func (b blog) GetPostBySlug(ctx context.Context, slug string, status models.PostStatus) (*models.BlogPost, error) {
	filter := bson.M{"slug": slug}
	if status != "" {
		filter["status"] = status
	}
	var out models.BlogPost
	if err := b.posts().FindOne(ctx, filter).Decode(&out); err != nil {
		return nil, translate(err, store.CollBlogPosts, nil)
	}
	return &out, nil
}

func (b blog) PostSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := b.posts().CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func (b blog) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.BlogPost, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CategoryID != "" {
		filter["category"] = f.CategoryID
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Search != "" {
		rx := primitiveRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"excerpt": rx},
			bson.M{"tags": rx},
		}
	}

	field := f.SortField
	if field == "" {
		field = "publishedAt"
	}
	dir := 1
	if f.SortDesc {
		dir = -1
	}
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"content": 0, "contentHtml": 0})

	rows, err := findAll[models.BlogPost](ctx, b.posts(), filter, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := b.posts().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func primitiveRegex(search string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(search), "$options": "i"}
}

func (b blog) RelatedPosts(ctx context.Context, f models.RelatedFilter) ([]*models.RelatedPost, error) {
	or := bson.A{}
	if f.CategoryID != "" {
		or = append(or, bson.M{"category": f.CategoryID})
	}
	if len(f.Tags) > 0 {
		or = append(or, bson.M{"tags": bson.M{"$in": f.Tags}})
	}
	if len(or) == 0 {
		return []*models.RelatedPost{}, nil
	}
	filter := bson.M{
		"status": models.PostPublished,
		"_id":    bson.M{"$ne": f.ExcludeID},
		"$or":    or,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetProjection(bson.M{"title": 1, "slug": 1, "excerpt": 1, "publishedAt": 1, "readingTime": 1})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return findAll[models.RelatedPost](ctx, b.posts(), filter, opts)
}

func (b blog) IncrementViews(ctx context.Context, id string) error {
	res, err := b.posts().UpdateByID(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b blog) TopTags(ctx context.Context, limit int) ([]models.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.PostPublished}}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$tags"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	cur, err := b.posts().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []models.TagCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b blog) CreateCategory(ctx context.Context, in *models.BlogCategory) (*models.BlogCategory, error) {
	doc := *in
	if err := store.BeforeCategory(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, b.categories(), &doc)
}

func (b blog) GetCategory(ctx context.Context, id string) (*models.BlogCategory, error) {
	return findByID[models.BlogCategory](ctx, b.categories(), id)
}

func (b blog) GetCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	var out models.BlogCategory
	if err := b.categories().FindOne(ctx, bson.M{"slug": slug}).Decode(&out); err != nil {
		return nil, translate(err, store.CollBlogCategories, nil)
	}
	return &out, nil
}

func (b blog) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	n, err := b.categories().CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	return n > 0, err
}

func (b blog) GetCategories(ctx context.Context, ids []string) (map[string]*models.BlogCategory, error) {
	out := make(map[string]*models.BlogCategory, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := findAll[models.BlogCategory](ctx, b.categories(), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.ID] = c
	}
	return out, nil
}

func (b blog) ListActiveCategories(ctx context.Context) ([]*models.BlogCategory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	return findAll[models.BlogCategory](ctx, b.categories(), bson.M{"isActive": true}, opts)
}

func (b blog) CountPublishedPosts(ctx context.Context, categoryID string) (int64, error) {
	return b.posts().CountDocuments(ctx, bson.M{"category": categoryID, "status": models.PostPublished})
}
