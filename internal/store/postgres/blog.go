package postgres

import (
	"context"
	"fmt"
	"strings"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

const postCols = `id, title, slug, excerpt, content, content_html, featured_image, category_id, tags, author_name,
	author_avatar, status, published_at, reading_time, views, meta_title, meta_description, meta_keywords,
	created_at, updated_at`

// postListCols matches postCols with the body columns blanked.
const postListCols = `id, title, slug, excerpt, '' AS content, '' AS content_html, featured_image, category_id, tags, author_name,
	author_avatar, status, published_at, reading_time, views, meta_title, meta_description, meta_keywords,
	created_at, updated_at`

func scanPost(r rowScanner) (*models.BlogPost, error) {
	var p models.BlogPost
	var category *string
	err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.ContentHTML, &p.FeaturedImage, &category, &p.Tags, &p.Author.Name,
		&p.Author.Avatar, &p.Status, &p.PublishedAt, &p.ReadingTime, &p.Views, &p.MetaTitle, &p.MetaDescription, &p.MetaKeywords,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	p.CategoryID = strOrEmpty(category)
	return &p, nil
}

var postSortColumns = map[string]string{
	"publishedAt": "published_at",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"views":       "views",
	"title":       "title",
}

type blog struct{ s *Store }

func (b blog) CreatePost(ctx context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := b.s.q.Exec(ctx, `INSERT INTO blog_posts (`+postCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		doc.ID, doc.Title, doc.Slug, doc.Excerpt, doc.Content, doc.ContentHTML, doc.FeaturedImage, nullable(doc.CategoryID), orEmpty(doc.Tags), doc.Author.Name,
		doc.Author.Avatar, string(doc.Status), doc.PublishedAt, doc.ReadingTime, doc.Views, doc.MetaTitle, doc.MetaDescription, orEmpty(doc.MetaKeywords),
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

// UpdatePost rewrites every column except views and created_at.
func (b blog) UpdatePost(ctx context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	row := b.s.q.QueryRow(ctx, `UPDATE blog_posts SET
			title = $2, slug = $3, excerpt = $4, content = $5, content_html = $6, featured_image = $7,
			category_id = $8, tags = $9, author_name = $10, author_avatar = $11, status = $12,
			published_at = $13, reading_time = $14, meta_title = $15, meta_description = $16,
			meta_keywords = $17, updated_at = $18
		WHERE id = $1
		RETURNING `+postCols,
		doc.ID, doc.Title, doc.Slug, doc.Excerpt, doc.Content, doc.ContentHTML, doc.FeaturedImage,
		nullable(doc.CategoryID), orEmpty(doc.Tags), doc.Author.Name, doc.Author.Avatar, string(doc.Status),
		doc.PublishedAt, doc.ReadingTime, doc.MetaTitle, doc.MetaDescription,
		orEmpty(doc.MetaKeywords), doc.UpdatedAt)
	out, err := scanPost(row)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return out, nil
}

func (b blog) DeletePost(ctx context.Context, id string) error {
	tag, err := b.s.q.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b blog) GetPost(ctx context.Context, id string) (*models.BlogPost, error) {
	return scanPost(b.s.q.QueryRow(ctx, `SELECT `+postCols+` FROM blog_posts WHERE id = $1`, id))
}

func (b blog) GetPostBySlug(ctx context.Context, slug string, status models.PostStatus) (*models.BlogPost, error) {
	return scanPost(b.s.q.QueryRow(ctx, `SELECT `+postCols+` FROM blog_posts
		WHERE slug = $1 AND ($2 = '' OR status = $2)`, slug, string(status)))
}

func (b blog) PostSlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := b.s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blog_posts WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	return exists, err
}

// postWhere builds the list filter. Search uses strpos so user input is
// never interpreted as a pattern.
func postWhere(f models.PostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.CategoryID != "" {
		add("category_id = $%d", f.CategoryID)
	}
	if f.Tag != "" {
		add("$%d = ANY(tags)", f.Tag)
	}
	if f.Search != "" {
		args = append(args, strings.ToLower(f.Search))
		n := len(args)
		conds = append(conds, fmt.Sprintf(`(strpos(lower(title), $%[1]d) > 0
			OR strpos(lower(excerpt), $%[1]d) > 0
			OR EXISTS (SELECT 1 FROM unnest(tags) t WHERE strpos(lower(t), $%[1]d) > 0))`, n))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (b blog) ListPosts(ctx context.Context, f models.PostFilter) ([]*models.BlogPost, int64, error) {
	where, args := postWhere(f)

	col, ok := postSortColumns[f.SortField]
	if !ok {
		col = "published_at"
	}
	order := col + " ASC NULLS FIRST, id ASC"
	if f.SortDesc {
		order = col + " DESC NULLS LAST, id DESC"
	}
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	query := fmt.Sprintf(`SELECT %s FROM blog_posts%s ORDER BY %s LIMIT %d OFFSET %d`, postListCols, where, order, limit, offset)

	rows, err := b.s.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanPost)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := b.s.q.QueryRow(ctx, `SELECT count(*) FROM blog_posts`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (b blog) RelatedPosts(ctx context.Context, f models.RelatedFilter) ([]*models.RelatedPost, error) {
	if f.CategoryID == "" && len(f.Tags) == 0 {
		return []*models.RelatedPost{}, nil
	}
	limit := f.Limit
	if limit <= 0 {
		limit = store.MaxPageSize
	}
	rows, err := b.s.q.Query(ctx, `SELECT id, title, slug, excerpt, published_at, reading_time
		FROM blog_posts
		WHERE status = 'published' AND id <> $1
		  AND (($2 <> '' AND category_id = $2) OR tags && $3)
		ORDER BY published_at DESC NULLS LAST, id DESC
		LIMIT $4`, f.ExcludeID, f.CategoryID, orEmpty(f.Tags), limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(r rowScanner) (*models.RelatedPost, error) {
		var p models.RelatedPost
		err := r.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.PublishedAt, &p.ReadingTime)
		return &p, err
	})
}

func (b blog) IncrementViews(ctx context.Context, id string) error {
	tag, err := b.s.q.Exec(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b blog) TopTags(ctx context.Context, limit int) ([]models.TagCount, error) {
	if limit <= 0 {
		limit = store.MaxPageSize
	}
	rows, err := b.s.q.Query(ctx, `SELECT t, count(*) AS n
		FROM blog_posts, unnest(tags) AS t
		WHERE status = 'published'
		GROUP BY t
		ORDER BY n DESC, t ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return derefAll(collect(rows, func(r rowScanner) (*models.TagCount, error) {
		var tc models.TagCount
		err := r.Scan(&tc.Name, &tc.Count)
		return &tc, err
	}))
}

const categoryCols = `id, name, slug, description, is_active, sort_order, created_at, updated_at`

func scanCategory(r rowScanner) (*models.BlogCategory, error) {
	var c models.BlogCategory
	if err := r.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.IsActive, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, translate(err, nil)
	}
	return &c, nil
}

func (b blog) CreateCategory(ctx context.Context, in *models.BlogCategory) (*models.BlogCategory, error) {
	doc := *in
	if err := store.BeforeCategory(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := b.s.q.Exec(ctx, `INSERT INTO blog_categories (`+categoryCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		doc.ID, doc.Name, doc.Slug, doc.Description, doc.IsActive, doc.Order, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (b blog) GetCategory(ctx context.Context, id string) (*models.BlogCategory, error) {
	return scanCategory(b.s.q.QueryRow(ctx, `SELECT `+categoryCols+` FROM blog_categories WHERE id = $1`, id))
}

func (b blog) GetCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error) {
	return scanCategory(b.s.q.QueryRow(ctx, `SELECT `+categoryCols+` FROM blog_categories WHERE slug = $1`, slug))
}

func (b blog) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := b.s.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blog_categories WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (b blog) GetCategories(ctx context.Context, ids []string) (map[string]*models.BlogCategory, error) {
	out := make(map[string]*models.BlogCategory, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := b.s.q.Query(ctx, `SELECT `+categoryCols+` FROM blog_categories WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanCategory)
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (b blog) ListActiveCategories(ctx context.Context) ([]*models.BlogCategory, error) {
	rows, err := b.s.q.Query(ctx, `SELECT `+categoryCols+` FROM blog_categories
		WHERE is_active ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanCategory)
}

func (b blog) CountPublishedPosts(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := b.s.q.QueryRow(ctx, `SELECT count(*) FROM blog_posts WHERE category_id = $1 AND status = 'published'`, categoryID).Scan(&n)
	return n, err
}
