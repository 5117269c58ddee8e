package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/markdown"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/schema"
	"ENW_BACK-END/internal/store"
)

// Blog listing limits.
const (
	DefaultPostLimit    = 10
	MaxPostLimit        = 50
	DefaultRelatedLimit = 3
	TopTagsLimit        = 20
	DefaultPostSort     = "-publishedAt"
)

// StatusAny disables the status filter of a post listing.
const StatusAny = "any"

var sortablePostFields = map[string]bool{
	"publishedAt": true,
	"createdAt":   true,
	"updatedAt":   true,
	"views":       true,
	"title":       true,
}

// ParsePostSort resolves a sort expression such as "-publishedAt". Unknown
// fields fall back to the default order.
func ParsePostSort(sort string) (field string, desc bool) {
	sort = strings.TrimSpace(sort)
	desc = strings.HasPrefix(sort, "-")
	field = strings.TrimPrefix(strings.TrimPrefix(sort, "-"), "+")
	if !sortablePostFields[field] {
		return "publishedAt", true
	}
	return field, desc
}

// PostQuery selects posts for the public listing.
type PostQuery struct {
	Status   string
	Category string
	Tag      string
	Search   string
	Sort     string
	Limit    int
	Offset   int
}

// PostPage is one page of posts.
type PostPage struct {
	Data   []*models.BlogPostView
	Total  int64
	Limit  int
	Offset int
}

// BlogService serves and administers blog content.
type BlogService struct {
	store    store.Store
	renderer *markdown.Renderer
	log      zerolog.Logger
}

func NewBlogService(s store.Store, r *markdown.Renderer, log zerolog.Logger) *BlogService {
	if r == nil {
		r = markdown.NewRenderer()
	}
	return &BlogService{store: s, renderer: r, log: log}
}

// ListPosts returns one page of posts without their bodies. An unknown
// category slug yields an empty page.
func (s *BlogService) ListPosts(ctx context.Context, q PostQuery) (*PostPage, error) {
	page := &PostPage{Data: []*models.BlogPostView{}, Limit: q.Limit, Offset: q.Offset}

	f := models.PostFilter{
		Tag:    strings.TrimSpace(q.Tag),
		Search: strings.TrimSpace(q.Search),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	switch status := strings.ToLower(strings.TrimSpace(q.Status)); status {
	case "":
		f.Status = models.PostPublished
	case StatusAny:
	default:
		f.Status = models.PostStatus(status)
	}
	f.SortField, f.SortDesc = ParsePostSort(q.Sort)

	if slug := strings.TrimSpace(q.Category); slug != "" {
		cat, err := s.store.Blog().GetCategoryBySlug(ctx, slug)
		if errors.Is(err, store.ErrNotFound) {
			s.log.Debug().Str("category", slug).Msg("unknown category slug")
			return page, nil
		}
		if err != nil {
			return nil, withStack(err, "load category")
		}
		f.CategoryID = cat.ID
	}

	posts, total, err := s.store.Blog().ListPosts(ctx, f)
	if err != nil {
		return nil, withStack(err, "list posts")
	}
	views, err := s.withCategories(ctx, posts)
	if err != nil {
		return nil, err
	}
	page.Data = views
	page.Total = total
	return page, nil
}

// GetPostBySlug returns a published post and counts the view. A failed
// increment is logged and does not fail the read.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*models.BlogPostView, error) {
	p, err := s.store.Blog().GetPostBySlug(ctx, slug, models.PostPublished)
	if err != nil {
		return nil, notFound(err, "Post")
	}
	if err := s.store.Blog().IncrementViews(ctx, p.ID); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("view count not incremented")
	} else {
		p.Views++
	}
	views, err := s.withCategories(ctx, []*models.BlogPost{p})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// RelatedPosts returns published posts sharing the category or a tag with the
// post at slug, whatever that post's own status.
func (s *BlogService) RelatedPosts(ctx context.Context, slug string, limit int) ([]*models.RelatedPost, error) {
	p, err := s.store.Blog().GetPostBySlug(ctx, slug, "")
	if err != nil {
		return nil, notFound(err, "Post")
	}
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	rows, err := s.store.Blog().RelatedPosts(ctx, models.RelatedFilter{
		ExcludeID:  p.ID,
		CategoryID: p.CategoryID,
		Tags:       p.Tags,
		Limit:      limit,
	})
	if err != nil {
		return nil, withStack(err, "related posts")
	}
	if rows == nil {
		rows = []*models.RelatedPost{}
	}
	return rows, nil
}

// Categories returns the active categories with live published post counts.
func (s *BlogService) Categories(ctx context.Context) ([]*models.CategoryWithCount, error) {
	cats, err := s.store.Blog().ListActiveCategories(ctx)
	if err != nil {
		return nil, withStack(err, "list categories")
	}
	out := make([]*models.CategoryWithCount, 0, len(cats))
	for _, c := range cats {
		n, err := s.store.Blog().CountPublishedPosts(ctx, c.ID)
		if err != nil {
			return nil, withStack(err, "count posts")
		}
		out = append(out, &models.CategoryWithCount{BlogCategory: *c, PostCount: n})
	}
	return out, nil
}

// Tags returns the most used tags across published posts.
func (s *BlogService) Tags(ctx context.Context) ([]models.TagCount, error) {
	tags, err := s.store.Blog().TopTags(ctx, TopTagsLimit)
	if err != nil {
		return nil, withStack(err, "top tags")
	}
	if tags == nil {
		tags = []models.TagCount{}
	}
	return tags, nil
}

// CreatePost renders the body and derives the excerpt when absent. A supplied
// slug is kept as is and clashes surface as duplicate keys; otherwise a unique
// slug is derived from the title.
func (s *BlogService) CreatePost(ctx context.Context, in *dto.CreatePostRequest) (*models.BlogPostView, error) {
	if err := s.checkCategory(ctx, in.Category); err != nil {
		return nil, err
	}
	html, err := s.renderer.Render(in.Content)
	if err != nil {
		return nil, withStack(err, "render markdown")
	}

	p := &models.BlogPost{
		Title:           in.Title,
		Content:         in.Content,
		ContentHTML:     html,
		Excerpt:         strings.TrimSpace(in.Excerpt),
		FeaturedImage:   in.FeaturedImage,
		CategoryID:      in.Category,
		Tags:            in.Tags,
		Status:          in.Status,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
		MetaKeywords:    in.MetaKeywords,
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if p.Excerpt == "" {
		p.Excerpt = markdown.ExtractExcerpt(in.Content, markdown.DefaultExcerptLength)
	}

	p.Slug = in.Slug
	if p.Slug == "" {
		p.Slug, err = schema.UniqueSlug(ctx, schema.Slugify(in.Title), func(ctx context.Context, slug string) (bool, error) {
			return s.store.Blog().PostSlugExists(ctx, slug, "")
		})
		if err != nil {
			return nil, withStack(err, "allocate slug")
		}
	}

	created, err := s.store.Blog().CreatePost(ctx, p)
	if err != nil {
		return nil, withStack(err, "create post")
	}
	s.log.Info().Str("slug", created.Slug).Msg("blog post created")
	return s.view(ctx, created)
}

// UpdatePost applies a partial update. New content is re-rendered and, unless
// an excerpt is supplied, re-summarized. The slug never changes.
func (s *BlogService) UpdatePost(ctx context.Context, id string, in *dto.UpdatePostRequest) (*models.BlogPostView, error) {
	if !s.store.ValidID(id) {
		return nil, invalidParam("id", "Invalid post id")
	}
	p, err := s.store.Blog().GetPost(ctx, id)
	if err != nil {
		return nil, notFound(err, "Post")
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Status != nil {
		p.Status = *in.Status
	}
	if in.Excerpt != nil {
		p.Excerpt = strings.TrimSpace(*in.Excerpt)
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = *in.FeaturedImage
	}
	if in.Category != nil {
		if err := s.checkCategory(ctx, *in.Category); err != nil {
			return nil, err
		}
		p.CategoryID = *in.Category
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}
	if in.Author != nil {
		p.Author = *in.Author
	}
	if in.MetaTitle != nil {
		p.MetaTitle = *in.MetaTitle
	}
	if in.MetaDescription != nil {
		p.MetaDescription = *in.MetaDescription
	}
	if in.MetaKeywords != nil {
		p.MetaKeywords = in.MetaKeywords
	}
	if in.Content != nil {
		p.Content = *in.Content
		if p.ContentHTML, err = s.renderer.Render(p.Content); err != nil {
			return nil, withStack(err, "render markdown")
		}
		if in.Excerpt == nil || strings.TrimSpace(*in.Excerpt) == "" {
			p.Excerpt = markdown.ExtractExcerpt(p.Content, markdown.DefaultExcerptLength)
		}
	}

	updated, err := s.store.Blog().UpdatePost(ctx, p)
	if err != nil {
		return nil, notFound(err, "Post")
	}
	s.log.Info().Str("slug", updated.Slug).Msg("blog post updated")
	return s.view(ctx, updated)
}

// DeletePost removes a post. Categories are left alone.
func (s *BlogService) DeletePost(ctx context.Context, id string) error {
	if !s.store.ValidID(id) {
		return invalidParam("id", "Invalid post id")
	}
	if err := s.store.Blog().DeletePost(ctx, id); err != nil {
		return notFound(err, "Post")
	}
	s.log.Info().Str("postId", id).Msg("blog post deleted")
	return nil
}

// CreateCategory stores a category with a unique slug derived from its name.
func (s *BlogService) CreateCategory(ctx context.Context, in *dto.CreateCategoryRequest) (*models.BlogCategory, error) {
	c := &models.BlogCategory{
		Name:        in.Name,
		Description: in.Description,
		Order:       in.Order,
		IsActive:    true,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	var err error
	c.Slug, err = schema.UniqueSlug(ctx, schema.Slugify(in.Name), s.store.Blog().CategorySlugExists)
	if err != nil {
		return nil, withStack(err, "allocate slug")
	}
	created, err := s.store.Blog().CreateCategory(ctx, c)
	if err != nil {
		return nil, withStack(err, "create category")
	}
	s.log.Info().Str("slug", created.Slug).Msg("blog category created")
	return created, nil
}

func (s *BlogService) checkCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if !s.store.ValidID(id) {
		return invalidParam("category", "Invalid category id")
	}
	if _, err := s.store.Blog().GetCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return invalidParam("category", "Category not found")
		}
		return withStack(err, "load category")
	}
	return nil
}

func (s *BlogService) view(ctx context.Context, p *models.BlogPost) (*models.BlogPostView, error) {
	views, err := s.withCategories(ctx, []*models.BlogPost{p})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// withCategories expands the category reference of each post.
func (s *BlogService) withCategories(ctx context.Context, posts []*models.BlogPost) ([]*models.BlogPostView, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.CategoryID != "" {
			ids = append(ids, p.CategoryID)
		}
	}
	cats := map[string]*models.BlogCategory{}
	if len(ids) > 0 {
		var err error
		if cats, err = s.store.Blog().GetCategories(ctx, ids); err != nil {
			return nil, withStack(err, "load categories")
		}
	}
	out := make([]*models.BlogPostView, 0, len(posts))
	for _, p := range posts {
		v := &models.BlogPostView{BlogPost: *p}
		if c, ok := cats[p.CategoryID]; ok {
			v.Category = &models.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
		}
		out = append(out, v)
	}
	return out, nil
}
