package memory

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

type blog struct{ s *Store }

func (b blog) CreatePost(_ context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.BlogPost
	err := b.s.write(func(d *data) (err error) {
		out, err = d.posts.put(&doc)
		return err
	})
	return out, err
}

func (b blog) UpdatePost(_ context.Context, in *models.BlogPost) (*models.BlogPost, error) {
	doc := *in
	if err := store.BeforePost(&doc, b.s.now()); err != nil {
		return nil, err
	}
	var out *models.BlogPost
	err := b.s.write(func(d *data) error {
		cur, err := d.posts.get(doc.ID)
		if err != nil {
			return err
		}
		doc.Views = cur.Views
		doc.CreatedAt = cur.CreatedAt
		out, err = d.posts.put(&doc)
		return err
	})
	return out, err
}

func (b blog) DeletePost(_ context.Context, id string) error {
	return b.s.write(func(d *data) error {
		if _, ok := d.posts.rows[id]; !ok {
			return store.ErrNotFound
		}
		delete(d.posts.rows, id)
		return nil
	})
}

func (b blog) GetPost(_ context.Context, id string) (out *models.BlogPost, err error) {
	err = b.s.read(func(d *data) error {
		out, err = d.posts.get(id)
		return err
	})
	return out, err
}

func (b blog) GetPostBySlug(_ context.Context, slug string, status models.PostStatus) (*models.BlogPost, error) {
	var rows []*models.BlogPost
	_ = b.s.read(func(d *data) error {
		rows = d.posts.find(func(p *models.BlogPost) bool {
			return p.Slug == slug && (status == "" || p.Status == status)
		})
		return nil
	})
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (b blog) PostSlugExists(_ context.Context, slug, excludeID string) (bool, error) {
	var found bool
	_ = b.s.read(func(d *data) error {
		found = len(d.posts.find(func(p *models.BlogPost) bool { return p.Slug == slug && p.ID != excludeID })) > 0
		return nil
	})
	return found, nil
}

func matchesSearch(p *models.BlogPost, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) || strings.Contains(strings.ToLower(p.Excerpt), needle) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func postCompare(field string) func(a, b *models.BlogPost) int {
	switch field {
	case "createdAt":
		return func(a, b *models.BlogPost) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "updatedAt":
		return func(a, b *models.BlogPost) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case "views":
		return func(a, b *models.BlogPost) int { return cmp.Compare(a.Views, b.Views) }
	case "title":
		return func(a, b *models.BlogPost) int { return strings.Compare(a.Title, b.Title) }
	default:
		return func(a, b *models.BlogPost) int { return timeOrZero(a.PublishedAt).Compare(timeOrZero(b.PublishedAt)) }
	}
}

func (b blog) ListPosts(_ context.Context, f models.PostFilter) ([]*models.BlogPost, int64, error) {
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	var rows []*models.BlogPost
	_ = b.s.read(func(d *data) error {
		rows = d.posts.find(func(p *models.BlogPost) bool {
			switch {
			case f.Status != "" && p.Status != f.Status:
				return false
			case f.CategoryID != "" && p.CategoryID != f.CategoryID:
				return false
			case f.Tag != "" && !slices.Contains(p.Tags, f.Tag):
				return false
			case needle != "" && !matchesSearch(p, needle):
				return false
			}
			return true
		})
		return nil
	})
	compare := postCompare(f.SortField)
	slices.SortStableFunc(rows, func(a, b *models.BlogPost) int {
		c := compare(a, b)
		if f.SortDesc {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID, b.ID)
		}
		return c
	})
	page := window(rows, limit, offset)
	for _, p := range page {
		p.Content = ""
		p.ContentHTML = ""
	}
	return page, int64(len(rows)), nil
}

func (b blog) RelatedPosts(_ context.Context, f models.RelatedFilter) ([]*models.RelatedPost, error) {
	if f.CategoryID == "" && len(f.Tags) == 0 {
		return []*models.RelatedPost{}, nil
	}
	var rows []*models.BlogPost
	_ = b.s.read(func(d *data) error {
		rows = d.posts.find(func(p *models.BlogPost) bool {
			if p.Status != models.PostPublished || p.ID == f.ExcludeID {
				return false
			}
			if f.CategoryID != "" && p.CategoryID == f.CategoryID {
				return true
			}
			for _, t := range p.Tags {
				if slices.Contains(f.Tags, t) {
					return true
				}
			}
			return false
		})
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		return newestFirst(timeOrZero(rows[i].PublishedAt), timeOrZero(rows[j].PublishedAt), rows[i].ID, rows[j].ID)
	})
	if f.Limit > 0 && len(rows) > f.Limit {
		rows = rows[:f.Limit]
	}
	out := make([]*models.RelatedPost, 0, len(rows))
	for _, p := range rows {
		out = append(out, &models.RelatedPost{
			ID:          p.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			Excerpt:     p.Excerpt,
			PublishedAt: p.PublishedAt,
			ReadingTime: p.ReadingTime,
		})
	}
	return out, nil
}

func (b blog) IncrementViews(_ context.Context, id string) error {
	return b.s.write(func(d *data) error {
		p, ok := d.posts.rows[id]
		if !ok {
			return store.ErrNotFound
		}
		cp := *p
		cp.Views++
		d.posts.rows[id] = &cp
		return nil
	})
}

func (b blog) TopTags(_ context.Context, limit int) ([]models.TagCount, error) {
	counts := map[string]int64{}
	_ = b.s.read(func(d *data) error {
		for _, p := range d.posts.rows {
			if p.Status != models.PostPublished {
				continue
			}
			for _, t := range p.Tags {
				counts[t]++
			}
		}
		return nil
	})
	out := make([]models.TagCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.TagCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (b blog) CreateCategory(_ context.Context, in *models.BlogCategory) (*models.BlogCategory, error) {
	doc := *in
	if err := store.BeforeCategory(&doc, b.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.BlogCategory
	err := b.s.write(func(d *data) (err error) {
		out, err = d.categories.put(&doc)
		return err
	})
	return out, err
}

func (b blog) GetCategory(_ context.Context, id string) (out *models.BlogCategory, err error) {
	err = b.s.read(func(d *data) error {
		out, err = d.categories.get(id)
		return err
	})
	return out, err
}

func (b blog) GetCategoryBySlug(_ context.Context, slug string) (*models.BlogCategory, error) {
	var rows []*models.BlogCategory
	_ = b.s.read(func(d *data) error {
		rows = d.categories.find(func(c *models.BlogCategory) bool { return c.Slug == slug })
		return nil
	})
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (b blog) CategorySlugExists(ctx context.Context, slug string) (bool, error) {
	_, err := b.GetCategoryBySlug(ctx, slug)
	return err == nil, nil
}

func (b blog) GetCategories(_ context.Context, ids []string) (map[string]*models.BlogCategory, error) {
	out := make(map[string]*models.BlogCategory, len(ids))
	_ = b.s.read(func(d *data) error {
		for _, id := range ids {
			if c, err := d.categories.get(id); err == nil {
				out[id] = c
			}
		}
		return nil
	})
	return out, nil
}

func (b blog) ListActiveCategories(_ context.Context) ([]*models.BlogCategory, error) {
	var rows []*models.BlogCategory
	_ = b.s.read(func(d *data) error {
		rows = d.categories.find(func(c *models.BlogCategory) bool { return c.IsActive })
		return nil
	})
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Order != rows[j].Order {
			return rows[i].Order < rows[j].Order
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

func (b blog) CountPublishedPosts(_ context.Context, categoryID string) (int64, error) {
	var n int64
	_ = b.s.read(func(d *data) error {
		for _, p := range d.posts.rows {
			if p.Status == models.PostPublished && p.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, nil
}
