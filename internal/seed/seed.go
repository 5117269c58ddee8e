// Package seed loads the default blog categories and sample posts. Running it
// twice is harmless: anything whose slug already exists is skipped.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/schema"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/store"
)

// Category is a seed category.
type Category struct {
	Name        string
	Description string
}

// Post is a seed post. CategoryIndex points into the category list.
type Post struct {
	Title         string
	Content       string
	Tags          []string
	CategoryIndex int
}

// Result counts what a run created and skipped.
type Result struct {
	CategoriesCreated int `json:"categoriesCreated"`
	CategoriesSkipped int `json:"categoriesSkipped"`
	PostsCreated      int `json:"postsCreated"`
	PostsSkipped      int `json:"postsSkipped"`
}

// Seeder writes seed content through the blog service so the usual derived
// fields (html, excerpt, reading time, slug) apply.
type Seeder struct {
	store store.Store
	blog  *services.BlogService
	log   zerolog.Logger
}

func New(s store.Store, blog *services.BlogService, log zerolog.Logger) *Seeder {
	return &Seeder{store: s, blog: blog, log: log}
}

// Blog seeds the default categories and published sample posts.
func (s *Seeder) Blog(ctx context.Context) (*Result, error) {
	return s.Run(ctx, DefaultCategories, SamplePosts)
}

// Run seeds the given categories and posts.
func (s *Seeder) Run(ctx context.Context, categories []Category, posts []Post) (*Result, error) {
	res := &Result{}
	ids := make([]string, len(categories))

	for i, c := range categories {
		existing, err := s.store.Blog().GetCategoryBySlug(ctx, schema.Slugify(c.Name))
		switch {
		case err == nil:
			ids[i] = existing.ID
			res.CategoriesSkipped++
			continue
		case !errors.Is(err, store.ErrNotFound):
			return nil, err
		}
		created, err := s.blog.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: c.Name, Description: c.Description, Order: i})
		if err != nil {
			return nil, err
		}
		ids[i] = created.ID
		res.CategoriesCreated++
	}

	for _, p := range posts {
		taken, err := s.store.Blog().PostSlugExists(ctx, schema.Slugify(p.Title), "")
		if err != nil {
			return nil, err
		}
		if taken {
			res.PostsSkipped++
			continue
		}
		req := &dto.CreatePostRequest{
			Title:   p.Title,
			Content: p.Content,
			Tags:    p.Tags,
			Status:  models.PostPublished,
			Author:  &models.Author{Name: models.DefaultAuthorName},
		}
		if p.CategoryIndex >= 0 && p.CategoryIndex < len(ids) {
			req.Category = ids[p.CategoryIndex]
		}
		created, err := s.blog.CreatePost(ctx, req)
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("slug", created.Slug).Msg("seeded post")
		res.PostsCreated++
	}
	return res, nil
}
