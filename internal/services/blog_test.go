package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
	"ENW_BACK-END/internal/store/memory"
)

func newBlog(t *testing.T) (*BlogService, store.Store) {
	t.Helper()
	s := memory.New()
	return NewBlogService(s, nil, zerolog.Nop()), s
}

func TestParsePostSort(t *testing.T) {
	tests := []struct {
		in    string
		field string
		desc  bool
	}{
		{"", "publishedAt", true},
		{"-publishedAt", "publishedAt", true},
		{"views", "views", false},
		{"-title", "title", true},
		{"-password", "publishedAt", true},
	}
	for _, tt := range tests {
		field, desc := ParsePostSort(tt.in)
		assert.Equal(t, tt.field, field, tt.in)
		assert.Equal(t, tt.desc, desc, tt.in)
	}
}

func TestBlogService_CreatePost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBlog(t)

	content := "# Hello\n\nSome **bold** text.\n\n<script>alert(1)</script>"
	p, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Hello World", Content: content, Status: models.PostPublished})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", p.Slug)
	assert.Contains(t, p.ContentHTML, "<strong>bold</strong>")
	assert.NotContains(t, p.ContentHTML, "<script>")
	assert.NotEmpty(t, p.Excerpt)
	assert.False(t, strings.HasPrefix(p.Excerpt, "#"))
	assert.Equal(t, 1, p.ReadingTime)
	assert.Equal(t, models.DefaultAuthorName, p.Author.Name)
	require.NotNil(t, p.PublishedAt)

	second, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Hello World", Content: "again"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", second.Slug)
	assert.Equal(t, models.PostDraft, second.Status)
	assert.Nil(t, second.PublishedAt)
}

func TestBlogService_CreatePost_SuppliedSlug(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBlog(t)

	p, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Hello World", Content: "body text", Slug: "my-custom-slug"})
	require.NoError(t, err)
	assert.Equal(t, "my-custom-slug", p.Slug)

	derived, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Hello World", Content: "body text"})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", derived.Slug)

	_, err = svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Another", Content: "body", Slug: "my-custom-slug"})
	problem := apperr.Translate(err)
	assert.Equal(t, 409, problem.Status)
	assert.Equal(t, apperr.CodeDuplicateKey, problem.Code)
	assert.Equal(t, "slug", problem.Field)
}

func TestBlogService_CreatePost_UnknownCategory(t *testing.T) {
	svc, _ := newBlog(t)
	_, err := svc.CreatePost(context.Background(), &dto.CreatePostRequest{
		Title: "x", Content: "y", Category: "00000000-0000-4000-8000-000000000000",
	})
	assert.Equal(t, "Category not found", apperr.Translate(err).Errors["category"])
}

func TestBlogService_ListAndRead(t *testing.T) {
	ctx := context.Background()
	svc, s := newBlog(t)

	cat, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Health & Wellness"})
	require.NoError(t, err)
	assert.Equal(t, "health-and-wellness", cat.Slug)
	assert.True(t, cat.IsActive)

	pub, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Walking Tips", Content: "walk daily", Status: models.PostPublished, Category: cat.ID, Tags: []string{"health"}})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Draft Notes", Content: "soon", Tags: []string{"health"}})
	require.NoError(t, err)
	other, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Sleep Well", Content: "rest", Status: models.PostPublished, Tags: []string{"health", "sleep"}})
	require.NoError(t, err)

	t.Run("default lists published without bodies", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
		for _, p := range page.Data {
			assert.Empty(t, p.Content)
			assert.Empty(t, p.ContentHTML)
		}
	})

	t.Run("status any", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Status: "ANY", Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
	})

	t.Run("category slug", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Category: "health-and-wellness", Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.NotNil(t, page.Data[0].Category)
		assert.Equal(t, "Health & Wellness", page.Data[0].Category.Name)
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Category: "nope", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Zero(t, page.Total)
	})

	t.Run("search escapes input", func(t *testing.T) {
		page, err := svc.ListPosts(ctx, PostQuery{Search: "walk(", Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page.Data)

		page, err = svc.ListPosts(ctx, PostQuery{Search: "SLEEP", Limit: 10})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, other.ID, page.Data[0].ID)
	})

	t.Run("read counts views", func(t *testing.T) {
		p, err := svc.GetPostBySlug(ctx, pub.Slug)
		require.NoError(t, err)
		assert.EqualValues(t, 1, p.Views)
		assert.NotEmpty(t, p.ContentHTML)

		p, err = svc.GetPostBySlug(ctx, pub.Slug)
		require.NoError(t, err)
		assert.EqualValues(t, 2, p.Views)

		stored, err := s.Blog().GetPost(ctx, pub.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, stored.Views)
	})

	t.Run("drafts are not readable", func(t *testing.T) {
		_, err := svc.GetPostBySlug(ctx, "draft-notes")
		assert.Equal(t, "Post not found", apperr.Translate(err).Message)
	})

	t.Run("related", func(t *testing.T) {
		rel, err := svc.RelatedPosts(ctx, "draft-notes", 0)
		require.NoError(t, err)
		require.Len(t, rel, 2)

		rel, err = svc.RelatedPosts(ctx, pub.Slug, 3)
		require.NoError(t, err)
		require.Len(t, rel, 1)
		assert.Equal(t, "sleep-well", rel[0].Slug)

		_, err = svc.RelatedPosts(ctx, "missing", 3)
		assert.Equal(t, 404, apperr.Translate(err).Status)
	})

	t.Run("categories with counts", func(t *testing.T) {
		cats, err := svc.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, cats, 1)
		assert.EqualValues(t, 1, cats[0].PostCount)
	})

	t.Run("tags", func(t *testing.T) {
		tags, err := svc.Tags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 2)
		assert.Equal(t, models.TagCount{Name: "health", Count: 2}, tags[0])
		assert.Equal(t, models.TagCount{Name: "sleep", Count: 1}, tags[1])
	})
}

func TestBlogService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBlog(t)

	p, err := svc.CreatePost(ctx, &dto.CreatePostRequest{Title: "Draft", Content: "first body", Excerpt: "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Excerpt)

	body := "## New body\n\nwith more words"
	published := models.PostPublished
	updated, err := svc.UpdatePost(ctx, p.ID, &dto.UpdatePostRequest{Content: &body, Status: &published})
	require.NoError(t, err)
	assert.Equal(t, "draft", updated.Slug)
	assert.Contains(t, updated.ContentHTML, "<h2")
	assert.Equal(t, "New body with more words", updated.Excerpt)
	require.NotNil(t, updated.PublishedAt)
	firstPublished := *updated.PublishedAt

	title := "Renamed"
	updated, err = svc.UpdatePost(ctx, p.ID, &dto.UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, firstPublished.Equal(*updated.PublishedAt))

	_, err = svc.UpdatePost(ctx, "bad", &dto.UpdatePostRequest{Title: &title})
	assert.Equal(t, "Invalid post id", apperr.Translate(err).Errors["id"])

	require.NoError(t, svc.DeletePost(ctx, p.ID))
	err = svc.DeletePost(ctx, p.ID)
	assert.Equal(t, 404, apperr.Translate(err).Status)
}

func TestBlogService_DuplicateCategory(t *testing.T) {
	ctx := context.Background()
	svc, _ := newBlog(t)

	_, err := svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Resources"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Resources"})
	p := apperr.Translate(err)
	assert.Equal(t, 409, p.Status)
	assert.Equal(t, "name", p.Field)
}
