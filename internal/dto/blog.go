package dto

import (
	"strings"

	"ENW_BACK-END/internal/models"
)

// CreatePostRequest is the payload for POST /api/blog/posts.
type CreatePostRequest struct {
	Title           string            `json:"title" validate:"required,max=200"`
	Slug            string            `json:"slug,omitempty" validate:"omitempty,slug"`
	Content         string            `json:"content" validate:"required"`
	Status          models.PostStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Excerpt         string            `json:"excerpt,omitempty"`
	FeaturedImage   string            `json:"featuredImage,omitempty"`
	Category        string            `json:"category,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Author          *models.Author    `json:"author,omitempty"`
	MetaTitle       string            `json:"metaTitle,omitempty"`
	MetaDescription string            `json:"metaDescription,omitempty"`
	MetaKeywords    []string          `json:"metaKeywords,omitempty"`
}

// Normalize trims the title and slug before validation.
func (r *CreatePostRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = strings.TrimSpace(r.Slug)
}

// UpdatePostRequest is the payload for PATCH /api/blog/posts/{id}. Nil
// fields are left untouched.
type UpdatePostRequest struct {
	Title           *string            `json:"title,omitempty" validate:"omitempty,max=200"`
	Content         *string            `json:"content,omitempty" validate:"omitempty,min=1"`
	Status          *models.PostStatus `json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
	Excerpt         *string            `json:"excerpt,omitempty"`
	FeaturedImage   *string            `json:"featuredImage,omitempty"`
	Category        *string            `json:"category,omitempty"`
	Tags            []string           `json:"tags,omitempty"`
	Author          *models.Author     `json:"author,omitempty"`
	MetaTitle       *string            `json:"metaTitle,omitempty"`
	MetaDescription *string            `json:"metaDescription,omitempty"`
	MetaKeywords    []string           `json:"metaKeywords,omitempty"`
}

// Normalize trims the title before validation.
func (r *UpdatePostRequest) Normalize() {
	r.Title = trimmed(r.Title)
}

// CreateCategoryRequest is the payload for POST /api/blog/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

// Normalize trims name and description.
func (r *CreateCategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

// PostListResponse is the paged list of posts.
type PostListResponse struct {
	Success bool                   `json:"success"`
	Data    []*models.BlogPostView `json:"data"`
	Total   int64                  `json:"total"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

// PostResponse wraps a single post.
type PostResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Data    *models.BlogPostView `json:"data"`
}

// RelatedPostsResponse wraps related posts.
type RelatedPostsResponse struct {
	Success bool                  `json:"success"`
	Data    []*models.RelatedPost `json:"data"`
}

// CategoriesResponse wraps the active categories.
type CategoriesResponse struct {
	Success bool                        `json:"success"`
	Data    []*models.CategoryWithCount `json:"data"`
	Total   int                         `json:"total"`
}

// TagsResponse wraps the top tags.
type TagsResponse struct {
	Success bool              `json:"success"`
	Data    []models.TagCount `json:"data"`
	Total   int               `json:"total"`
}
