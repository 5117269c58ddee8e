package models

import "time"

const DefaultAuthorName = "ENW Team"

// Author is the byline of a blog post.
type Author struct {
	Name   string `json:"name" bson:"name"`
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// BlogCategory groups blog posts.
type BlogCategory struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Slug        string    `json:"slug" bson:"slug" validate:"required"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CategoryRef is the projection of a category embedded in post responses.
type CategoryRef struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Slug string `json:"slug" bson:"slug"`
}

// CategoryWithCount is a category plus the live number of published posts in it.
type CategoryWithCount struct {
	BlogCategory
	PostCount int64 `json:"postCount"`
}

// BlogPost is a piece of blog content addressed by slug.
type BlogPost struct {
	ID              string     `json:"id" bson:"_id,omitempty"`
	Title           string     `json:"title" bson:"title" validate:"required,max=200"`
	Slug            string     `json:"slug" bson:"slug" validate:"required"`
	Excerpt         string     `json:"excerpt" bson:"excerpt" validate:"required,max=500"`
	Content         string     `json:"content,omitempty" bson:"content" validate:"required"`
	ContentHTML     string     `json:"contentHtml,omitempty" bson:"contentHtml,omitempty"`
	FeaturedImage   string     `json:"featuredImage,omitempty" bson:"featuredImage,omitempty"`
	CategoryID      string     `json:"category,omitempty" bson:"category,omitempty"`
	Tags            []string   `json:"tags" bson:"tags"`
	Author          Author     `json:"author" bson:"author"`
	Status          PostStatus `json:"status" bson:"status" validate:"required,oneof=draft published archived"`
	PublishedAt     *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	ReadingTime     int        `json:"readingTime" bson:"readingTime"`
	Views           int64      `json:"views" bson:"views"`
	MetaTitle       string     `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription string     `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	MetaKeywords    []string   `json:"metaKeywords,omitempty" bson:"metaKeywords,omitempty"`
	CreatedAt       time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// BlogPostView is a post with its category reference expanded.
type BlogPostView struct {
	BlogPost
	Category *CategoryRef `json:"category"`
}

// RelatedPost is the reduced projection returned for related posts.
type RelatedPost struct {
	ID          string     `json:"id" bson:"_id"`
	Title       string     `json:"title" bson:"title"`
	Slug        string     `json:"slug" bson:"slug"`
	Excerpt     string     `json:"excerpt" bson:"excerpt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	ReadingTime int        `json:"readingTime" bson:"readingTime"`
}

// TagCount is a tag and the number of published posts using it.
type TagCount struct {
	Name  string `json:"name" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// PostFilter selects blog posts for listing. An empty Status means any status.
type PostFilter struct {
	Status     PostStatus
	CategoryID string
	Tag        string
	Search     string
	SortField  string
	SortDesc   bool
	Limit      int
	Offset     int
}

// RelatedFilter selects posts related to a given post.
type RelatedFilter struct {
	ExcludeID  string
	CategoryID string
	Tags       []string
	Limit      int
}
