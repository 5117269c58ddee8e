// Package store defines the persistence boundary. Adapters live under
// internal/store/<driver>/ and report uniqueness and schema violations as
// apperr types so callers never see driver errors.
package store

import (
	"context"
	"time"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
)

// ErrNotFound is returned by every lookup that matches nothing.
var ErrNotFound = apperr.ErrNotFound

// Collection names, shared by every adapter.
const (
	CollSeniors         = "seniors"
	CollSupportRequests = "supportrequests"
	CollVolunteers      = "volunteers"
	CollPartners        = "partners"
	CollAssignments     = "volunteerassignments"
	CollTasks           = "tasks"
	CollBlogPosts       = "blogposts"
	CollBlogCategories  = "blogcategories"
)

// EmailCollections lists the collections carrying a unique email.
var EmailCollections = []string{CollSeniors, CollVolunteers, CollPartners}

// Store exposes persistence operations required by services.
type Store interface {
	Seniors() Seniors
	SupportRequests() SupportRequests
	Volunteers() Volunteers
	Partners() Partners
	Assignments() Assignments
	Tasks() Tasks
	Blog() Blog
	Maintenance() Maintenance

	// WithTransaction runs fn atomically. fn must only use tx and ctx; any
	// error returned by fn rolls back every write made through tx.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	// ValidID reports whether id is syntactically valid for this adapter.
	ValidID(id string) bool
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type Seniors interface {
	Create(ctx context.Context, s *models.Senior) (*models.Senior, error)
	Get(ctx context.Context, id string) (*models.Senior, error)
	GetByEmail(ctx context.Context, email string) (*models.Senior, error)
	GetMany(ctx context.Context, ids []string) (map[string]*models.Senior, error)
}

type SupportRequests interface {
	Create(ctx context.Context, r *models.SupportRequest) (*models.SupportRequest, error)
	Get(ctx context.Context, id string) (*models.SupportRequest, error)
	// List returns one page, newest first, plus the total matching count.
	List(ctx context.Context, f models.SupportRequestFilter) ([]*models.SupportRequest, int64, error)
	// UpdateStatus sets status and, when completedAt is non-nil, completedAt.
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus, completedAt *time.Time) (*models.SupportRequest, error)
}

type Volunteers interface {
	Create(ctx context.Context, v *models.Volunteer) (*models.Volunteer, error)
	Get(ctx context.Context, id string) (*models.Volunteer, error)
	List(ctx context.Context, f models.VolunteerFilter) ([]*models.Volunteer, int64, error)
}

type Partners interface {
	Create(ctx context.Context, p *models.Partner) (*models.Partner, error)
	Get(ctx context.Context, id string) (*models.Partner, error)
}

type Assignments interface {
	Create(ctx context.Context, a *models.VolunteerAssignment) (*models.VolunteerAssignment, error)
	ListByRequest(ctx context.Context, requestID string) ([]*models.VolunteerAssignment, error)
}

type Tasks interface {
	Create(ctx context.Context, t *models.Task) (*models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	ListByRequest(ctx context.Context, requestID string) ([]*models.Task, error)
	Update(ctx context.Context, t *models.Task) (*models.Task, error)
}

type Blog interface {
	CreatePost(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	UpdatePost(ctx context.Context, p *models.BlogPost) (*models.BlogPost, error)
	DeletePost(ctx context.Context, id string) error
	GetPost(ctx context.Context, id string) (*models.BlogPost, error)
	// GetPostBySlug matches any status when status is empty.
	GetPostBySlug(ctx context.Context, slug string, status models.PostStatus) (*models.BlogPost, error)
	PostSlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	// ListPosts omits content and contentHtml from the returned posts.
	ListPosts(ctx context.Context, f models.PostFilter) ([]*models.BlogPost, int64, error)
	// RelatedPosts returns published posts sharing the category or a tag.
	RelatedPosts(ctx context.Context, f models.RelatedFilter) ([]*models.RelatedPost, error)
	// IncrementViews atomically adds one to the view counter.
	IncrementViews(ctx context.Context, id string) error
	// TopTags counts tags across published posts, most used first, ties by name.
	TopTags(ctx context.Context, limit int) ([]models.TagCount, error)

	CreateCategory(ctx context.Context, c *models.BlogCategory) (*models.BlogCategory, error)
	GetCategory(ctx context.Context, id string) (*models.BlogCategory, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.BlogCategory, error)
	CategorySlugExists(ctx context.Context, slug string) (bool, error)
	GetCategories(ctx context.Context, ids []string) (map[string]*models.BlogCategory, error)
	// ListActiveCategories is ordered by order then name.
	ListActiveCategories(ctx context.Context) ([]*models.BlogCategory, error)
	CountPublishedPosts(ctx context.Context, categoryID string) (int64, error)
}

// DuplicateGroup is one email shared by more than one document.
type DuplicateGroup struct {
	Email string   `json:"email" bson:"_id"`
	Count int64    `json:"count" bson:"count"`
	IDs   []string `json:"ids" bson:"ids"`
}

// IndexInfo describes a unique or secondary index managed by an adapter.
type IndexInfo struct {
	Collection string `json:"collection"`
	Name       string `json:"name"`
	Keys       string `json:"keys"`
	Unique     bool   `json:"unique"`
}

type Maintenance interface {
	// EnsureIndexes creates missing indexes and returns every managed index.
	EnsureIndexes(ctx context.Context) ([]IndexInfo, error)
	// DuplicateEmails groups documents of collection by email with count > 1.
	DuplicateEmails(ctx context.Context, collection string) ([]DuplicateGroup, error)
}

// MaxPageSize bounds every list operation at the storage layer.
const MaxPageSize = 1000
