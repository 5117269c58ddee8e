// Package storetest is a compliance suite shared by every store.Store adapter.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

// Run exercises the suite. makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("SeniorUniqueEmail", func(t *testing.T) { testSeniorUniqueEmail(t, makeStore(t)) })
	t.Run("SchemaEnforced", func(t *testing.T) { testSchemaEnforced(t, makeStore(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testTransactionRollback(t, makeStore(t)) })
	t.Run("TransactionCommit", func(t *testing.T) { testTransactionCommit(t, makeStore(t)) })
	t.Run("SupportRequestList", func(t *testing.T) { testSupportRequestList(t, makeStore(t)) })
	t.Run("SupportRequestStatus", func(t *testing.T) { testSupportRequestStatus(t, makeStore(t)) })
	t.Run("Volunteers", func(t *testing.T) { testVolunteers(t, makeStore(t)) })
	t.Run("Partners", func(t *testing.T) { testPartners(t, makeStore(t)) })
	t.Run("AssignmentsAndTasks", func(t *testing.T) { testAssignmentsAndTasks(t, makeStore(t)) })
	t.Run("BlogPosts", func(t *testing.T) { testBlogPosts(t, makeStore(t)) })
	t.Run("BlogCategories", func(t *testing.T) { testBlogCategories(t, makeStore(t)) })
	t.Run("Maintenance", func(t *testing.T) { testMaintenance(t, makeStore(t)) })
}

// Senior returns a valid senior with a unique email.
func Senior() *models.Senior {
	return &models.Senior{
		FirstName:        "John",
		LastName:         "Doe",
		Email:            fmt.Sprintf("john-%s@example.com", uuid.NewString()[:8]),
		Phone:            "+37060000000",
		Age:              75,
		Address:          "123 Test Street, Vilnius",
		EmergencyContact: "Jane Doe",
		EmergencyPhone:   "+37060000001",
		Consent:          true,
	}
}

// Volunteer returns a valid volunteer with a unique email.
func Volunteer() *models.Volunteer {
	return &models.Volunteer{
		FirstName:        "Ona",
		LastName:         "Jonaitė",
		Email:            fmt.Sprintf("ona-%s@example.com", uuid.NewString()[:8]),
		Phone:            "+37060000002",
		Age:              34,
		Address:          "Konstitucijos pr. 7, Vilnius",
		Skills:           []models.SupportType{models.SupportShopping, models.SupportTechnology},
		Availability:     []string{"Weekday mornings"},
		Motivation:       "I would like to help seniors in my neighbourhood",
		EmergencyContact: "Petras",
		EmergencyPhone:   "+37060000003",
		Consent:          true,
	}
}

// Partner returns a valid partner with a unique email.
func Partner() *models.Partner {
	return &models.Partner{
		OrganizationName: "Vilnius Care",
		ContactPerson:    "Rasa Petraitienė",
		Email:            fmt.Sprintf("partner-%s@example.com", uuid.NewString()[:8]),
		Phone:            "+370 600 00004",
		Website:          "https://care.example.com",
		OrganizationType: models.OrgHealthcare,
		Address:          "Gedimino pr. 1, Vilnius",
		PartnershipType:  "service",
		Services:         "Home nursing visits for seniors",
		Goals:            "Reach more seniors in every district",
		Consent:          true,
		IsActive:         true,
	}
}

// Post returns a valid blog post with the given slug.
func Post(slug string, status models.PostStatus) *models.BlogPost {
	return &models.BlogPost{
		Title:   "Post " + slug,
		Slug:    slug,
		Excerpt: "Excerpt of " + slug,
		Content: "Body of " + slug,
		Tags:    []string{},
		Status:  status,
	}
}

func requireDuplicate(t *testing.T, err error, field string) {
	t.Helper()
	var dup *apperr.DuplicateKeyError
	require.True(t, errors.As(err, &dup), "expected duplicate key error, got %v", err)
	assert.Equal(t, field, dup.Field)
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	assert.Contains(t, verr.Fields, field)
}

func testSeniorUniqueEmail(t *testing.T, s store.Store) {
	ctx := context.Background()

	in := Senior()
	in.Email = "  Mixed.Case@Example.com "
	created, err := s.Seniors().Create(ctx, in)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.True(t, s.ValidID(created.ID))
	assert.Equal(t, "mixed.case@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Seniors().GetByEmail(ctx, "mixed.case@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	again := Senior()
	again.Email = "mixed.case@example.com"
	_, err = s.Seniors().Create(ctx, again)
	requireDuplicate(t, err, "email")
	var dup *apperr.DuplicateKeyError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "mixed.case@example.com", dup.Value)

	_, err = s.Seniors().GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	many, err := s.Seniors().GetMany(ctx, []string{created.ID})
	require.NoError(t, err)
	assert.Contains(t, many, created.ID)
}

func testSchemaEnforced(t *testing.T, s store.Store) {
	ctx := context.Background()

	bad := Senior()
	bad.Age = 12
	bad.Address = "short"
	_, err := s.Seniors().Create(ctx, bad)
	requireValidation(t, err, "age")
	requireValidation(t, err, "address")

	p := Partner()
	p.Consent = false
	_, err = s.Partners().Create(ctx, p)
	requireValidation(t, err, "consent")

	assert.False(t, s.ValidID("not-an-id"))
}

func testTransactionRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	senior := Senior()

	err := s.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		created, err := tx.Seniors().Create(ctx, senior)
		if err != nil {
			return err
		}
		// Missing description fails schema validation and aborts the pair.
		_, err = tx.SupportRequests().Create(ctx, &models.SupportRequest{
			SeniorID:    created.ID,
			SupportType: models.SupportShopping,
		})
		return err
	})
	requireValidation(t, err, "description")

	_, err = s.Seniors().GetByEmail(ctx, senior.Email)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testTransactionCommit(t *testing.T, s store.Store) {
	ctx := context.Background()
	senior := Senior()

	var seniorID, requestID string
	err := s.WithTransaction(ctx, func(ctx context.Context, tx store.Store) error {
		created, err := tx.Seniors().Create(ctx, senior)
		if err != nil {
			return err
		}
		req, err := tx.SupportRequests().Create(ctx, &models.SupportRequest{
			SeniorID:    created.ID,
			SupportType: models.SupportShopping,
			Description: "Weekly groceries",
		})
		if err != nil {
			return err
		}
		seniorID, requestID = created.ID, req.ID
		return nil
	})
	require.NoError(t, err)

	req, err := s.SupportRequests().Get(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, seniorID, req.SeniorID)
	assert.Equal(t, models.StatusPending, req.Status)
	assert.Equal(t, models.UrgencyMedium, req.Urgency)
}

func createRequests(t *testing.T, s store.Store, n int, status models.RequestStatus) []*models.SupportRequest {
	t.Helper()
	ctx := context.Background()
	senior, err := s.Seniors().Create(ctx, Senior())
	require.NoError(t, err)
	out := make([]*models.SupportRequest, 0, n)
	for i := 0; i < n; i++ {
		r, err := s.SupportRequests().Create(ctx, &models.SupportRequest{
			SeniorID:    senior.ID,
			SupportType: models.SupportCompanionship,
			Description: fmt.Sprintf("request %d", i),
			Status:      status,
		})
		require.NoError(t, err)
		out = append(out, r)
		time.Sleep(5 * time.Millisecond)
	}
	return out
}

func testSupportRequestList(t *testing.T, s store.Store) {
	ctx := context.Background()
	pending := createRequests(t, s, 3, models.StatusPending)
	createRequests(t, s, 2, models.StatusCompleted)

	all, total, err := s.SupportRequests().List(ctx, models.SupportRequestFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt), "newest first")
	}

	page, total, err := s.SupportRequests().List(ctx, models.SupportRequestFilter{Status: models.StatusPending, Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, pending[1].ID, page[0].ID)
	assert.Equal(t, pending[0].ID, page[1].ID)

	empty, total, err := s.SupportRequests().List(ctx, models.SupportRequestFilter{Status: models.StatusCancelled, Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)
}

func testSupportRequestStatus(t *testing.T, s store.Store) {
	ctx := context.Background()
	req := createRequests(t, s, 1, models.StatusPending)[0]

	updated, err := s.SupportRequests().UpdateStatus(ctx, req.ID, models.StatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Nil(t, updated.CompletedAt)

	done := time.Now().UTC().Truncate(time.Millisecond)
	updated, err = s.SupportRequests().UpdateStatus(ctx, req.ID, models.StatusCompleted, &done)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	assert.True(t, done.Equal(*updated.CompletedAt))

	updated, err = s.SupportRequests().UpdateStatus(ctx, req.ID, models.StatusAssigned, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt, "completedAt survives later transitions")

	_, err = s.SupportRequests().UpdateStatus(ctx, req.ID, "BOGUS", nil)
	requireValidation(t, err, "status")
	got, err := s.SupportRequests().Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAssigned, got.Status)

	missing := Senior()
	created, err := s.Seniors().Create(ctx, missing)
	require.NoError(t, err)
	_, err = s.SupportRequests().UpdateStatus(ctx, created.ID, models.StatusCompleted, nil)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testVolunteers(t *testing.T, s store.Store) {
	ctx := context.Background()

	v, err := s.Volunteers().Create(ctx, Volunteer())
	require.NoError(t, err)
	assert.Equal(t, models.VolunteerPendingVerification, v.Status)

	got, err := s.Volunteers().Get(ctx, v.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, v.Skills, got.Skills)

	dup := Volunteer()
	dup.Email = v.Email
	_, err = s.Volunteers().Create(ctx, dup)
	requireDuplicate(t, err, "email")

	list, total, err := s.Volunteers().List(ctx, models.VolunteerFilter{Status: models.VolunteerPendingVerification, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, list, 1)
}

func testPartners(t *testing.T, s store.Store) {
	ctx := context.Background()

	p, err := s.Partners().Create(ctx, Partner())
	require.NoError(t, err)
	assert.True(t, p.IsActive)

	got, err := s.Partners().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Email, got.Email)

	dup := Partner()
	dup.Email = p.Email
	_, err = s.Partners().Create(ctx, dup)
	requireDuplicate(t, err, "email")
}

func testAssignmentsAndTasks(t *testing.T, s store.Store) {
	ctx := context.Background()
	req := createRequests(t, s, 1, models.StatusPending)[0]
	v, err := s.Volunteers().Create(ctx, Volunteer())
	require.NoError(t, err)

	a, err := s.Assignments().Create(ctx, &models.VolunteerAssignment{VolunteerID: v.ID, SeniorID: req.SeniorID, RequestID: req.ID})
	require.NoError(t, err)
	assert.Equal(t, "active", a.Status)
	assert.False(t, a.AssignedAt.IsZero())

	_, err = s.Assignments().Create(ctx, &models.VolunteerAssignment{VolunteerID: v.ID, SeniorID: req.SeniorID, RequestID: req.ID})
	requireDuplicate(t, err, "volunteerId")

	list, err := s.Assignments().ListByRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	task, err := s.Tasks().Create(ctx, &models.Task{RequestID: req.ID, Title: "Groceries", Description: "Buy bread and milk"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskPending, task.Status)

	now := time.Now().UTC().Truncate(time.Millisecond)
	task.Status = models.TaskCompleted
	task.CompletedDate = &now
	task.Rating = 5
	updated, err := s.Tasks().Update(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, updated.Status)

	task.Rating = 9
	_, err = s.Tasks().Update(ctx, task)
	requireValidation(t, err, "rating")

	tasks, err := s.Tasks().ListByRequest(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, 5, tasks[0].Rating)
}

func testBlogPosts(t *testing.T, s store.Store) {
	ctx := context.Background()
	blog := s.Blog()

	cat, err := blog.CreateCategory(ctx, &models.BlogCategory{Name: "Stories", Slug: "stories", IsActive: true})
	require.NoError(t, err)

	p1 := Post("first", models.PostPublished)
	p1.CategoryID = cat.ID
	p1.Tags = []string{"care", "community"}
	first, err := blog.CreatePost(ctx, p1)
	require.NoError(t, err)
	require.NotNil(t, first.PublishedAt)
	time.Sleep(5 * time.Millisecond)

	p2 := Post("second", models.PostPublished)
	p2.Tags = []string{"care"}
	p2.Title = "Winter Safety"
	second, err := blog.CreatePost(ctx, p2)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	draft, err := blog.CreatePost(ctx, Post("draft", models.PostDraft))
	require.NoError(t, err)
	assert.Nil(t, draft.PublishedAt)

	_, err = blog.CreatePost(ctx, Post("first", models.PostDraft))
	requireDuplicate(t, err, "slug")

	exists, err := blog.PostSlugExists(ctx, "first", "")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = blog.PostSlugExists(ctx, "first", first.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = blog.GetPostBySlug(ctx, "draft", models.PostPublished)
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err := blog.GetPostBySlug(ctx, "draft", "")
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)

	list, total, err := blog.ListPosts(ctx, models.PostFilter{Status: models.PostPublished, SortField: "publishedAt", SortDesc: true, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Empty(t, list[0].Content)
	assert.Empty(t, list[0].ContentHTML)

	list, _, err = blog.ListPosts(ctx, models.PostFilter{Status: models.PostPublished, Search: "WINTER", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	list, _, err = blog.ListPosts(ctx, models.PostFilter{Status: models.PostPublished, Search: "commun", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1, "search matches tags")

	list, _, err = blog.ListPosts(ctx, models.PostFilter{Status: models.PostPublished, Search: "(", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list)

	list, total, err = blog.ListPosts(ctx, models.PostFilter{Status: models.PostPublished, CategoryID: cat.ID, Tag: "community", Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, list[0].ID)

	_, total, err = blog.ListPosts(ctx, models.PostFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	related, err := blog.RelatedPosts(ctx, models.RelatedFilter{ExcludeID: first.ID, CategoryID: cat.ID, Tags: first.Tags, Limit: 3})
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "second", related[0].Slug)

	none, err := blog.RelatedPosts(ctx, models.RelatedFilter{ExcludeID: first.ID, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, blog.IncrementViews(ctx, first.ID))
	require.NoError(t, blog.IncrementViews(ctx, first.ID))
	got, err = blog.GetPost(ctx, first.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.Views)

	tags, err := blog.TopTags(ctx, 20)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, models.TagCount{Name: "care", Count: 2}, tags[0])
	assert.Equal(t, models.TagCount{Name: "community", Count: 1}, tags[1])

	got.Title = "First, revised"
	updated, err := blog.UpdatePost(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "First, revised", updated.Title)
	assert.EqualValues(t, 2, updated.Views)

	require.NoError(t, blog.DeletePost(ctx, draft.ID))
	assert.ErrorIs(t, blog.DeletePost(ctx, draft.ID), store.ErrNotFound)
}

func testBlogCategories(t *testing.T, s store.Store) {
	ctx := context.Background()
	blog := s.Blog()

	b, err := blog.CreateCategory(ctx, &models.BlogCategory{Name: "Beta", Slug: "beta", IsActive: true, Order: 1})
	require.NoError(t, err)
	a, err := blog.CreateCategory(ctx, &models.BlogCategory{Name: "Alpha", Slug: "alpha", IsActive: true, Order: 1})
	require.NoError(t, err)
	z, err := blog.CreateCategory(ctx, &models.BlogCategory{Name: "Zero", Slug: "zero", IsActive: true, Order: 0})
	require.NoError(t, err)
	_, err = blog.CreateCategory(ctx, &models.BlogCategory{Name: "Hidden", Slug: "hidden", IsActive: false})
	require.NoError(t, err)

	_, err = blog.CreateCategory(ctx, &models.BlogCategory{Name: "Alpha", Slug: "alpha-2", IsActive: true})
	requireDuplicate(t, err, "name")

	active, err := blog.ListActiveCategories(ctx)
	require.NoError(t, err)
	require.Len(t, active, 3)
	assert.Equal(t, []string{z.ID, a.ID, b.ID}, []string{active[0].ID, active[1].ID, active[2].ID})

	got, err := blog.GetCategoryBySlug(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	_, err = blog.GetCategoryBySlug(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	exists, err := blog.CategorySlugExists(ctx, "beta")
	require.NoError(t, err)
	assert.True(t, exists)

	byID, err := blog.GetCategories(ctx, []string{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 2)

	p := Post("in-alpha", models.PostPublished)
	p.CategoryID = a.ID
	_, err = blog.CreatePost(ctx, p)
	require.NoError(t, err)
	d := Post("draft-in-alpha", models.PostDraft)
	d.CategoryID = a.ID
	_, err = blog.CreatePost(ctx, d)
	require.NoError(t, err)

	n, err := blog.CountPublishedPosts(ctx, a.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func testMaintenance(t *testing.T, s store.Store) {
	ctx := context.Background()

	indexes, err := s.Maintenance().EnsureIndexes(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, indexes)

	groups, err := s.Maintenance().DuplicateEmails(ctx, store.CollVolunteers)
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = s.Maintenance().DuplicateEmails(ctx, store.CollTasks)
	assert.Error(t, err)

	require.NoError(t, s.Ping(ctx))
}
