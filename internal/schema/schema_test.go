package schema

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
)

func validPartner() *models.Partner {
	return &models.Partner{
		OrganizationName: "Vilnius Care",
		ContactPerson:    "Ona Petraitė",
		Email:            "info@care.lt",
		Phone:            "+370 600 00000",
		Website:          "https://care.lt",
		OrganizationType: models.OrgHealthcare,
		Address:          "Gedimino pr. 1, Vilnius",
		PartnershipType:  "service",
		Services:         "Home nursing visits for seniors",
		Goals:            "Reach more seniors in the district",
		Consent:          true,
		IsActive:         true,
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
	return verr.Fields
}

func TestValidate_Partner(t *testing.T) {
	require.NoError(t, Validate(validPartner()))

	tests := []struct {
		name   string
		mutate func(p *models.Partner)
		field  string
		msg    string
	}{
		{"consent false", func(p *models.Partner) { p.Consent = false }, "consent", "You must agree to the partnership terms"},
		{"bad phone", func(p *models.Partner) { p.Phone = "12ab" }, "phone", "phone is not a valid phone number"},
		{"bad website", func(p *models.Partner) { p.Website = "ftp://x" }, "website", "website must be a valid URL"},
		{"short services", func(p *models.Partner) { p.Services = "short" }, "services", "services must be at least 20 characters"},
		{"bad org type", func(p *models.Partner) { p.OrganizationType = "BANK" }, "organizationType", ""},
		{"bad email", func(p *models.Partner) { p.Email = "nope" }, "email", "email is not a valid email address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPartner()
			tt.mutate(p)
			fields := fieldsOf(t, Validate(p))
			require.Contains(t, fields, tt.field)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, fields[tt.field])
			}
		})
	}
}

func TestValidate_WebsiteCaseInsensitive(t *testing.T) {
	p := validPartner()
	p.Website = "HTTPS://Care.LT/about"
	assert.NoError(t, Validate(p))
}

func TestValidate_VolunteerSkillPath(t *testing.T) {
	v := &models.Volunteer{
		FirstName:        "Jonas",
		LastName:         "Jonaitis",
		Email:            "jonas@example.com",
		Phone:            "+37060000000",
		Age:              30,
		Address:          "Konstitucijos pr. 7, Vilnius",
		Skills:           []models.SupportType{models.SupportShopping, "JUGGLING"},
		Motivation:       "I want to help older neighbours",
		EmergencyContact: "Ona",
		EmergencyPhone:   "+37060000001",
		Status:           models.VolunteerPendingVerification,
	}
	fields := fieldsOf(t, Validate(v))
	assert.Equal(t, "skills.1 is not a valid support type", fields["skills.1"])
}

func TestValidate_AgeRange(t *testing.T) {
	s := &models.Senior{
		FirstName:        "John",
		LastName:         "Doe",
		Email:            "john@example.com",
		Phone:            "+37060000000",
		Age:              121,
		Address:          "123 Test Street, Vilnius",
		EmergencyContact: "Jane Doe",
		EmergencyPhone:   "+37060000001",
	}
	fields := fieldsOf(t, Validate(s))
	assert.Equal(t, "age must be at most 120", fields["age"])
}

func TestValidate_SlugTag(t *testing.T) {
	type payload struct {
		Slug string `json:"slug" validate:"omitempty,slug"`
	}
	tests := map[string]bool{
		"":               true,
		"my-custom-slug": true,
		"under_score":    true,
		"post-2":         true,
		"Upper":          false,
		"has space":      false,
		"-leading":       false,
		"trailing_":      false,
	}
	for value, valid := range tests {
		err := Validate(&payload{Slug: value})
		if valid {
			assert.NoError(t, err, value)
			continue
		}
		assert.Equal(t, "slug must be a valid slug", fieldsOf(t, err)["slug"], value)
	}
}

func TestIsMobilePhone(t *testing.T) {
	assert.True(t, IsMobilePhone("+37060000000"))
	assert.True(t, IsMobilePhone("+370 600 00000"))
	assert.True(t, IsMobilePhone("(555) 123-4567"))
	assert.False(t, IsMobilePhone("abc"))
	assert.False(t, IsMobilePhone("12"))
}

func TestPrepareSenior(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s := &models.Senior{FirstName: "  John ", Email: "  John@Example.COM "}
	PrepareSenior(s, now)
	assert.Equal(t, "John", s.FirstName)
	assert.Equal(t, "john@example.com", s.Email)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
}

func TestPrepareSupportRequest_Defaults(t *testing.T) {
	r := &models.SupportRequest{}
	PrepareSupportRequest(r, time.Now())
	assert.Equal(t, models.UrgencyMedium, r.Urgency)
	assert.Equal(t, models.StatusPending, r.Status)
}

func TestPrepareVolunteer_Dedupes(t *testing.T) {
	v := &models.Volunteer{
		Skills:       []models.SupportType{models.SupportShopping, models.SupportShopping},
		Availability: []string{" Mornings", "Mornings", ""},
	}
	PrepareVolunteer(v, time.Now())
	assert.Equal(t, []models.SupportType{models.SupportShopping}, v.Skills)
	assert.Equal(t, []string{"Mornings"}, v.Availability)
	assert.Equal(t, models.VolunteerPendingVerification, v.Status)
}

func TestPreparePost(t *testing.T) {
	now := time.Now()
	p := &models.BlogPost{
		Title:   "  Hello  ",
		Content: strings.Repeat("word ", 401),
		Tags:    []string{" care ", "care", ""},
		Status:  models.PostPublished,
	}
	PreparePost(p, now)
	assert.Equal(t, "Hello", p.Title)
	assert.Equal(t, models.DefaultAuthorName, p.Author.Name)
	assert.Equal(t, []string{"care"}, p.Tags)
	assert.Equal(t, 3, p.ReadingTime)
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, now, *p.PublishedAt)

	earlier := now.Add(-time.Hour)
	p.PublishedAt = &earlier
	PreparePost(p, now)
	assert.Equal(t, earlier, *p.PublishedAt, "publishedAt is only stamped once")

	draft := &models.BlogPost{Title: "x", Content: "y"}
	PreparePost(draft, now)
	assert.Equal(t, models.PostDraft, draft.Status)
	assert.Nil(t, draft.PublishedAt)
}

func TestReadingTime(t *testing.T) {
	assert.Equal(t, 0, ReadingTime(""))
	assert.Equal(t, 1, ReadingTime("one"))
	assert.Equal(t, 1, ReadingTime(strings.Repeat("w ", 200)))
	assert.Equal(t, 2, ReadingTime(strings.Repeat("w ", 201)))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello-world", Slugify("Hello, World!"))
	assert.Equal(t, "post", Slugify("!!!"))
	assert.Equal(t, "post", Slugify(""))
}

func TestUniqueSlug(t *testing.T) {
	taken := map[string]bool{"hello": true, "hello-2": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	got, err := UniqueSlug(context.Background(), "hello", exists)
	require.NoError(t, err)
	assert.Equal(t, "hello-3", got)

	got, err = UniqueSlug(context.Background(), "fresh", exists)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)

	always := func(context.Context, string) (bool, error) { return true, nil }
	got, err = UniqueSlug(context.Background(), "busy", always)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "busy-"))
	assert.NotEqual(t, "busy-2", got)

	boom := errors.New("boom")
	_, err = UniqueSlug(context.Background(), "x", func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
