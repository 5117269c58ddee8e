package store

import (
	"fmt"
	"slices"
	"time"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/schema"
)

// The Before* hooks normalize a document and enforce its schema. Every adapter
// calls them on its write path so the storage boundary rejects invalid data
// regardless of what the caller validated.

func BeforeSenior(s *models.Senior, now time.Time) error {
	schema.PrepareSenior(s, now)
	return schema.Validate(s)
}

func BeforeSupportRequest(r *models.SupportRequest, now time.Time) error {
	schema.PrepareSupportRequest(r, now)
	return schema.Validate(r)
}

func BeforeVolunteer(v *models.Volunteer, now time.Time) error {
	schema.PrepareVolunteer(v, now)
	return schema.Validate(v)
}

func BeforePartner(p *models.Partner, now time.Time) error {
	schema.PreparePartner(p, now)
	return schema.Validate(p)
}

func BeforeAssignment(a *models.VolunteerAssignment, now time.Time) error {
	schema.PrepareAssignment(a, now)
	return schema.Validate(a)
}

func BeforeTask(t *models.Task, now time.Time) error {
	schema.PrepareTask(t, now)
	return schema.Validate(t)
}

func BeforePost(p *models.BlogPost, now time.Time) error {
	schema.PreparePost(p, now)
	return schema.Validate(p)
}

func BeforeCategory(c *models.BlogCategory, now time.Time) error {
	schema.PrepareCategory(c, now)
	return schema.Validate(c)
}

// CheckEmailCollection rejects collections without an email field.
func CheckEmailCollection(collection string) error {
	if !slices.Contains(EmailCollections, collection) {
		return fmt.Errorf("collection %q has no email index (want one of %v)", collection, EmailCollections)
	}
	return nil
}

// Page clamps limit to [1, max] and offset to >= 0.
func Page(limit, offset, max int) (int, int) {
	if limit < 1 {
		limit = 1
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
