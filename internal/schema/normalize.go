package schema

import (
	"strings"
	"time"

	"ENW_BACK-END/internal/models"
)

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// PrepareSenior trims fields, lowercases the email and stamps timestamps.
func PrepareSenior(s *models.Senior, now time.Time) {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = NormalizeEmail(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Address = strings.TrimSpace(s.Address)
	s.EmergencyContact = strings.TrimSpace(s.EmergencyContact)
	s.EmergencyPhone = strings.TrimSpace(s.EmergencyPhone)
	stamp(&s.CreatedAt, &s.UpdatedAt, now)
}

// PrepareSupportRequest applies the urgency and status defaults.
func PrepareSupportRequest(r *models.SupportRequest, now time.Time) {
	r.Description = strings.TrimSpace(r.Description)
	if r.Urgency == "" {
		r.Urgency = models.UrgencyMedium
	}
	if r.Status == "" {
		r.Status = models.StatusPending
	}
	stamp(&r.CreatedAt, &r.UpdatedAt, now)
}

// PrepareVolunteer trims fields, lowercases the email, defaults the status and
// removes duplicate skills and availability slots.
func PrepareVolunteer(v *models.Volunteer, now time.Time) {
	v.FirstName = strings.TrimSpace(v.FirstName)
	v.LastName = strings.TrimSpace(v.LastName)
	v.Email = NormalizeEmail(v.Email)
	v.Phone = strings.TrimSpace(v.Phone)
	v.Address = strings.TrimSpace(v.Address)
	v.Motivation = strings.TrimSpace(v.Motivation)
	if v.Status == "" {
		v.Status = models.VolunteerPendingVerification
	}
	if v.Skills == nil {
		v.Skills = []models.SupportType{}
	}
	v.Skills = dedupe(v.Skills)
	v.Availability = dedupe(trimAll(v.Availability))
	stamp(&v.CreatedAt, &v.UpdatedAt, now)
}

// PreparePartner trims every free-text field and lowercases the email.
func PreparePartner(p *models.Partner, now time.Time) {
	for _, f := range []*string{
		&p.OrganizationName, &p.ContactPerson, &p.Phone, &p.Website, &p.Address,
		&p.PartnershipType, &p.Services, &p.TargetAudience, &p.Experience, &p.Goals,
		&p.Resources, &p.Timeline, &p.AdditionalInfo,
	} {
		*f = strings.TrimSpace(*f)
	}
	p.Email = NormalizeEmail(p.Email)
	p.OrganizationType = models.OrganizationType(strings.TrimSpace(string(p.OrganizationType)))
	stamp(&p.CreatedAt, &p.UpdatedAt, now)
}

// PrepareAssignment defaults the status and assignment time.
func PrepareAssignment(a *models.VolunteerAssignment, now time.Time) {
	if a.Status == "" {
		a.Status = "active"
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = now
	}
	stamp(&a.CreatedAt, &a.UpdatedAt, now)
}

// PrepareTask defaults the status.
func PrepareTask(t *models.Task, now time.Time) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Status == "" {
		t.Status = models.TaskPending
	}
	stamp(&t.CreatedAt, &t.UpdatedAt, now)
}

// PrepareCategory trims the name.
func PrepareCategory(c *models.BlogCategory, now time.Time) {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	stamp(&c.CreatedAt, &c.UpdatedAt, now)
}

// PreparePost applies the blog post defaults and derived fields: trimmed
// title and tags, default author, reading time, and publishedAt on the first
// transition into published.
func PreparePost(p *models.BlogPost, now time.Time) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Status == "" {
		p.Status = models.PostDraft
	}
	if strings.TrimSpace(p.Author.Name) == "" {
		p.Author.Name = models.DefaultAuthorName
	}
	p.Tags = dedupe(trimAll(p.Tags))
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Content != "" {
		p.ReadingTime = ReadingTime(p.Content)
	}
	if p.Status == models.PostPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
	stamp(&p.CreatedAt, &p.UpdatedAt, now)
}

// ReadingTime is the estimated minutes to read content at 200 words a minute.
func ReadingTime(content string) int {
	words := len(strings.Fields(content))
	return (words + 199) / 200
}

func stamp(created, updated *time.Time, now time.Time) {
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

func trimAll(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupe[T comparable](in []T) []T {
	if in == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(in))
	out := make([]T, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
