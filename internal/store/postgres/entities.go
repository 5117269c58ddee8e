package postgres

import (
	"context"
	"time"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

const seniorCols = `id, first_name, last_name, email, phone, age, address, emergency_contact,
	emergency_phone, health_conditions, preferred_times, additional_info, consent, created_at, updated_at`

func scanSenior(r rowScanner) (*models.Senior, error) {
	var s models.Senior
	err := r.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Age, &s.Address, &s.EmergencyContact,
		&s.EmergencyPhone, &s.HealthConditions, &s.PreferredTimes, &s.AdditionalInfo, &s.Consent, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return &s, nil
}

type seniors struct{ s *Store }

func (r seniors) Create(ctx context.Context, in *models.Senior) (*models.Senior, error) {
	doc := *in
	if err := store.BeforeSenior(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := r.s.q.Exec(ctx, `INSERT INTO seniors (`+seniorCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		doc.ID, doc.FirstName, doc.LastName, doc.Email, doc.Phone, doc.Age, doc.Address, doc.EmergencyContact,
		doc.EmergencyPhone, doc.HealthConditions, doc.PreferredTimes, doc.AdditionalInfo, doc.Consent, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r seniors) Get(ctx context.Context, id string) (*models.Senior, error) {
	return scanSenior(r.s.q.QueryRow(ctx, `SELECT `+seniorCols+` FROM seniors WHERE id = $1`, id))
}

func (r seniors) GetByEmail(ctx context.Context, email string) (*models.Senior, error) {
	return scanSenior(r.s.q.QueryRow(ctx, `SELECT `+seniorCols+` FROM seniors WHERE email = $1`, email))
}

func (r seniors) GetMany(ctx context.Context, ids []string) (map[string]*models.Senior, error) {
	out := make(map[string]*models.Senior, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.s.q.Query(ctx, `SELECT `+seniorCols+` FROM seniors WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	list, err := collect(rows, scanSenior)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		out[s.ID] = s
	}
	return out, nil
}

const requestCols = `id, senior_id, support_type, description, urgency, preferred_date, status, notes,
	completed_at, created_at, updated_at`

func scanRequest(r rowScanner) (*models.SupportRequest, error) {
	var x models.SupportRequest
	err := r.Scan(&x.ID, &x.SeniorID, &x.SupportType, &x.Description, &x.Urgency, &x.PreferredDate, &x.Status, &x.Notes,
		&x.CompletedAt, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return &x, nil
}

type requests struct{ s *Store }

func (r requests) Create(ctx context.Context, in *models.SupportRequest) (*models.SupportRequest, error) {
	doc := *in
	if err := store.BeforeSupportRequest(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := r.s.q.Exec(ctx, `INSERT INTO support_requests (`+requestCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		doc.ID, doc.SeniorID, string(doc.SupportType), doc.Description, string(doc.Urgency), doc.PreferredDate,
		string(doc.Status), doc.Notes, doc.CompletedAt, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r requests) Get(ctx context.Context, id string) (*models.SupportRequest, error) {
	return scanRequest(r.s.q.QueryRow(ctx, `SELECT `+requestCols+` FROM support_requests WHERE id = $1`, id))
}

func (r requests) List(ctx context.Context, f models.SupportRequestFilter) ([]*models.SupportRequest, int64, error) {
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	rows, err := r.s.q.Query(ctx, `SELECT `+requestCols+` FROM support_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(f.Status), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanRequest)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.s.q.QueryRow(ctx, `SELECT count(*) FROM support_requests WHERE ($1 = '' OR status = $1)`, string(f.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r requests) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, completedAt *time.Time) (*models.SupportRequest, error) {
	cur, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cur.Status = status
	if err := store.BeforeSupportRequest(cur, r.s.now()); err != nil {
		return nil, err
	}
	return scanRequest(r.s.q.QueryRow(ctx, `UPDATE support_requests
		SET status = $2, completed_at = COALESCE($3, completed_at), updated_at = $4
		WHERE id = $1
		RETURNING `+requestCols, id, string(status), completedAt, cur.UpdatedAt))
}

const volunteerCols = `id, first_name, last_name, email, phone, age, address, occupation, skills, availability,
	experience, motivation, reference_info, emergency_contact, emergency_phone, background_check, status, consent,
	created_at, updated_at`

func scanVolunteer(r rowScanner) (*models.Volunteer, error) {
	var v models.Volunteer
	var skills []string
	err := r.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.Phone, &v.Age, &v.Address, &v.Occupation, &skills, &v.Availability,
		&v.Experience, &v.Motivation, &v.References, &v.EmergencyContact, &v.EmergencyPhone, &v.BackgroundCheck, &v.Status, &v.Consent,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	v.Skills = make([]models.SupportType, 0, len(skills))
	for _, s := range skills {
		v.Skills = append(v.Skills, models.SupportType(s))
	}
	return &v, nil
}

type volunteers struct{ s *Store }

func (r volunteers) Create(ctx context.Context, in *models.Volunteer) (*models.Volunteer, error) {
	doc := *in
	if err := store.BeforeVolunteer(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	skills := make([]string, 0, len(doc.Skills))
	for _, s := range doc.Skills {
		skills = append(skills, string(s))
	}
	_, err := r.s.q.Exec(ctx, `INSERT INTO volunteers (`+volunteerCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		doc.ID, doc.FirstName, doc.LastName, doc.Email, doc.Phone, doc.Age, doc.Address, doc.Occupation, skills, orEmpty(doc.Availability),
		doc.Experience, doc.Motivation, doc.References, doc.EmergencyContact, doc.EmergencyPhone, doc.BackgroundCheck, string(doc.Status), doc.Consent,
		doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r volunteers) Get(ctx context.Context, id string) (*models.Volunteer, error) {
	return scanVolunteer(r.s.q.QueryRow(ctx, `SELECT `+volunteerCols+` FROM volunteers WHERE id = $1`, id))
}

func (r volunteers) List(ctx context.Context, f models.VolunteerFilter) ([]*models.Volunteer, int64, error) {
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	rows, err := r.s.q.Query(ctx, `SELECT `+volunteerCols+` FROM volunteers
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, string(f.Status), limit, offset)
	if err != nil {
		return nil, 0, err
	}
	list, err := collect(rows, scanVolunteer)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.s.q.QueryRow(ctx, `SELECT count(*) FROM volunteers WHERE ($1 = '' OR status = $1)`, string(f.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

const partnerCols = `id, organization_name, contact_person, email, phone, website, organization_type, address,
	partnership_type, services, target_audience, experience, goals, resources, timeline, additional_info, consent,
	is_active, created_at, updated_at`

type partners struct{ s *Store }

func (r partners) Create(ctx context.Context, in *models.Partner) (*models.Partner, error) {
	doc := *in
	if err := store.BeforePartner(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := r.s.q.Exec(ctx, `INSERT INTO partners (`+partnerCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		doc.ID, doc.OrganizationName, doc.ContactPerson, doc.Email, doc.Phone, doc.Website, string(doc.OrganizationType), doc.Address,
		doc.PartnershipType, doc.Services, doc.TargetAudience, doc.Experience, doc.Goals, doc.Resources, doc.Timeline, doc.AdditionalInfo, doc.Consent,
		doc.IsActive, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r partners) Get(ctx context.Context, id string) (*models.Partner, error) {
	var p models.Partner
	err := r.s.q.QueryRow(ctx, `SELECT `+partnerCols+` FROM partners WHERE id = $1`, id).Scan(
		&p.ID, &p.OrganizationName, &p.ContactPerson, &p.Email, &p.Phone, &p.Website, &p.OrganizationType, &p.Address,
		&p.PartnershipType, &p.Services, &p.TargetAudience, &p.Experience, &p.Goals, &p.Resources, &p.Timeline, &p.AdditionalInfo, &p.Consent,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return &p, nil
}

const assignmentCols = `id, volunteer_id, senior_id, request_id, assigned_at, completed_at, status, notes, created_at, updated_at`

func scanAssignment(r rowScanner) (*models.VolunteerAssignment, error) {
	var a models.VolunteerAssignment
	err := r.Scan(&a.ID, &a.VolunteerID, &a.SeniorID, &a.RequestID, &a.AssignedAt, &a.CompletedAt, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return &a, nil
}

type assignments struct{ s *Store }

func (r assignments) Create(ctx context.Context, in *models.VolunteerAssignment) (*models.VolunteerAssignment, error) {
	doc := *in
	if err := store.BeforeAssignment(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := r.s.q.Exec(ctx, `INSERT INTO volunteer_assignments (`+assignmentCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doc.ID, doc.VolunteerID, doc.SeniorID, doc.RequestID, doc.AssignedAt, doc.CompletedAt, doc.Status, doc.Notes, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r assignments) ListByRequest(ctx context.Context, requestID string) ([]*models.VolunteerAssignment, error) {
	rows, err := r.s.q.Query(ctx, `SELECT `+assignmentCols+` FROM volunteer_assignments
		WHERE request_id = $1 ORDER BY assigned_at DESC`, requestID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAssignment)
}

const taskCols = `id, request_id, volunteer_id, title, description, scheduled_date, completed_date, duration, status,
	feedback, rating, created_at, updated_at`

func scanTask(r rowScanner) (*models.Task, error) {
	var t models.Task
	err := r.Scan(&t.ID, &t.RequestID, &t.VolunteerID, &t.Title, &t.Description, &t.ScheduledDate, &t.CompletedDate, &t.Duration, &t.Status,
		&t.Feedback, &t.Rating, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, translate(err, nil)
	}
	return &t, nil
}

type tasks struct{ s *Store }

func (r tasks) Create(ctx context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	_, err := r.s.q.Exec(ctx, `INSERT INTO tasks (`+taskCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		doc.ID, doc.RequestID, doc.VolunteerID, doc.Title, doc.Description, doc.ScheduledDate, doc.CompletedDate, doc.Duration, doc.Status,
		doc.Feedback, doc.Rating, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return nil, translate(err, &doc)
	}
	return &doc, nil
}

func (r tasks) Get(ctx context.Context, id string) (*models.Task, error) {
	return scanTask(r.s.q.QueryRow(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = $1`, id))
}

func (r tasks) ListByRequest(ctx context.Context, requestID string) ([]*models.Task, error) {
	rows, err := r.s.q.Query(ctx, `SELECT `+taskCols+` FROM tasks WHERE request_id = $1 ORDER BY created_at`, requestID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTask)
}

func (r tasks) Update(ctx context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	return scanTask(r.s.q.QueryRow(ctx, `UPDATE tasks SET
			volunteer_id = $2, title = $3, description = $4, scheduled_date = $5, completed_date = $6,
			duration = $7, status = $8, feedback = $9, rating = $10, updated_at = $11
		WHERE id = $1
		RETURNING `+taskCols,
		doc.ID, doc.VolunteerID, doc.Title, doc.Description, doc.ScheduledDate, doc.CompletedDate,
		doc.Duration, doc.Status, doc.Feedback, doc.Rating, doc.UpdatedAt))
}
