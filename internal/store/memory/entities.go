package memory

import (
	"context"
	"sort"
	"time"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

type seniors struct{ s *Store }

func (r seniors) Create(_ context.Context, in *models.Senior) (*models.Senior, error) {
	doc := *in
	if err := store.BeforeSenior(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.Senior
	err := r.s.write(func(d *data) (err error) {
		out, err = d.seniors.put(&doc)
		return err
	})
	return out, err
}

func (r seniors) Get(_ context.Context, id string) (out *models.Senior, err error) {
	err = r.s.read(func(d *data) error {
		out, err = d.seniors.get(id)
		return err
	})
	return out, err
}

func (r seniors) GetByEmail(_ context.Context, email string) (*models.Senior, error) {
	var rows []*models.Senior
	_ = r.s.read(func(d *data) error {
		rows = d.seniors.find(func(s *models.Senior) bool { return s.Email == email })
		return nil
	})
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}
	return rows[0], nil
}

func (r seniors) GetMany(_ context.Context, ids []string) (map[string]*models.Senior, error) {
	out := make(map[string]*models.Senior, len(ids))
	_ = r.s.read(func(d *data) error {
		for _, id := range ids {
			if s, err := d.seniors.get(id); err == nil {
				out[id] = s
			}
		}
		return nil
	})
	return out, nil
}

type requests struct{ s *Store }

func (r requests) Create(_ context.Context, in *models.SupportRequest) (*models.SupportRequest, error) {
	doc := *in
	if err := store.BeforeSupportRequest(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.SupportRequest
	err := r.s.write(func(d *data) (err error) {
		out, err = d.requests.put(&doc)
		return err
	})
	return out, err
}

func (r requests) Get(_ context.Context, id string) (out *models.SupportRequest, err error) {
	err = r.s.read(func(d *data) error {
		out, err = d.requests.get(id)
		return err
	})
	return out, err
}

func (r requests) List(_ context.Context, f models.SupportRequestFilter) ([]*models.SupportRequest, int64, error) {
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	var rows []*models.SupportRequest
	_ = r.s.read(func(d *data) error {
		rows = d.requests.find(func(x *models.SupportRequest) bool {
			return f.Status == "" || x.Status == f.Status
		})
		return nil
	})
	sortByCreated(rows, func(x *models.SupportRequest) time.Time { return x.CreatedAt }, func(x *models.SupportRequest) string { return x.ID })
	return window(rows, limit, offset), int64(len(rows)), nil
}

func (r requests) UpdateStatus(_ context.Context, id string, status models.RequestStatus, completedAt *time.Time) (*models.SupportRequest, error) {
	var out *models.SupportRequest
	err := r.s.write(func(d *data) error {
		cur, err := d.requests.get(id)
		if err != nil {
			return err
		}
		cur.Status = status
		if completedAt != nil {
			t := *completedAt
			cur.CompletedAt = &t
		}
		if err := store.BeforeSupportRequest(cur, r.s.now()); err != nil {
			return err
		}
		out, err = d.requests.put(cur)
		return err
	})
	return out, err
}

type volunteers struct{ s *Store }

func (r volunteers) Create(_ context.Context, in *models.Volunteer) (*models.Volunteer, error) {
	doc := *in
	if err := store.BeforeVolunteer(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.Volunteer
	err := r.s.write(func(d *data) (err error) {
		out, err = d.volunteers.put(&doc)
		return err
	})
	return out, err
}

func (r volunteers) Get(_ context.Context, id string) (out *models.Volunteer, err error) {
	err = r.s.read(func(d *data) error {
		out, err = d.volunteers.get(id)
		return err
	})
	return out, err
}

func (r volunteers) List(_ context.Context, f models.VolunteerFilter) ([]*models.Volunteer, int64, error) {
	limit, offset := store.Page(f.Limit, f.Offset, store.MaxPageSize)
	var rows []*models.Volunteer
	_ = r.s.read(func(d *data) error {
		rows = d.volunteers.find(func(v *models.Volunteer) bool {
			return f.Status == "" || v.Status == f.Status
		})
		return nil
	})
	sortByCreated(rows, func(v *models.Volunteer) time.Time { return v.CreatedAt }, func(v *models.Volunteer) string { return v.ID })
	return window(rows, limit, offset), int64(len(rows)), nil
}

type partners struct{ s *Store }

func (r partners) Create(_ context.Context, in *models.Partner) (*models.Partner, error) {
	doc := *in
	if err := store.BeforePartner(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.Partner
	err := r.s.write(func(d *data) (err error) {
		out, err = d.partners.put(&doc)
		return err
	})
	return out, err
}

func (r partners) Get(_ context.Context, id string) (out *models.Partner, err error) {
	err = r.s.read(func(d *data) error {
		out, err = d.partners.get(id)
		return err
	})
	return out, err
}

type assignments struct{ s *Store }

func (r assignments) Create(_ context.Context, in *models.VolunteerAssignment) (*models.VolunteerAssignment, error) {
	doc := *in
	if err := store.BeforeAssignment(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.VolunteerAssignment
	err := r.s.write(func(d *data) (err error) {
		out, err = d.assignments.put(&doc)
		return err
	})
	return out, err
}

func (r assignments) ListByRequest(_ context.Context, requestID string) ([]*models.VolunteerAssignment, error) {
	var rows []*models.VolunteerAssignment
	_ = r.s.read(func(d *data) error {
		rows = d.assignments.find(func(a *models.VolunteerAssignment) bool { return a.RequestID == requestID })
		return nil
	})
	sortByCreated(rows, func(a *models.VolunteerAssignment) time.Time { return a.AssignedAt }, func(a *models.VolunteerAssignment) string { return a.ID })
	return rows, nil
}

type tasks struct{ s *Store }

func (r tasks) Create(_ context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	var out *models.Task
	err := r.s.write(func(d *data) (err error) {
		out, err = d.tasks.put(&doc)
		return err
	})
	return out, err
}

func (r tasks) Get(_ context.Context, id string) (out *models.Task, err error) {
	err = r.s.read(func(d *data) error {
		out, err = d.tasks.get(id)
		return err
	})
	return out, err
}

func (r tasks) ListByRequest(_ context.Context, requestID string) ([]*models.Task, error) {
	var rows []*models.Task
	_ = r.s.read(func(d *data) error {
		rows = d.tasks.find(func(t *models.Task) bool { return t.RequestID == requestID })
		return nil
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows, nil
}

func (r tasks) Update(_ context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	var out *models.Task
	err := r.s.write(func(d *data) error {
		if _, err := d.tasks.get(doc.ID); err != nil {
			return err
		}
		var err error
		out, err = d.tasks.put(&doc)
		return err
	})
	return out, err
}
