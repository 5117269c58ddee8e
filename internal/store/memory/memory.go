// Package memory is an in-process store.Store used for development and tests.
// It emulates unique indexes and runs transactions against a snapshot that is
// swapped in on commit.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

type index[T any] struct {
	name   string
	fields []string
	unique bool
	// key returns the index key of doc and the value reported on conflict.
	// ok is false when doc is not covered by the index.
	key func(doc *T) (k string, v any, ok bool)
}

type table[T any] struct {
	name    string
	rows    map[string]*T
	indexes []index[T]
	id      func(*T) string
}

func newTable[T any](name string, id func(*T) string, indexes ...index[T]) *table[T] {
	return &table[T]{name: name, rows: map[string]*T{}, indexes: indexes, id: id}
}

func (t *table[T]) clone() *table[T] {
	c := *t
	c.rows = maps.Clone(t.rows)
	return &c
}

func (t *table[T]) checkUnique(doc *T) error {
	docID := t.id(doc)
	for _, ix := range t.indexes {
		if !ix.unique {
			continue
		}
		k, v, ok := ix.key(doc)
		if !ok {
			continue
		}
		for id, row := range t.rows {
			if id == docID {
				continue
			}
			if rk, _, rok := ix.key(row); rok && rk == k {
				return &apperr.DuplicateKeyError{Field: ix.fields[0], Value: v}
			}
		}
	}
	return nil
}

func (t *table[T]) put(doc *T) (*T, error) {
	if err := t.checkUnique(doc); err != nil {
		return nil, err
	}
	stored := *doc
	t.rows[t.id(doc)] = &stored
	out := stored
	return &out, nil
}

func (t *table[T]) get(id string) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := *row
	return &out, nil
}

func (t *table[T]) find(match func(*T) bool) []*T {
	var out []*T
	for _, row := range t.rows {
		if match(row) {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out
}

func (t *table[T]) indexInfo() []store.IndexInfo {
	out := make([]store.IndexInfo, 0, len(t.indexes))
	for _, ix := range t.indexes {
		out = append(out, store.IndexInfo{Collection: t.name, Name: ix.name, Keys: strings.Join(ix.fields, ","), Unique: ix.unique})
	}
	return out
}

type data struct {
	seniors     *table[models.Senior]
	requests    *table[models.SupportRequest]
	volunteers  *table[models.Volunteer]
	partners    *table[models.Partner]
	assignments *table[models.VolunteerAssignment]
	tasks       *table[models.Task]
	posts       *table[models.BlogPost]
	categories  *table[models.BlogCategory]
}

func emailKey[T any](get func(*T) string) func(*T) (string, any, bool) {
	return func(doc *T) (string, any, bool) {
		e := get(doc)
		return e, e, e != ""
	}
}

func newData() *data {
	return &data{
		seniors: newTable(store.CollSeniors, func(s *models.Senior) string { return s.ID },
			index[models.Senior]{name: "email_1", fields: []string{"email"}, unique: true, key: emailKey(func(s *models.Senior) string { return s.Email })},
		),
		requests: newTable(store.CollSupportRequests, func(r *models.SupportRequest) string { return r.ID }),
		volunteers: newTable(store.CollVolunteers, func(v *models.Volunteer) string { return v.ID },
			index[models.Volunteer]{name: "email_1", fields: []string{"email"}, unique: true, key: emailKey(func(v *models.Volunteer) string { return v.Email })},
		),
		partners: newTable(store.CollPartners, func(p *models.Partner) string { return p.ID },
			index[models.Partner]{name: "email_1", fields: []string{"email"}, unique: true, key: emailKey(func(p *models.Partner) string { return p.Email })},
		),
		assignments: newTable(store.CollAssignments, func(a *models.VolunteerAssignment) string { return a.ID },
			index[models.VolunteerAssignment]{
				name:   "volunteerId_1_seniorId_1_requestId_1",
				fields: []string{"volunteerId", "seniorId", "requestId"},
				unique: true,
				key: func(a *models.VolunteerAssignment) (string, any, bool) {
					return a.VolunteerID + "\x00" + a.SeniorID + "\x00" + a.RequestID, a.VolunteerID, true
				},
			},
		),
		tasks: newTable(store.CollTasks, func(t *models.Task) string { return t.ID }),
		posts: newTable(store.CollBlogPosts, func(p *models.BlogPost) string { return p.ID },
			index[models.BlogPost]{name: "slug_1", fields: []string{"slug"}, unique: true, key: emailKey(func(p *models.BlogPost) string { return p.Slug })},
		),
		categories: newTable(store.CollBlogCategories, func(c *models.BlogCategory) string { return c.ID },
			index[models.BlogCategory]{name: "name_1", fields: []string{"name"}, unique: true, key: emailKey(func(c *models.BlogCategory) string { return c.Name })},
			index[models.BlogCategory]{name: "slug_1", fields: []string{"slug"}, unique: true, key: emailKey(func(c *models.BlogCategory) string { return c.Slug })},
		),
	}
}

func (d *data) clone() *data {
	return &data{
		seniors:     d.seniors.clone(),
		requests:    d.requests.clone(),
		volunteers:  d.volunteers.clone(),
		partners:    d.partners.clone(),
		assignments: d.assignments.clone(),
		tasks:       d.tasks.clone(),
		posts:       d.posts.clone(),
		categories:  d.categories.clone(),
	}
}

// Store is the in-memory store.Store.
type Store struct {
	mu   *sync.RWMutex
	d    *data
	now  func() time.Time
	inTx bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{mu: &sync.RWMutex{}, d: newData(), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) Seniors() store.Seniors                 { return seniors{s} }
func (s *Store) SupportRequests() store.SupportRequests { return requests{s} }
func (s *Store) Volunteers() store.Volunteers           { return volunteers{s} }
func (s *Store) Partners() store.Partners               { return partners{s} }
func (s *Store) Assignments() store.Assignments         { return assignments{s} }
func (s *Store) Tasks() store.Tasks                     { return tasks{s} }
func (s *Store) Blog() store.Blog                       { return blog{s} }
func (s *Store) Maintenance() store.Maintenance         { return maintenance{s} }

// WithTransaction holds the write lock for the duration of fn. Writes go to a
// private snapshot that replaces the live data only when fn succeeds.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if s.inTx {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: &sync.RWMutex{}, d: s.d.clone(), now: s.now, inTx: true}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.d = tx.d
	return nil
}

func (s *Store) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Store) Ping(ctx context.Context) error  { return ctx.Err() }
func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) read(fn func(d *data) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.d)
}

func (s *Store) write(fn func(d *data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}

func newID() string { return uuid.NewString() }

func newestFirst(a, b time.Time, ida, idb string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return ida > idb
}

func window[T any](rows []*T, limit, offset int) []*T {
	if offset >= len(rows) {
		return []*T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func sortByCreated[T any](rows []*T, created func(*T) time.Time, id func(*T) string) {
	sort.Slice(rows, func(i, j int) bool {
		return newestFirst(created(rows[i]), created(rows[j]), id(rows[i]), id(rows[j]))
	})
}
