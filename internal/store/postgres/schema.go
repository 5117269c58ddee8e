package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ENW_BACK-END/internal/store"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS seniors (
		id                TEXT PRIMARY KEY,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		email             TEXT NOT NULL CONSTRAINT seniors_email_key UNIQUE,
		phone             TEXT NOT NULL,
		age               INT NOT NULL,
		address           TEXT NOT NULL,
		emergency_contact TEXT NOT NULL,
		emergency_phone   TEXT NOT NULL,
		health_conditions TEXT NOT NULL DEFAULT '',
		preferred_times   TEXT NOT NULL DEFAULT '',
		additional_info   TEXT NOT NULL DEFAULT '',
		consent           BOOLEAN NOT NULL DEFAULT FALSE,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS support_requests (
		id             TEXT PRIMARY KEY,
		senior_id      TEXT NOT NULL REFERENCES seniors(id),
		support_type   TEXT NOT NULL,
		description    TEXT NOT NULL,
		urgency        TEXT NOT NULL DEFAULT 'medium',
		preferred_date TIMESTAMPTZ,
		status         TEXT NOT NULL DEFAULT 'PENDING',
		notes          TEXT NOT NULL DEFAULT '',
		completed_at   TIMESTAMPTZ,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS volunteers (
		id                TEXT PRIMARY KEY,
		first_name        TEXT NOT NULL,
		last_name         TEXT NOT NULL,
		email             TEXT NOT NULL CONSTRAINT volunteers_email_key UNIQUE,
		phone             TEXT NOT NULL,
		age               INT NOT NULL,
		address           TEXT NOT NULL,
		occupation        TEXT NOT NULL DEFAULT '',
		skills            TEXT[] NOT NULL DEFAULT '{}',
		availability      TEXT[] NOT NULL DEFAULT '{}',
		experience        TEXT NOT NULL DEFAULT '',
		motivation        TEXT NOT NULL,
		reference_info    TEXT NOT NULL DEFAULT '',
		emergency_contact TEXT NOT NULL,
		emergency_phone   TEXT NOT NULL,
		background_check  BOOLEAN NOT NULL DEFAULT FALSE,
		status            TEXT NOT NULL DEFAULT 'PENDING_VERIFICATION',
		consent           BOOLEAN NOT NULL DEFAULT FALSE,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS partners (
		id                TEXT PRIMARY KEY,
		organization_name TEXT NOT NULL,
		contact_person    TEXT NOT NULL,
		email             TEXT NOT NULL CONSTRAINT partners_email_key UNIQUE,
		phone             TEXT NOT NULL,
		website           TEXT NOT NULL DEFAULT '',
		organization_type TEXT NOT NULL,
		address           TEXT NOT NULL,
		partnership_type  TEXT NOT NULL,
		services          TEXT NOT NULL,
		target_audience   TEXT NOT NULL DEFAULT '',
		experience        TEXT NOT NULL DEFAULT '',
		goals             TEXT NOT NULL,
		resources         TEXT NOT NULL DEFAULT '',
		timeline          TEXT NOT NULL DEFAULT '',
		additional_info   TEXT NOT NULL DEFAULT '',
		consent           BOOLEAN NOT NULL,
		is_active         BOOLEAN NOT NULL DEFAULT TRUE,
		created_at        TIMESTAMPTZ NOT NULL,
		updated_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS volunteer_assignments (
		id           TEXT PRIMARY KEY,
		volunteer_id TEXT NOT NULL,
		senior_id    TEXT NOT NULL,
		request_id   TEXT NOT NULL DEFAULT '',
		assigned_at  TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ,
		status       TEXT NOT NULL DEFAULT 'active',
		notes        TEXT NOT NULL DEFAULT '',
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		CONSTRAINT volunteer_assignments_triple_key UNIQUE (volunteer_id, senior_id, request_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id             TEXT PRIMARY KEY,
		request_id     TEXT NOT NULL,
		volunteer_id   TEXT NOT NULL DEFAULT '',
		title          TEXT NOT NULL,
		description    TEXT NOT NULL,
		scheduled_date TIMESTAMPTZ,
		completed_date TIMESTAMPTZ,
		duration       INT NOT NULL DEFAULT 0,
		status         TEXT NOT NULL DEFAULT 'pending',
		feedback       TEXT NOT NULL DEFAULT '',
		rating         INT NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS blog_categories (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL CONSTRAINT blog_categories_name_key UNIQUE,
		slug        TEXT NOT NULL CONSTRAINT blog_categories_slug_key UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		is_active   BOOLEAN NOT NULL DEFAULT TRUE,
		sort_order  INT NOT NULL DEFAULT 0,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS blog_posts (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		slug             TEXT NOT NULL CONSTRAINT blog_posts_slug_key UNIQUE,
		excerpt          TEXT NOT NULL,
		content          TEXT NOT NULL,
		content_html     TEXT NOT NULL DEFAULT '',
		featured_image   TEXT NOT NULL DEFAULT '',
		category_id      TEXT,
		tags             TEXT[] NOT NULL DEFAULT '{}',
		author_name      TEXT NOT NULL,
		author_avatar    TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'draft',
		published_at     TIMESTAMPTZ,
		reading_time     INT NOT NULL DEFAULT 0,
		views            BIGINT NOT NULL DEFAULT 0,
		meta_title       TEXT NOT NULL DEFAULT '',
		meta_description TEXT NOT NULL DEFAULT '',
		meta_keywords    TEXT[] NOT NULL DEFAULT '{}',
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
}

type secondaryIndex struct {
	table   string
	name    string
	columns string
}

var secondaryIndexes = []secondaryIndex{
	{"seniors", "seniors_created_at_idx", "created_at DESC"},
	{"support_requests", "support_requests_senior_id_idx", "senior_id"},
	{"support_requests", "support_requests_status_created_at_idx", "status, created_at DESC"},
	{"volunteers", "volunteers_status_idx", "status"},
	{"tasks", "tasks_request_id_idx", "request_id"},
	{"blog_posts", "blog_posts_status_published_at_idx", "status, published_at DESC"},
	{"blog_posts", "blog_posts_category_id_idx", "category_id"},
	{"blog_posts", "blog_posts_tags_idx", "tags"},
}

// tables maps collection names onto table names.
var tables = map[string]string{
	store.CollSeniors:         "seniors",
	store.CollSupportRequests: "support_requests",
	store.CollVolunteers:      "volunteers",
	store.CollPartners:        "partners",
	store.CollAssignments:     "volunteer_assignments",
	store.CollTasks:           "tasks",
	store.CollBlogPosts:       "blog_posts",
	store.CollBlogCategories:  "blog_categories",
}

type maintenance struct{ s *Store }

func (m maintenance) EnsureIndexes(ctx context.Context) ([]store.IndexInfo, error) {
	for _, stmt := range ddl {
		if _, err := m.s.q.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	for _, ix := range secondaryIndexes {
		using := ""
		if ix.columns == "tags" {
			using = " USING GIN"
		}
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s%s (%s)", ix.name, ix.table, using, ix.columns)
		if _, err := m.s.q.Exec(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create index %s: %w", ix.name, err)
		}
	}

	out := make([]store.IndexInfo, 0, len(uniqueConstraints)+len(secondaryIndexes))
	for name, uc := range uniqueConstraints {
		out = append(out, store.IndexInfo{Collection: uc.table, Name: name, Keys: strings.Join(uc.fields, ","), Unique: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for _, ix := range secondaryIndexes {
		out = append(out, store.IndexInfo{Collection: ix.table, Name: ix.name, Keys: ix.columns})
	}
	return out, nil
}

func (m maintenance) DuplicateEmails(ctx context.Context, collection string) ([]store.DuplicateGroup, error) {
	if err := store.CheckEmailCollection(collection); err != nil {
		return nil, err
	}
	rows, err := m.s.q.Query(ctx, fmt.Sprintf(`
		SELECT email, count(*), array_agg(id ORDER BY id)
		FROM %s
		GROUP BY email
		HAVING count(*) > 1
		ORDER BY count(*) DESC, email`, tables[collection]))
	if err != nil {
		return nil, err
	}
	return derefAll(collect(rows, func(r rowScanner) (*store.DuplicateGroup, error) {
		var g store.DuplicateGroup
		err := r.Scan(&g.Email, &g.Count, &g.IDs)
		return &g, err
	}))
}

func derefAll[T any](in []*T, err error) ([]T, error) {
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		out = append(out, *v)
	}
	return out, nil
}

// Truncate empties every table. Used by tests.
func (s *Store) Truncate(ctx context.Context) error {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t)
	}
	_, err := s.q.Exec(ctx, "TRUNCATE "+strings.Join(names, ", ")+" CASCADE")
	return err
}
