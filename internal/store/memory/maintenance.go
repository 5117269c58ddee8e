package memory

import (
	"context"
	"sort"

	"ENW_BACK-END/internal/store"
)

type maintenance struct{ s *Store }

// EnsureIndexes reports the emulated indexes; they always exist.
func (m maintenance) EnsureIndexes(_ context.Context) ([]store.IndexInfo, error) {
	var out []store.IndexInfo
	_ = m.s.read(func(d *data) error {
		out = append(out, d.seniors.indexInfo()...)
		out = append(out, d.volunteers.indexInfo()...)
		out = append(out, d.partners.indexInfo()...)
		out = append(out, d.assignments.indexInfo()...)
		out = append(out, d.posts.indexInfo()...)
		out = append(out, d.categories.indexInfo()...)
		return nil
	})
	return out, nil
}

func (m maintenance) DuplicateEmails(_ context.Context, collection string) ([]store.DuplicateGroup, error) {
	if err := store.CheckEmailCollection(collection); err != nil {
		return nil, err
	}
	groups := map[string][]string{}
	_ = m.s.read(func(d *data) error {
		switch collection {
		case store.CollSeniors:
			for id, r := range d.seniors.rows {
				groups[r.Email] = append(groups[r.Email], id)
			}
		case store.CollVolunteers:
			for id, r := range d.volunteers.rows {
				groups[r.Email] = append(groups[r.Email], id)
			}
		case store.CollPartners:
			for id, r := range d.partners.rows {
				groups[r.Email] = append(groups[r.Email], id)
			}
		}
		return nil
	})
	out := []store.DuplicateGroup{}
	for email, ids := range groups {
		if len(ids) > 1 {
			sort.Strings(ids)
			out = append(out, store.DuplicateGroup{Email: email, Count: int64(len(ids)), IDs: ids})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Email < out[j].Email
	})
	return out, nil
}
