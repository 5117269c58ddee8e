package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ENW_BACK-END/internal/models"
	"ENW_BACK-END/internal/store"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func page(limit, offset int) *options.FindOptions {
	limit, offset = store.Page(limit, offset, store.MaxPageSize)
	return options.Find().SetSort(newestFirst).SetSkip(int64(offset)).SetLimit(int64(limit))
}

type seniors struct{ s *Store }

func (r seniors) Create(ctx context.Context, in *models.Senior) (*models.Senior, error) {
	doc := *in
	if err := store.BeforeSenior(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollSeniors), &doc)
}

func (r seniors) Get(ctx context.Context, id string) (*models.Senior, error) {
	return findByID[models.Senior](ctx, r.s.coll(store.CollSeniors), id)
}

func (r seniors) GetByEmail(ctx context.Context, email string) (*models.Senior, error) {
	var out models.Senior
	if err := r.s.coll(store.CollSeniors).FindOne(ctx, bson.M{"email": email}).Decode(&out); err != nil {
		return nil, translate(err, store.CollSeniors, nil)
	}
	return &out, nil
}

func (r seniors) GetMany(ctx context.Context, ids []string) (map[string]*models.Senior, error) {
	out := make(map[string]*models.Senior, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := findAll[models.Senior](ctx, r.s.coll(store.CollSeniors), bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.ID] = s
	}
	return out, nil
}

type requests struct{ s *Store }

func (r requests) Create(ctx context.Context, in *models.SupportRequest) (*models.SupportRequest, error) {
	doc := *in
	if err := store.BeforeSupportRequest(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollSupportRequests), &doc)
}

func (r requests) Get(ctx context.Context, id string) (*models.SupportRequest, error) {
	return findByID[models.SupportRequest](ctx, r.s.coll(store.CollSupportRequests), id)
}

func (r requests) List(ctx context.Context, f models.SupportRequestFilter) ([]*models.SupportRequest, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	c := r.s.coll(store.CollSupportRequests)
	rows, err := findAll[models.SupportRequest](ctx, c, filter, page(f.Limit, f.Offset))
	if err != nil {
		return nil, 0, err
	}
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r requests) UpdateStatus(ctx context.Context, id string, status models.RequestStatus, completedAt *time.Time) (*models.SupportRequest, error) {
	cur, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cur.Status = status
	if completedAt != nil {
		cur.CompletedAt = completedAt
	}
	if err := store.BeforeSupportRequest(cur, r.s.now()); err != nil {
		return nil, err
	}
	set := bson.M{"status": cur.Status, "updatedAt": cur.UpdatedAt}
	if completedAt != nil {
		set["completedAt"] = *completedAt
	}
	res, err := r.s.coll(store.CollSupportRequests).UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return r.Get(ctx, id)
}

type volunteers struct{ s *Store }

func (r volunteers) Create(ctx context.Context, in *models.Volunteer) (*models.Volunteer, error) {
	doc := *in
	if err := store.BeforeVolunteer(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollVolunteers), &doc)
}

func (r volunteers) Get(ctx context.Context, id string) (*models.Volunteer, error) {
	return findByID[models.Volunteer](ctx, r.s.coll(store.CollVolunteers), id)
}

func (r volunteers) List(ctx context.Context, f models.VolunteerFilter) ([]*models.Volunteer, int64, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	c := r.s.coll(store.CollVolunteers)
	rows, err := findAll[models.Volunteer](ctx, c, filter, page(f.Limit, f.Offset))
	if err != nil {
		return nil, 0, err
	}
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type partners struct{ s *Store }

func (r partners) Create(ctx context.Context, in *models.Partner) (*models.Partner, error) {
	doc := *in
	if err := store.BeforePartner(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollPartners), &doc)
}

func (r partners) Get(ctx context.Context, id string) (*models.Partner, error) {
	return findByID[models.Partner](ctx, r.s.coll(store.CollPartners), id)
}

type assignments struct{ s *Store }

func (r assignments) Create(ctx context.Context, in *models.VolunteerAssignment) (*models.VolunteerAssignment, error) {
	doc := *in
	if err := store.BeforeAssignment(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollAssignments), &doc)
}

func (r assignments) ListByRequest(ctx context.Context, requestID string) ([]*models.VolunteerAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assignedAt", Value: -1}})
	return findAll[models.VolunteerAssignment](ctx, r.s.coll(store.CollAssignments), bson.M{"requestId": requestID}, opts)
}

type tasks struct{ s *Store }

func (r tasks) Create(ctx context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	doc.ID = newID()
	return insert(ctx, r.s.coll(store.CollTasks), &doc)
}

func (r tasks) Get(ctx context.Context, id string) (*models.Task, error) {
	return findByID[models.Task](ctx, r.s.coll(store.CollTasks), id)
}

func (r tasks) ListByRequest(ctx context.Context, requestID string) ([]*models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return findAll[models.Task](ctx, r.s.coll(store.CollTasks), bson.M{"requestId": requestID}, opts)
}

func (r tasks) Update(ctx context.Context, in *models.Task) (*models.Task, error) {
	doc := *in
	if err := store.BeforeTask(&doc, r.s.now()); err != nil {
		return nil, err
	}
	res, err := r.s.coll(store.CollTasks).ReplaceOne(ctx, bson.M{"_id": doc.ID}, &doc)
	if err != nil {
		return nil, translate(err, store.CollTasks, &doc)
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return &doc, nil
}
