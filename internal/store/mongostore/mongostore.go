// Package mongostore is the MongoDB store.Store. Document ids are ObjectID
// hex strings stored in _id.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ENW_BACK-END/internal/apperr"
	"ENW_BACK-END/internal/store"
)

// Config holds the connection settings.
type Config struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Store is the MongoDB store.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	now    func() time.Time
}

// Open connects, verifies connectivity and ensures indexes.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongo URI is empty")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	opts := options.Client().ApplyURI(cfg.URI).SetConnectTimeout(cfg.ConnectTimeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := New(client, cfg.Database)
	if _, err := s.Maintenance().EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// New wraps an existing client.
func New(client *mongo.Client, database string) *Store {
	if database == "" {
		database = "enw"
	}
	return &Store{client: client, db: client.Database(database), now: time.Now}
}

func (s *Store) Seniors() store.Seniors                 { return seniors{s} }
func (s *Store) SupportRequests() store.SupportRequests { return requests{s} }
func (s *Store) Volunteers() store.Volunteers           { return volunteers{s} }
func (s *Store) Partners() store.Partners               { return partners{s} }
func (s *Store) Assignments() store.Assignments         { return assignments{s} }
func (s *Store) Tasks() store.Tasks                     { return tasks{s} }
func (s *Store) Blog() store.Blog                       { return blog{s} }
func (s *Store) Maintenance() store.Maintenance         { return maintenance{s} }

// WithTransaction runs fn inside a session transaction. The session travels
// in ctx, so every collection call made with it joins the transaction. A ctx
// that already carries a session is reused.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx store.Store) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx, s)
	}
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

func (s *Store) ValidID(id string) bool { return primitive.IsValidObjectID(id) }

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// Drop removes the database. Used by tests.
func (s *Store) Drop(ctx context.Context) error { return s.db.Drop(ctx) }

func (s *Store) coll(name string) *mongo.Collection { return s.db.Collection(name) }

func newID() string { return primitive.NewObjectID().Hex() }

var dupIndexRx = regexp.MustCompile(`index: (\S+) dup key`)

// translate maps driver errors onto the apperr taxonomy. The duplicate field
// comes from the violated index, the value from the attempted document.
func translate(err error, collection string, doc any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}
	field := "email"
	if m := dupIndexRx.FindStringSubmatch(err.Error()); m != nil {
		if fields, ok := indexFields(collection, m[1]); ok {
			field = fields[0]
		}
	}
	return &apperr.DuplicateKeyError{Field: field, Value: fieldValue(doc, field)}
}

func fieldValue(doc any, field string) any {
	if doc == nil {
		return nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m[field]
}

func insert[T any](ctx context.Context, c *mongo.Collection, doc *T) (*T, error) {
	if _, err := c.InsertOne(ctx, doc); err != nil {
		return nil, translate(err, c.Name(), doc)
	}
	out := *doc
	return &out, nil
}

func findByID[T any](ctx context.Context, c *mongo.Collection, id string) (*T, error) {
	var out T
	if err := c.FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return nil, translate(err, c.Name(), nil)
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []*T{}
	for cur.Next(ctx) {
		var v T
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, cur.Err()
}

// toSet encodes doc into a $set document without the given keys.
func toSet(doc any, omit ...string) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "_id")
	for _, k := range omit {
		delete(m, k)
	}
	return m, nil
}
