package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	adminsCollection      = "admins"
	clientsCollection     = "clients"
	attendancesCollection = "attendances"
	paymentsCollection    = "payments"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store is the mongo backed entity store for admins, clients, attendance and payments.
type Store struct {
	db          *mongo.Database
	admins      *mongo.Collection
	clients     *mongo.Collection
	attendances *mongo.Collection
	payments    *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		db:          db,
		admins:      db.Collection(adminsCollection),
		clients:     db.Collection(clientsCollection),
		attendances: db.Collection(attendancesCollection),
		payments:    db.Collection(paymentsCollection),
	}
}

// WithTransaction runs fn inside a multi-document transaction. Every store call made with the
// context handed to fn joins the transaction; an error from fn aborts it.
// Requires a replica set or sharded cluster.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// EnsureIndexes creates the unique and lookup indexes the stores rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[*mongo.Collection][]mongo.IndexModel{
		s.admins: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "mobile_Number", Value: 1}}, Options: unique},
		},
		s.clients: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "adminId", Value: 1}}},
		},
		s.attendances: {
			{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "date", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "adminId", Value: 1}, {Key: "date", Value: -1}}},
		},
		s.payments: {
			{Keys: bson.D{{Key: "paymentId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "paymentDate", Value: -1}}},
			{Keys: bson.D{{Key: "adminId", Value: 1}, {Key: "paymentDate", Value: -1}}},
			{Keys: bson.D{{Key: "paymentDate", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var out T
	if err := coll.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	return &out, nil
}

func findMany[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return out, nil
}

func findOneAndUpdate[T any](ctx context.Context, coll *mongo.Collection, filter, update interface{}, opts *options.FindOneAndUpdateOptions) (*T, error) {
	if opts == nil {
		opts = options.FindOneAndUpdate()
	}
	opts.SetReturnDocument(options.After)

	var out T
	if err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, writeErr("update "+coll.Name(), err)
	}
	return &out, nil
}

func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
