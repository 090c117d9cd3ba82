package store

import (
	"context"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	_, err := s.clients.InsertOne(ctx, c)
	return writeErr("insert client", err)
}

func (s *Store) GetClientByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	return findOne[models.Client](ctx, s.clients, bson.M{"_id": id})
}

func (s *Store) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	return findOne[models.Client](ctx, s.clients, bson.M{"email": email})
}

func (s *Store) ListClientsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[models.Client](ctx, s.clients, bson.M{"adminId": adminID}, opts)
}

func (s *Store) UpdateClient(ctx context.Context, id primitive.ObjectID, u models.ClientUpdate) (*models.Client, error) {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Phone != nil {
		set["phone"] = *u.Phone
	}
	if u.Password != nil {
		set["password"] = *u.Password
	}
	return findOneAndUpdate[models.Client](ctx, s.clients, bson.M{"_id": id}, bson.M{"$set": set}, nil)
}

func (s *Store) SetClientPassword(ctx context.Context, email, hash string) error {
	res, err := s.clients.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return writeErr("set client password", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteClient removes the client only when it belongs to adminID.
func (s *Store) DeleteClient(ctx context.Context, adminID, clientID primitive.ObjectID) (bool, error) {
	res, err := s.clients.DeleteOne(ctx, bson.M{"_id": clientID, "adminId": adminID})
	if err != nil {
		return false, writeErr("delete client", err)
	}
	return res.DeletedCount > 0, nil
}
