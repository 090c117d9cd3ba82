package store

import (
	"context"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.admins.InsertOne(ctx, a)
	return writeErr("insert admin", err)
}

func (s *Store) GetAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	return findOne[models.Admin](ctx, s.admins, bson.M{"_id": id})
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return findOne[models.Admin](ctx, s.admins, bson.M{"email": email})
}

func (s *Store) UpdateAdmin(ctx context.Context, id primitive.ObjectID, u models.AdminUpdate) (*models.Admin, error) {
	set := bson.M{}
	if u.AdminName != nil {
		set["AdminName"] = *u.AdminName
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.MobileNumber != nil {
		set["mobile_Number"] = *u.MobileNumber
	}
	if u.BussinessName != nil {
		set["bussiness_name"] = *u.BussinessName
	}
	if u.Address != nil {
		set["address"] = *u.Address
	}
	return findOneAndUpdate[models.Admin](ctx, s.admins, bson.M{"_id": id}, bson.M{"$set": set}, nil)
}

func (s *Store) SetAdminPassword(ctx context.Context, email, hash string) error {
	res, err := s.admins.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return writeErr("set admin password", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
