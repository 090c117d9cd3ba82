package store

import (
	"context"
	"errors"
	"time"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var byPaymentDateDesc = bson.D{{Key: "paymentDate", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) InsertPayment(ctx context.Context, p *models.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.payments.InsertOne(ctx, p)
	return writeErr("insert payment", err)
}

// UpdatePayment patches the payment only when it is recorded under adminID.
func (s *Store) UpdatePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string, patch models.PaymentPatch) (*models.Payment, error) {
	set := bson.M{}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.PaymentMode != nil {
		set["paymentMode"] = *patch.PaymentMode
	}
	if patch.AmountPaid != nil {
		set["amountPaid"] = *patch.AmountPaid
	}
	if patch.TotalAmount != nil {
		set["totalAmount"] = *patch.TotalAmount
	}
	if patch.DueAmount != nil {
		set["dueAmount"] = *patch.DueAmount
	}
	if patch.PaymentDate != nil {
		set["paymentDate"] = *patch.PaymentDate
	}
	if patch.NextDueDate != nil {
		set["nextDueDate"] = *patch.NextDueDate
	}
	return findOneAndUpdate[models.Payment](ctx, s.payments, bson.M{"paymentId": paymentID, "adminId": adminID}, bson.M{"$set": set}, nil)
}

func (s *Store) DeletePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string) (*models.Payment, error) {
	var out models.Payment
	if err := s.payments.FindOneAndDelete(ctx, bson.M{"paymentId": paymentID, "adminId": adminID}).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, writeErr("delete payment", err)
	}
	return &out, nil
}

func (s *Store) ListPaymentsByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Payment, error) {
	return findMany[models.Payment](ctx, s.payments, bson.M{"clientId": clientID}, options.Find().SetSort(byPaymentDateDesc))
}

func (s *Store) ListPaymentsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Payment, error) {
	return findMany[models.Payment](ctx, s.payments, bson.M{"adminId": adminID}, options.Find().SetSort(byPaymentDateDesc))
}

// DeletePaymentsBefore removes every payment dated strictly before cutoff.
func (s *Store) DeletePaymentsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.payments.DeleteMany(ctx, bson.M{"paymentDate": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, writeErr("delete old payments", err)
	}
	return res.DeletedCount, nil
}
