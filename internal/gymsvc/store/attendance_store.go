package store

import (
	"context"
	"errors"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) InsertAttendance(ctx context.Context, a *models.Attendance) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.attendances.InsertOne(ctx, a)
	return writeErr("insert attendance", err)
}

// UpsertAttendance records the status for (client, date), overwriting the row of that day if present.
func (s *Store) UpsertAttendance(ctx context.Context, a *models.Attendance) error {
	filter := bson.M{"clientId": a.ClientID, "date": a.Date}
	update := bson.M{"$set": bson.M{
		"adminId":    a.AdminID,
		"status":     a.Status,
		"clientname": a.ClientName,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true)

	out, err := findOneAndUpdate[models.Attendance](ctx, s.attendances, filter, update, opts)
	if errors.Is(err, ErrDuplicate) {
		// lost an upsert race on the unique key; the row exists now
		out, err = findOneAndUpdate[models.Attendance](ctx, s.attendances, filter, update, nil)
	}
	if err != nil {
		return err
	}
	*a = *out
	return nil
}

// InsertMissingAttendance inserts the entries whose (client, date) has no row yet and
// returns how many were inserted. Existing rows are left untouched.
func (s *Store) InsertMissingAttendance(ctx context.Context, entries []models.Attendance) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"clientId": e.ClientID, "date": e.Date}).
			SetUpdate(bson.M{"$setOnInsert": bson.M{
				"adminId":    e.AdminID,
				"status":     e.Status,
				"clientname": e.ClientName,
			}}).
			SetUpsert(true))
	}

	res, err := s.attendances.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, writeErr("bulk upsert attendance", err)
	}
	if res == nil {
		return 0, nil
	}
	return int(res.UpsertedCount), nil
}

func (s *Store) SetAttendanceStatus(ctx context.Context, adminID, id primitive.ObjectID, status models.AttendanceStatus) (*models.Attendance, error) {
	return findOneAndUpdate[models.Attendance](ctx, s.attendances,
		bson.M{"_id": id, "adminId": adminID}, bson.M{"$set": bson.M{"status": status}}, nil)
}

func (s *Store) ListAttendanceByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	return findMany[models.Attendance](ctx, s.attendances, bson.M{"clientId": clientID}, opts)
}

func (s *Store) ListAttendanceByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Attendance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "clientname", Value: 1}})
	return findMany[models.Attendance](ctx, s.attendances, bson.M{"adminId": adminID}, opts)
}
