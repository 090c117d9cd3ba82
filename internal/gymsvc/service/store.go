package service

import (
	"context"
	"time"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TxRunner runs fn atomically. Store calls made with the context passed to fn join the transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type AdminStore interface {
	CreateAdmin(ctx context.Context, a *models.Admin) error
	GetAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpdateAdmin(ctx context.Context, id primitive.ObjectID, u models.AdminUpdate) (*models.Admin, error)
	SetAdminPassword(ctx context.Context, email, hash string) error
}

type ClientStore interface {
	CreateClient(ctx context.Context, c *models.Client) error
	GetClientByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	GetClientByEmail(ctx context.Context, email string) (*models.Client, error)
	ListClientsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Client, error)
	UpdateClient(ctx context.Context, id primitive.ObjectID, u models.ClientUpdate) (*models.Client, error)
	SetClientPassword(ctx context.Context, email, hash string) error
	DeleteClient(ctx context.Context, adminID, clientID primitive.ObjectID) (bool, error)
}

type AttendanceStore interface {
	InsertAttendance(ctx context.Context, a *models.Attendance) error
	UpsertAttendance(ctx context.Context, a *models.Attendance) error
	InsertMissingAttendance(ctx context.Context, entries []models.Attendance) (int, error)
	SetAttendanceStatus(ctx context.Context, adminID, id primitive.ObjectID, status models.AttendanceStatus) (*models.Attendance, error)
	ListAttendanceByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Attendance, error)
	ListAttendanceByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Attendance, error)
}

type PaymentStore interface {
	InsertPayment(ctx context.Context, p *models.Payment) error
	UpdatePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string, patch models.PaymentPatch) (*models.Payment, error)
	DeletePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string) (*models.Payment, error)
	ListPaymentsByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Payment, error)
	ListPaymentsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Payment, error)
	DeletePaymentsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store is the full entity store. Both the mongo and the memory stores satisfy it.
type Store interface {
	TxRunner
	AdminStore
	ClientStore
	AttendanceStore
	PaymentStore
}

// Events receives domain events once the corresponding write is durable.
type Events interface {
	Publish(eventType string, data interface{})
}

// NoopEvents drops every event; used when no broker is configured.
type NoopEvents struct{}

func (NoopEvents) Publish(string, interface{}) {}
