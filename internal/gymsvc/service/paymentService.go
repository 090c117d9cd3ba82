package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const DefaultRetentionMonths = 3

type paymentStore interface {
	AdminStore
	ClientStore
	PaymentStore
}

// RecordInput carries a new payment. Optional fields are zero or nil when absent.
type RecordInput struct {
	PaymentID     string
	ClientID      string
	AdminID       string
	AmountPaid    *decimal.Decimal
	TotalAmount   *decimal.Decimal
	DueAmount     *decimal.Decimal
	PaymentDate   string
	NextDueDate   string
	PaymentMode   models.PaymentMode
	TransactionID *string
	Status        models.TransactionStatus
	Notes         string
	ClientName    string
}

// UpdatePaymentInput is a partial update; nil fields are not touched.
type UpdatePaymentInput struct {
	Status      *string
	PaymentMode *string
	AmountPaid  *decimal.Decimal
	TotalAmount *decimal.Decimal
	DueAmount   *decimal.Decimal
	PaymentDate *string
	NextDueDate *string
}

// PaymentService is the payment ledger of a gym.
type PaymentService struct {
	store           paymentStore
	events          Events
	retentionMonths int
	now             func() time.Time
}

func NewPaymentService(store paymentStore, events Events, retentionMonths int) *PaymentService {
	if events == nil {
		events = NoopEvents{}
	}
	if retentionMonths <= 0 {
		retentionMonths = DefaultRetentionMonths
	}
	return &PaymentService{store: store, events: events, retentionMonths: retentionMonths, now: time.Now}
}

// Record validates the payment and its client/admin references, then stores it.
func (s *PaymentService) Record(ctx context.Context, in RecordInput) (*models.Payment, error) {
	p, err := s.newPayment(in)
	if err != nil {
		return nil, err
	}

	client, err := s.store.GetClientByID(ctx, p.ClientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load client", err)
	}
	if _, err := s.store.GetAdminByID(ctx, p.AdminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Gym Owner not found")
		}
		return nil, storeErr("Failed to load admin", err)
	}
	if client.AdminID != p.AdminID {
		return nil, validationf("Client does not belong to this Gym Owner")
	}
	if p.ClientName == "" {
		p.ClientName = client.Name
	}

	if err := s.store.InsertPayment(ctx, p); err != nil {
		log.WithField("payment_id", p.PaymentID).Warnf("record payment failed: %v", err)
		return nil, storeErr("Failed to add payment", err)
	}

	s.events.Publish(comm.EventPaymentRecorded, comm.PaymentRecorded{
		PaymentID: p.PaymentID,
		ClientID:  p.ClientID.Hex(),
		AdminID:   p.AdminID.Hex(),
		Amount:    p.AmountPaid.StringFixed(2),
		Status:    string(p.Status),
	})
	return p, nil
}

func (s *PaymentService) newPayment(in RecordInput) (*models.Payment, error) {
	clientID, err := parseID("clientId", in.ClientID)
	if err != nil {
		return nil, err
	}
	adminID, err := parseID("adminId", in.AdminID)
	if err != nil {
		return nil, err
	}
	if in.AmountPaid == nil || in.TotalAmount == nil {
		return nil, validationf("amountPaid and totalAmount are required")
	}
	due := decimal.Zero
	if in.DueAmount != nil {
		due = *in.DueAmount
	}
	for _, amount := range []decimal.Decimal{*in.AmountPaid, *in.TotalAmount, due} {
		if amount.IsNegative() {
			return nil, validationf("Amounts cannot be negative")
		}
	}
	if in.PaymentMode == "" {
		return nil, validationf("paymentMode is required")
	}
	if !in.PaymentMode.Valid() {
		return nil, validationf("Invalid payment mode.")
	}
	status := in.Status
	if status == "" {
		status = models.TxCompleted
	}
	if !status.Valid() {
		return nil, validationf("Invalid status. Use 'Completed', 'Pending', or 'Failed'.")
	}
	if strings.TrimSpace(in.NextDueDate) == "" {
		return nil, validationf("nextDueDate is required")
	}
	nextDue, err := models.ParseDate(in.NextDueDate)
	if err != nil {
		return nil, validationf("nextDueDate: %v", err)
	}
	paid := s.now().UTC()
	if strings.TrimSpace(in.PaymentDate) != "" {
		if paid, err = models.ParseDate(in.PaymentDate); err != nil {
			return nil, validationf("paymentDate: %v", err)
		}
	}

	paymentID := strings.TrimSpace(in.PaymentID)
	if paymentID == "" {
		paymentID = "PAY-" + uuid.NewString()
	}

	return &models.Payment{
		PaymentID:     paymentID,
		ClientID:      clientID,
		AdminID:       adminID,
		AmountPaid:    *in.AmountPaid,
		TotalAmount:   *in.TotalAmount,
		DueAmount:     due,
		PaymentDate:   paid,
		NextDueDate:   nextDue,
		PaymentMode:   in.PaymentMode,
		TransactionID: in.TransactionID,
		Status:        status,
		Notes:         in.Notes,
		ClientName:    strings.TrimSpace(in.ClientName),
	}, nil
}

// Update applies the fields present in in to a payment recorded under adminID. Every field is
// validated before anything is written. Payments of other admins are reported as not found.
func (s *PaymentService) Update(ctx context.Context, adminID, paymentID string, in UpdatePaymentInput) (*models.Payment, error) {
	owner, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, validationf("Payment ID is required")
	}

	var patch models.PaymentPatch
	if in.Status != nil {
		status := models.TransactionStatus(*in.Status)
		if !status.Valid() {
			return nil, validationf("Invalid status. Use 'Completed', 'Pending', or 'Failed'.")
		}
		patch.Status = &status
	}
	if in.PaymentMode != nil {
		mode := models.PaymentMode(*in.PaymentMode)
		if !mode.Valid() {
			return nil, validationf("Invalid payment mode.")
		}
		patch.PaymentMode = &mode
	}
	for _, amount := range []*decimal.Decimal{in.AmountPaid, in.TotalAmount, in.DueAmount} {
		if amount != nil && amount.IsNegative() {
			return nil, validationf("Amounts cannot be negative")
		}
	}
	patch.AmountPaid = in.AmountPaid
	patch.TotalAmount = in.TotalAmount
	patch.DueAmount = in.DueAmount
	if in.PaymentDate != nil {
		t, err := models.ParseDate(*in.PaymentDate)
		if err != nil {
			return nil, validationf("paymentDate: %v", err)
		}
		patch.PaymentDate = &t
	}
	if in.NextDueDate != nil {
		t, err := models.ParseDate(*in.NextDueDate)
		if err != nil {
			return nil, validationf("nextDueDate: %v", err)
		}
		patch.NextDueDate = &t
	}
	if patch.Empty() {
		return nil, validationf("No valid fields provided for update.")
	}

	p, err := s.store.UpdatePayment(ctx, owner, paymentID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Payment record not found")
	}
	if err != nil {
		return nil, storeErr("Failed to update payment", err)
	}
	return p, nil
}

// Delete removes a payment recorded under adminID.
func (s *PaymentService) Delete(ctx context.Context, adminID, paymentID string) (*models.Payment, error) {
	owner, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, validationf("Payment ID is required")
	}
	p, err := s.store.DeletePayment(ctx, owner, paymentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Payment record not found")
	}
	if err != nil {
		return nil, storeErr("Failed to delete payment", err)
	}
	return p, nil
}

// ListByClient returns the client's payments, newest first. An empty ledger is not an error.
func (s *PaymentService) ListByClient(ctx context.Context, clientID string) ([]models.Payment, error) {
	id, err := parseID("clientId", clientID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByClient(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list payments", err)
	}
	return payments, nil
}

// ListByAdmin returns every payment under the admin, newest first.
func (s *PaymentService) ListByAdmin(ctx context.Context, adminID string) ([]models.Payment, error) {
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.ListPaymentsByAdmin(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list payments", err)
	}
	if len(payments) == 0 {
		return nil, notFound("No payments found for this admin.")
	}
	return payments, nil
}

// Purge deletes payments dated strictly before the retention cutoff and reports how many went.
func (s *PaymentService) Purge(ctx context.Context) (*comm.PurgeResult, error) {
	cutoff := monthsBefore(s.now().UTC(), s.retentionMonths)
	deleted, err := s.store.DeletePaymentsBefore(ctx, cutoff)
	if err != nil {
		return nil, storeErr("Failed to delete old payments", err)
	}
	log.WithFields(log.Fields{"cutoff": cutoff, "deleted": deleted}).Info("payment retention purge done")

	result := &comm.PurgeResult{Deleted: deleted, Cutoff: cutoff}
	s.events.Publish(comm.EventPaymentsPurged, *result)
	return result, nil
}
