// Package memory is an in-process entity store with the same semantics as the mongo store:
// unique keys, ownership-scoped deletes and transactional rollback. It backs local runs
// (GYM_STORE=memory) and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Store struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	admins      map[primitive.ObjectID]models.Admin
	clients     map[primitive.ObjectID]models.Client
	attendances map[primitive.ObjectID]models.Attendance
	payments    map[primitive.ObjectID]models.Payment

	// FailOn, when set, is consulted before every write; a non-nil error aborts the write.
	FailOn func(op string) error
}

func New() *Store {
	return &Store{
		admins:      make(map[primitive.ObjectID]models.Admin),
		clients:     make(map[primitive.ObjectID]models.Client),
		attendances: make(map[primitive.ObjectID]models.Attendance),
		payments:    make(map[primitive.ObjectID]models.Payment),
	}
}

type txKey struct{}

// journal holds the inverse of every write made inside one transaction.
type journal struct {
	undo []func()
}

// WithTransaction serializes transactions. When fn fails, only the keys written through fn's
// context are reverted; writes made outside the transaction in the meantime are kept.
// A nested call joins the enclosing transaction.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*journal); ok {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	j := &journal{}
	if err := fn(context.WithValue(ctx, txKey{}, j)); err != nil {
		s.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// track records how to restore m[k] if ctx belongs to a transaction that later aborts.
// Callers hold s.mu.
func track[K comparable, V any](ctx context.Context, m map[K]V, k K) {
	j, ok := ctx.Value(txKey{}).(*journal)
	if !ok {
		return
	}
	prev, existed := m[k]
	j.undo = append(j.undo, func() {
		if existed {
			m[k] = prev
		} else {
			delete(m, k)
		}
	})
}

func (s *Store) fail(op string) error {
	if s.FailOn == nil {
		return nil
	}
	return s.FailOn(op)
}

// Counts reports the number of stored documents per collection.
func (s *Store) Counts() (admins, clients, attendances, payments int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.admins), len(s.clients), len(s.attendances), len(s.payments)
}

// Admins

func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateAdmin"); err != nil {
		return err
	}
	for _, existing := range s.admins {
		if existing.Email == a.Email || existing.MobileNumber == a.MobileNumber {
			return store.ErrDuplicate
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	track(ctx, s.admins, a.ID)
	s.admins[a.ID] = *a
	return nil
}

func (s *Store) GetAdminByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.admins[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdateAdmin(ctx context.Context, id primitive.ObjectID, u models.AdminUpdate) (*models.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateAdmin"); err != nil {
		return nil, err
	}
	a, ok := s.admins[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for otherID, other := range s.admins {
		if otherID == id {
			continue
		}
		if (u.Email != nil && other.Email == *u.Email) || (u.MobileNumber != nil && other.MobileNumber == *u.MobileNumber) {
			return nil, store.ErrDuplicate
		}
	}
	if u.AdminName != nil {
		a.AdminName = *u.AdminName
	}
	if u.Email != nil {
		a.Email = *u.Email
	}
	if u.MobileNumber != nil {
		a.MobileNumber = *u.MobileNumber
	}
	if u.BussinessName != nil {
		a.BussinessName = *u.BussinessName
	}
	if u.Address != nil {
		a.Address = *u.Address
	}
	track(ctx, s.admins, id)
	s.admins[id] = a
	return &a, nil
}

func (s *Store) SetAdminPassword(ctx context.Context, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SetAdminPassword"); err != nil {
		return err
	}
	for id, a := range s.admins {
		if a.Email == email {
			a.Password = hash
			track(ctx, s.admins, id)
			s.admins[id] = a
			return nil
		}
	}
	return store.ErrNotFound
}

// Clients

func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("CreateClient"); err != nil {
		return err
	}
	for _, existing := range s.clients {
		if existing.Email == c.Email || existing.Phone == c.Phone {
			return store.ErrDuplicate
		}
	}
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	track(ctx, s.clients, c.ID)
	s.clients[c.ID] = *c
	return nil
}

func (s *Store) GetClientByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (s *Store) GetClientByEmail(ctx context.Context, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) ListClientsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Client{}
	for _, c := range s.clients {
		if c.AdminID == adminID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) UpdateClient(ctx context.Context, id primitive.ObjectID, u models.ClientUpdate) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdateClient"); err != nil {
		return nil, err
	}
	c, ok := s.clients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	for otherID, other := range s.clients {
		if otherID == id {
			continue
		}
		if (u.Email != nil && other.Email == *u.Email) || (u.Phone != nil && other.Phone == *u.Phone) {
			return nil, store.ErrDuplicate
		}
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Password != nil {
		c.Password = *u.Password
	}
	track(ctx, s.clients, id)
	s.clients[id] = c
	return &c, nil
}

func (s *Store) SetClientPassword(ctx context.Context, email, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SetClientPassword"); err != nil {
		return err
	}
	for id, c := range s.clients {
		if c.Email == email {
			c.Password = hash
			track(ctx, s.clients, id)
			s.clients[id] = c
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteClient(ctx context.Context, adminID, clientID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeleteClient"); err != nil {
		return false, err
	}
	c, ok := s.clients[clientID]
	if !ok || c.AdminID != adminID {
		return false, nil
	}
	track(ctx, s.clients, clientID)
	delete(s.clients, clientID)
	return true, nil
}

// Attendance

func (s *Store) InsertAttendance(ctx context.Context, a *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InsertAttendance"); err != nil {
		return err
	}
	if _, ok := s.attendanceFor(a.ClientID, a.Date); ok {
		return store.ErrDuplicate
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	track(ctx, s.attendances, a.ID)
	s.attendances[a.ID] = *a
	return nil
}

func (s *Store) UpsertAttendance(ctx context.Context, a *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpsertAttendance"); err != nil {
		return err
	}
	if existing, ok := s.attendanceFor(a.ClientID, a.Date); ok {
		existing.AdminID = a.AdminID
		existing.Status = a.Status
		existing.ClientName = a.ClientName
		track(ctx, s.attendances, existing.ID)
		s.attendances[existing.ID] = existing
		*a = existing
		return nil
	}
	a.ID = primitive.NewObjectID()
	track(ctx, s.attendances, a.ID)
	s.attendances[a.ID] = *a
	return nil
}

func (s *Store) InsertMissingAttendance(ctx context.Context, entries []models.Attendance) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for _, e := range entries {
		if err := s.fail("InsertMissingAttendance"); err != nil {
			return inserted, err
		}
		if _, ok := s.attendanceFor(e.ClientID, e.Date); ok {
			continue
		}
		e.ID = primitive.NewObjectID()
		track(ctx, s.attendances, e.ID)
		s.attendances[e.ID] = e
		inserted++
	}
	return inserted, nil
}

func (s *Store) SetAttendanceStatus(ctx context.Context, adminID, id primitive.ObjectID, status models.AttendanceStatus) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("SetAttendanceStatus"); err != nil {
		return nil, err
	}
	a, ok := s.attendances[id]
	if !ok || a.AdminID != adminID {
		return nil, store.ErrNotFound
	}
	a.Status = status
	track(ctx, s.attendances, id)
	s.attendances[id] = a
	return &a, nil
}

func (s *Store) ListAttendanceByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Attendance, error) {
	return s.listAttendance(func(a models.Attendance) bool { return a.ClientID == clientID }), nil
}

func (s *Store) ListAttendanceByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Attendance, error) {
	return s.listAttendance(func(a models.Attendance) bool { return a.AdminID == adminID }), nil
}

func (s *Store) listAttendance(match func(models.Attendance) bool) []models.Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Attendance{}
	for _, a := range s.attendances {
		if match(a) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ClientName < out[j].ClientName
	})
	return out
}

func (s *Store) attendanceFor(clientID primitive.ObjectID, date string) (models.Attendance, bool) {
	for _, a := range s.attendances {
		if a.ClientID == clientID && a.Date == date {
			return a, true
		}
	}
	return models.Attendance{}, false
}

// Payments

func (s *Store) InsertPayment(ctx context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("InsertPayment"); err != nil {
		return err
	}
	if _, ok := s.paymentFor(p.PaymentID); ok {
		return store.ErrDuplicate
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	track(ctx, s.payments, p.ID)
	s.payments[p.ID] = *p
	return nil
}

func (s *Store) UpdatePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string, patch models.PaymentPatch) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("UpdatePayment"); err != nil {
		return nil, err
	}
	p, ok := s.paymentFor(paymentID)
	if !ok || p.AdminID != adminID {
		return nil, store.ErrNotFound
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.PaymentMode != nil {
		p.PaymentMode = *patch.PaymentMode
	}
	if patch.AmountPaid != nil {
		p.AmountPaid = *patch.AmountPaid
	}
	if patch.TotalAmount != nil {
		p.TotalAmount = *patch.TotalAmount
	}
	if patch.DueAmount != nil {
		p.DueAmount = *patch.DueAmount
	}
	if patch.PaymentDate != nil {
		p.PaymentDate = *patch.PaymentDate
	}
	if patch.NextDueDate != nil {
		p.NextDueDate = *patch.NextDueDate
	}
	track(ctx, s.payments, p.ID)
	s.payments[p.ID] = p
	return &p, nil
}

func (s *Store) DeletePayment(ctx context.Context, adminID primitive.ObjectID, paymentID string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeletePayment"); err != nil {
		return nil, err
	}
	p, ok := s.paymentFor(paymentID)
	if !ok || p.AdminID != adminID {
		return nil, store.ErrNotFound
	}
	track(ctx, s.payments, p.ID)
	delete(s.payments, p.ID)
	return &p, nil
}

func (s *Store) ListPaymentsByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Payment, error) {
	return s.listPayments(func(p models.Payment) bool { return p.ClientID == clientID }), nil
}

func (s *Store) ListPaymentsByAdmin(ctx context.Context, adminID primitive.ObjectID) ([]models.Payment, error) {
	return s.listPayments(func(p models.Payment) bool { return p.AdminID == adminID }), nil
}

func (s *Store) DeletePaymentsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail("DeletePaymentsBefore"); err != nil {
		return 0, err
	}
	var deleted int64
	for id, p := range s.payments {
		if p.PaymentDate.Before(cutoff) {
			track(ctx, s.payments, id)
			delete(s.payments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) listPayments(match func(models.Payment) bool) []models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range s.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PaymentDate.Equal(out[j].PaymentDate) {
			return out[i].PaymentDate.After(out[j].PaymentDate)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out
}

func (s *Store) paymentFor(paymentID string) (models.Payment, bool) {
	for _, p := range s.payments {
		if p.PaymentID == paymentID {
			return p, true
		}
	}
	return models.Payment{}, false
}
