package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/avvvet/gym-services/internal/gymsvc/auth"
	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	joinDay  = time.Date(2024, time.May, 30, 9, 0, 0, 0, time.UTC)
	sweepDay = time.Date(2024, time.May, 31, 18, 0, 0, 0, time.UTC)
)

type recordedEvents struct {
	types []string
}

func (r *recordedEvents) Publish(eventType string, data interface{}) {
	r.types = append(r.types, eventType)
}

type fixture struct {
	store      *memory.Store
	events     *recordedEvents
	admins     *AdminService
	clients    *ClientService
	attendance *AttendanceService
	payments   *PaymentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	ev := &recordedEvents{}
	f := &fixture{
		store:      st,
		events:     ev,
		admins:     NewAdminService(st),
		clients:    NewClientService(st, ev),
		attendance: NewAttendanceService(st, ev),
		payments:   NewPaymentService(st, ev, 3),
	}
	f.clients.now = func() time.Time { return joinDay }
	f.attendance.now = func() time.Time { return sweepDay }
	f.payments.now = func() time.Time { return sweepDay }
	return f
}

func (f *fixture) admin(t *testing.T, email, mobile string) *models.Admin {
	t.Helper()
	a, err := f.admins.Create(context.Background(), CreateAdminInput{Email: email, Password: "secret", MobileNumber: mobile})
	require.NoError(t, err)
	return a
}

func (f *fixture) onboard(t *testing.T, adminID primitive.ObjectID, name, email, phone string) *models.Client {
	t.Helper()
	res, err := f.clients.Onboard(context.Background(), OnboardInput{
		AdminID:     adminID.Hex(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Password:    "pw",
		PaymentType: models.PaymentMonthly,
	})
	require.NoError(t, err)
	return res.Client
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAdminCreateDefaults(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, " Owner@Gym.io ", "9876543210")

	assert.Equal(t, "owner@gym.io", a.Email)
	assert.Equal(t, models.DefaultAdminName, a.AdminName)
	assert.Equal(t, models.DefaultBussinessName, a.BussinessName)
	assert.Equal(t, models.DefaultAddress, a.Address)
	assert.True(t, auth.CheckPassword(a.Password, "secret"))

	_, err := f.admins.Create(context.Background(), CreateAdminInput{Email: "owner@gym.io", Password: "x", MobileNumber: "1111111111"})
	assert.Equal(t, KindConflict, KindOf(err))

	_, err = f.admins.Create(context.Background(), CreateAdminInput{Email: "b@gym.io", MobileNumber: "1111111111"})
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Password is required", MessageOf(err))
}

func TestOnboardUnknownAdminWritesNothing(t *testing.T) {
	f := newFixture(t)

	for _, adminID := range []string{primitive.NewObjectID().Hex(), "not-an-id"} {
		_, err := f.clients.Onboard(context.Background(), OnboardInput{
			AdminID:     adminID,
			Name:        "Ann",
			Email:       "ann@x.io",
			Phone:       "1234567890",
			Password:    "pw",
			PaymentType: models.PaymentMonthly,
		})
		require.Error(t, err)
		assert.Equal(t, KindValidation, KindOf(err))
		assert.Equal(t, "Invalid adminId. Admin does not exist.", MessageOf(err))
	}

	_, clients, attendances, _ := f.store.Counts()
	assert.Zero(t, clients)
	assert.Zero(t, attendances)
	assert.Empty(t, f.events.types)
}

func TestOnboardCreatesClientAndPresentRow(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")

	res, err := f.clients.Onboard(context.Background(), OnboardInput{
		AdminID:     a.ID.Hex(),
		Name:        "Ann",
		Email:       "ann@x.io",
		Phone:       "1234567890",
		Password:    "pw",
		PaymentType: models.PaymentQuarterly,
	})
	require.NoError(t, err)

	assert.Equal(t, models.PaymentPending, res.Client.PaymentStatus)
	assert.Equal(t, a.ID, res.Client.AdminID)
	assert.True(t, auth.CheckPassword(res.Client.Password, "pw"))
	assert.Equal(t, "2024-05-30", res.Attendance.Date)
	assert.Equal(t, models.Present, res.Attendance.Status)
	assert.Equal(t, "Ann", res.Attendance.ClientName)

	_, clients, attendances, _ := f.store.Counts()
	assert.Equal(t, 1, clients)
	assert.Equal(t, 1, attendances)
	assert.Equal(t, []string{comm.EventClientOnboarded}, f.events.types)
}

func TestOnboardRollsBackWhenAttendanceFails(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")
	f.store.FailOn = func(op string) error {
		if op == "InsertAttendance" {
			return errors.New("write conflict")
		}
		return nil
	}

	_, err := f.clients.Onboard(context.Background(), OnboardInput{
		AdminID:     a.ID.Hex(),
		Name:        "Ann",
		Email:       "ann@x.io",
		Phone:       "1234567890",
		Password:    "pw",
		PaymentType: models.PaymentMonthly,
	})
	require.Error(t, err)
	assert.Equal(t, KindPersistence, KindOf(err))
	assert.Equal(t, "Failed to add client", MessageOf(err))

	_, clients, attendances, _ := f.store.Counts()
	assert.Zero(t, clients)
	assert.Zero(t, attendances)
}

func TestOnboardDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")
	f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	_, err := f.clients.Onboard(context.Background(), OnboardInput{
		AdminID:     a.ID.Hex(),
		Name:        "Ann Again",
		Email:       "ANN@x.io",
		Phone:       "1234567899",
		Password:    "pw",
		PaymentType: models.PaymentMonthly,
	})
	assert.Equal(t, KindConflict, KindOf(err))

	_, clients, attendances, _ := f.store.Counts()
	assert.Equal(t, 1, clients)
	assert.Equal(t, 1, attendances)
}

func TestOnboardValidation(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")

	cases := []struct {
		name string
		in   OnboardInput
	}{
		{"missing name", OnboardInput{Email: "a@x.io", Phone: "1234567890", Password: "pw", PaymentType: models.PaymentMonthly}},
		{"bad email", OnboardInput{Name: "A", Email: "nope", Phone: "1234567890", Password: "pw", PaymentType: models.PaymentMonthly}},
		{"short phone", OnboardInput{Name: "A", Email: "a@x.io", Phone: "12345", Password: "pw", PaymentType: models.PaymentMonthly}},
		{"bad payment type", OnboardInput{Name: "A", Email: "a@x.io", Phone: "1234567890", Password: "pw", PaymentType: "Weekly"}},
		{"bad payment status", OnboardInput{Name: "A", Email: "a@x.io", Phone: "1234567890", Password: "pw", PaymentType: models.PaymentYearly, PaymentStatus: "Late"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.AdminID = a.ID.Hex()
			_, err := f.clients.Onboard(context.Background(), tc.in)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestClientUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	other := f.admin(t, "other@gym.io", "9876543211")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	_, err := f.clients.Update(ctx, c.ID.Hex(), UpdateClientInput{})
	assert.Equal(t, "No update data provided", MessageOf(err))

	updated, err := f.clients.Update(ctx, c.ID.Hex(), UpdateClientInput{Name: "Annie", Password: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "ann@x.io", updated.Email)
	assert.True(t, auth.CheckPassword(updated.Password, "new"))

	err = f.clients.Delete(ctx, other.ID.Hex(), c.ID.Hex())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Client not found or does not belong to this admin", MessageOf(err))

	require.NoError(t, f.clients.Delete(ctx, a.ID.Hex(), c.ID.Hex()))
	_, err = f.clients.Get(ctx, c.ID.Hex())
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = f.clients.ListByAdmin(ctx, a.ID.Hex())
	assert.Equal(t, "No clients found for this admin", MessageOf(err))
}

func TestSweepMarksAbsentOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	m1 := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	f.onboard(t, a.ID, "Bob", "bob@x.io", "1234567891")

	res, err := f.attendance.SweepAbsent(ctx, a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, &comm.SweepResult{TotalClients: 2, Marked: 2}, res)

	again, err := f.attendance.SweepAbsent(ctx, a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, &comm.SweepResult{TotalClients: 2, Marked: 0}, again)

	_, _, attendances, _ := f.store.Counts()
	assert.Equal(t, 4, attendances)

	// a late check-in replaces the absent row of that day
	entry, err := f.attendance.Mark(ctx, MarkInput{
		ClientID: m1.ID.Hex(),
		AdminID:  a.ID.Hex(),
		Date:     "2024-05-31",
		Status:   models.Present,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ann", entry.ClientName)

	_, _, attendances, _ = f.store.Counts()
	assert.Equal(t, 4, attendances)

	rows, err := f.attendance.ListByClient(ctx, m1.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2024-05-31", rows[0].Date)
	assert.Equal(t, models.Present, rows[0].Status)
	assert.Equal(t, "2024-05-30", rows[1].Date)
}

func TestSweepKeepsPresentRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	f.attendance.now = func() time.Time { return joinDay }

	res, err := f.attendance.SweepAbsent(ctx, a.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalClients)
	assert.Zero(t, res.Marked)

	rows, err := f.attendance.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Present, rows[0].Status)
}

func TestSweepErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")

	_, err := f.attendance.SweepAbsent(ctx, "")
	assert.Equal(t, "Gym Owner ID is required", MessageOf(err))

	_, err = f.attendance.SweepAbsent(ctx, primitive.NewObjectID().Hex())
	assert.Equal(t, "Gym Owner not found", MessageOf(err))

	_, err = f.attendance.SweepAbsent(ctx, a.ID.Hex())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "No clients found for this Gym Owner", MessageOf(err))
}

func TestMarkValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	other := f.admin(t, "other@gym.io", "9876543211")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	_, err := f.attendance.Mark(ctx, MarkInput{ClientID: c.ID.Hex(), AdminID: a.ID.Hex(), Status: models.Present})
	assert.Equal(t, "All fields are required", MessageOf(err))

	_, err = f.attendance.Mark(ctx, MarkInput{ClientID: c.ID.Hex(), AdminID: a.ID.Hex(), Date: "2024-05-31", Status: "Late"})
	assert.Equal(t, KindValidation, KindOf(err))

	_, err = f.attendance.Mark(ctx, MarkInput{ClientID: primitive.NewObjectID().Hex(), AdminID: a.ID.Hex(), Date: "2024-05-31", Status: models.Absent})
	assert.Equal(t, "Client not found", MessageOf(err))

	_, err = f.attendance.Mark(ctx, MarkInput{ClientID: c.ID.Hex(), AdminID: primitive.NewObjectID().Hex(), Date: "2024-05-31", Status: models.Absent})
	assert.Equal(t, "Gym Owner not found", MessageOf(err))

	_, err = f.attendance.Mark(ctx, MarkInput{ClientID: c.ID.Hex(), AdminID: other.ID.Hex(), Date: "2024-05-31", Status: models.Absent})
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestCorrectRejectsInvalidStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	rows, err := f.attendance.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	id := rows[0].ID.Hex()

	_, err = f.attendance.Correct(ctx, a.ID.Hex(), id, "Maybe")
	assert.Equal(t, "Invalid status value. Use 'Present' or 'Absent'.", MessageOf(err))

	rows, err = f.attendance.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.Present, rows[0].Status)

	other := f.admin(t, "other@gym.io", "9876543211")
	_, err = f.attendance.Correct(ctx, other.ID.Hex(), id, models.Absent)
	assert.Equal(t, "Attendance record not found", MessageOf(err))

	fixed, err := f.attendance.Correct(ctx, a.ID.Hex(), id, models.Absent)
	require.NoError(t, err)
	assert.Equal(t, models.Absent, fixed.Status)

	_, err = f.attendance.Correct(ctx, a.ID.Hex(), primitive.NewObjectID().Hex(), models.Absent)
	assert.Equal(t, "Attendance record not found", MessageOf(err))
}

func TestAttendanceListsEmpty(t *testing.T) {
	f := newFixture(t)
	_, err := f.attendance.ListByAdmin(context.Background(), primitive.NewObjectID().Hex())
	assert.Equal(t, "No attendance records found", MessageOf(err))
	_, err = f.attendance.ListByClient(context.Background(), primitive.NewObjectID().Hex())
	assert.Equal(t, KindNotFound, KindOf(err))
}

func (f *fixture) recordInput(a *models.Admin, c *models.Client) RecordInput {
	return RecordInput{
		ClientID:    c.ID.Hex(),
		AdminID:     a.ID.Hex(),
		AmountPaid:  dec("1500.50"),
		TotalAmount: dec("3000"),
		NextDueDate: "2024-06-30",
		PaymentMode: models.ModeUPI,
	}
}

func TestRecordPaymentDefaults(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	p, err := f.payments.Record(context.Background(), f.recordInput(a, c))
	require.NoError(t, err)

	assert.Regexp(t, `^PAY-[0-9a-f-]{36}$`, p.PaymentID)
	assert.Equal(t, models.TxCompleted, p.Status)
	assert.True(t, p.DueAmount.IsZero())
	assert.Equal(t, "1500.50", p.AmountPaid.StringFixed(2))
	assert.Equal(t, sweepDay, p.PaymentDate)
	assert.Equal(t, "Ann", p.ClientName)
	assert.Contains(t, f.events.types, comm.EventPaymentRecorded)

	in := f.recordInput(a, c)
	in.PaymentID = p.PaymentID
	_, err = f.payments.Record(context.Background(), in)
	assert.Equal(t, KindConflict, KindOf(err))
}

func TestRecordPaymentRejects(t *testing.T) {
	f := newFixture(t)
	a := f.admin(t, "owner@gym.io", "9876543210")
	other := f.admin(t, "other@gym.io", "9876543211")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	cases := []struct {
		name   string
		mutate func(*RecordInput)
		kind   Kind
	}{
		{"unknown mode", func(in *RecordInput) { in.PaymentMode = "Bitcoin" }, KindValidation},
		{"missing mode", func(in *RecordInput) { in.PaymentMode = "" }, KindValidation},
		{"unknown status", func(in *RecordInput) { in.Status = "Refunded" }, KindValidation},
		{"negative amount", func(in *RecordInput) { in.AmountPaid = dec("-1") }, KindValidation},
		{"missing total", func(in *RecordInput) { in.TotalAmount = nil }, KindValidation},
		{"missing next due", func(in *RecordInput) { in.NextDueDate = "" }, KindValidation},
		{"unknown client", func(in *RecordInput) { in.ClientID = primitive.NewObjectID().Hex() }, KindNotFound},
		{"unknown admin", func(in *RecordInput) { in.AdminID = primitive.NewObjectID().Hex() }, KindNotFound},
		{"foreign admin", func(in *RecordInput) { in.AdminID = other.ID.Hex() }, KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := f.recordInput(a, c)
			tc.mutate(&in)
			_, err := f.payments.Record(context.Background(), in)
			assert.Equal(t, tc.kind, KindOf(err))
		})
	}

	_, _, _, payments := f.store.Counts()
	assert.Zero(t, payments)
}

func TestUpdatePaymentIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	p, err := f.payments.Record(ctx, f.recordInput(a, c))
	require.NoError(t, err)

	pending := "Pending"
	bitcoin := "Bitcoin"
	_, err = f.payments.Update(ctx, a.ID.Hex(), p.PaymentID, UpdatePaymentInput{Status: &pending, PaymentMode: &bitcoin})
	assert.Equal(t, KindValidation, KindOf(err))

	list, err := f.payments.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.TxCompleted, list[0].Status)
	assert.Equal(t, models.ModeUPI, list[0].PaymentMode)

	_, err = f.payments.Update(ctx, a.ID.Hex(), p.PaymentID, UpdatePaymentInput{})
	assert.Equal(t, "No valid fields provided for update.", MessageOf(err))

	updated, err := f.payments.Update(ctx, a.ID.Hex(), p.PaymentID, UpdatePaymentInput{Status: &pending, DueAmount: dec("1499.50")})
	require.NoError(t, err)
	assert.Equal(t, models.TxPending, updated.Status)
	assert.Equal(t, "1499.50", updated.DueAmount.StringFixed(2))

	_, err = f.payments.Update(ctx, a.ID.Hex(), "PAY-missing", UpdatePaymentInput{Status: &pending})
	assert.Equal(t, "Payment record not found", MessageOf(err))

	other := f.admin(t, "other@gym.io", "9876543211")
	completed := "Completed"
	_, err = f.payments.Update(ctx, other.ID.Hex(), p.PaymentID, UpdatePaymentInput{Status: &completed})
	assert.Equal(t, KindNotFound, KindOf(err))
	list, err = f.payments.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.TxPending, list[0].Status)
}

func TestDeleteAndListPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	_, err := f.payments.ListByAdmin(ctx, a.ID.Hex())
	assert.Equal(t, "No payments found for this admin.", MessageOf(err))

	list, err := f.payments.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, list)

	older := f.recordInput(a, c)
	older.PaymentDate = "2024-04-01"
	_, err = f.payments.Record(ctx, older)
	require.NoError(t, err)
	newer, err := f.payments.Record(ctx, f.recordInput(a, c))
	require.NoError(t, err)

	list, err = f.payments.ListByAdmin(ctx, a.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.PaymentID, list[0].PaymentID)

	other := f.admin(t, "other@gym.io", "9876543211")
	_, err = f.payments.Delete(ctx, other.ID.Hex(), newer.PaymentID)
	assert.Equal(t, KindNotFound, KindOf(err))

	deleted, err := f.payments.Delete(ctx, a.ID.Hex(), newer.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, newer.PaymentID, deleted.PaymentID)

	_, err = f.payments.Delete(ctx, a.ID.Hex(), newer.PaymentID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestPurgeKeepsBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")

	for _, date := range []string{"2024-02-29T17:59:59Z", "2024-02-29T18:00:00Z", "2024-05-01T00:00:00Z", "2023-12-01T00:00:00Z"} {
		in := f.recordInput(a, c)
		in.PaymentDate = date
		_, err := f.payments.Record(ctx, in)
		require.NoError(t, err)
	}

	res, err := f.payments.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Deleted)
	assert.Equal(t, time.Date(2024, time.February, 29, 18, 0, 0, 0, time.UTC), res.Cutoff)
	assert.Contains(t, f.events.types, comm.EventPaymentsPurged)

	list, err := f.payments.ListByClient(ctx, c.ID.Hex())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[1].PaymentDate.Equal(res.Cutoff))
}

func TestMonthsBeforeClampsDay(t *testing.T) {
	cases := []struct {
		from time.Time
		n    int
		want time.Time
	}{
		{time.Date(2024, time.May, 31, 0, 0, 0, 0, time.UTC), 3, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{time.Date(2023, time.May, 31, 0, 0, 0, 0, time.UTC), 3, time.Date(2023, time.February, 28, 0, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.February, 15, 6, 0, 0, 0, time.UTC), 3, time.Date(2023, time.November, 15, 6, 0, 0, 0, time.UTC)},
		{time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC), 1, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, monthsBefore(tc.from, tc.n))
	}
}

type stubSigner struct{}

func (stubSigner) Issue(id, role string) (string, error) { return role + ":" + id, nil }

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	c := f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	svc := NewAuthService(f.store, f.store, stubSigner{})

	res, err := svc.AdminLogin(ctx, "OWNER@gym.io", "secret")
	require.NoError(t, err)
	assert.Equal(t, "admin:"+a.ID.Hex(), res.Token)
	assert.Equal(t, models.DefaultAdminName, res.User.Name)

	res, err = svc.ClientLogin(ctx, "ann@x.io", "pw")
	require.NoError(t, err)
	assert.Equal(t, "client:"+c.ID.Hex(), res.Token)
	assert.Equal(t, LoginUser{ID: c.ID.Hex(), Name: "Ann", Email: "ann@x.io"}, res.User)

	_, err = svc.ClientLogin(ctx, "ann@x.io", "wrong")
	assert.Equal(t, KindAuthentication, KindOf(err))
	assert.Equal(t, "Invalid credentials", MessageOf(err))

	_, err = svc.AdminLogin(ctx, "nobody@gym.io", "secret")
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.admin(t, "owner@gym.io", "9876543210")
	f.onboard(t, a.ID, "Ann", "ann@x.io", "1234567890")
	svc := NewAuthService(f.store, f.store, stubSigner{})

	require.NoError(t, f.admins.ResetPassword(ctx, "owner@gym.io", "changed"))
	_, err := svc.AdminLogin(ctx, "owner@gym.io", "changed")
	assert.NoError(t, err)

	require.NoError(t, f.clients.ResetPassword(ctx, "ann@x.io", "changed"))
	_, err = svc.ClientLogin(ctx, "ann@x.io", "changed")
	assert.NoError(t, err)

	assert.Equal(t, KindNotFound, KindOf(f.clients.ResetPassword(ctx, "ghost@x.io", "x")))
	assert.Equal(t, KindValidation, KindOf(f.admins.ResetPassword(ctx, "owner@gym.io", "")))

	admin, err := f.admins.GetByEmail(ctx, " Owner@Gym.io ")
	require.NoError(t, err)
	assert.Equal(t, a.ID, admin.ID)
	_, err = f.clients.GetByEmail(ctx, "ghost@x.io")
	assert.Equal(t, KindNotFound, KindOf(err))
}
