package broker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	adminID string
	err     error
}

func (f *fakeSweeper) SweepAbsent(ctx context.Context, adminID string) (*comm.SweepResult, error) {
	f.adminID = adminID
	if f.err != nil {
		return nil, f.err
	}
	return &comm.SweepResult{TotalClients: 2, Marked: 2}, nil
}

type fakePurger struct{}

func (fakePurger) Purge(ctx context.Context) (*comm.PurgeResult, error) {
	return &comm.PurgeResult{Deleted: 5, Cutoff: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)}, nil
}

func request(t *testing.T, msgType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	payload, err := json.Marshal(comm.Message{Type: msgType, Data: raw})
	require.NoError(t, err)
	return payload
}

func TestDispatchMarkAttendance(t *testing.T) {
	sweeper := &fakeSweeper{}
	b := &Broker{Attendance: sweeper, Payments: fakePurger{}}

	reply := b.dispatch(request(t, comm.RequestMarkAttendance, comm.MarkAttendanceRequest{AdminID: "a1"}))
	require.Equal(t, comm.StatusOK, reply.Status, reply.Message)
	assert.Equal(t, "a1", sweeper.adminID)
	assert.JSONEq(t, `{"totalClients":2,"marked":2}`, string(reply.Data))
}

func TestDispatchCleanup(t *testing.T) {
	b := &Broker{Attendance: &fakeSweeper{}, Payments: fakePurger{}}

	reply := b.dispatch(request(t, comm.RequestCleanupPayments, struct{}{}))
	require.Equal(t, comm.StatusOK, reply.Status)

	var res comm.PurgeResult
	require.NoError(t, json.Unmarshal(reply.Data, &res))
	assert.Equal(t, int64(5), res.Deleted)
}

func TestDispatchFailures(t *testing.T) {
	b := &Broker{Attendance: &fakeSweeper{err: assert.AnError}, Payments: fakePurger{}}

	reply := b.dispatch([]byte("{"))
	assert.Equal(t, comm.StatusError, reply.Status)

	reply = b.dispatch(request(t, "reboot", nil))
	assert.Equal(t, comm.StatusError, reply.Status)
	assert.Contains(t, reply.Message, "reboot")

	reply = b.dispatch(request(t, comm.RequestMarkAttendance, comm.MarkAttendanceRequest{AdminID: "a1"}))
	assert.Equal(t, comm.StatusError, reply.Status)
	assert.Equal(t, "Internal server error", reply.Message)
}

func TestEnvelopeCarriesInstance(t *testing.T) {
	b := NewBroker(nil, "instance-1")
	payload, err := b.envelope(comm.EventPaymentRecorded, comm.PaymentRecorded{PaymentID: "PAY-1"})
	require.NoError(t, err)

	var msg comm.Message
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, comm.EventPaymentRecorded, msg.Type)
	assert.Equal(t, "instance-1", msg.Instance)
	assert.JSONEq(t, `{"paymentId":"PAY-1","clientId":"","adminId":"","amountPaid":"","status":""}`, string(msg.Data))
}
