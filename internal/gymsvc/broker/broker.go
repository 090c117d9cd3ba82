package broker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/avvvet/gym-services/internal/gymsvc/service"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const requestTimeout = 30 * time.Second

type Sweeper interface {
	SweepAbsent(ctx context.Context, adminID string) (*comm.SweepResult, error)
}

type Purger interface {
	Purge(ctx context.Context) (*comm.PurgeResult, error)
}

// Broker publishes domain events and serves control requests for external schedulers.
type Broker struct {
	Conn       *nats.Conn
	Instance   string
	Attendance Sweeper
	Payments   Purger
}

func NewBroker(nc *nats.Conn, instance string) *Broker {
	return &Broker{Conn: nc, Instance: instance}
}

// Publish sends an event envelope to comm.EventsTopic. Failures are logged and dropped;
// the write that produced the event is already durable.
func (b *Broker) Publish(eventType string, data interface{}) {
	payload, err := b.envelope(eventType, data)
	if err != nil {
		log.Errorf("[Broker.Publish] unable to marshal %s event: %s", eventType, err)
		return
	}
	if err := b.Conn.Publish(comm.EventsTopic, payload); err != nil {
		log.Errorf("Error publishing to topic %s: %s", comm.EventsTopic, err)
	}
}

func (b *Broker) envelope(msgType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&comm.Message{
		Type:     msgType,
		Data:     raw,
		Instance: b.Instance,
		SentAt:   time.Now().UTC(),
	})
}

// consume control requests (Queue); one instance of the group handles each request
func (b *Broker) QueueSubscribeService() (*nats.Subscription, error) {
	sub, err := b.Conn.QueueSubscribe(comm.ServiceTopic, comm.ServiceQueue, b.handleMessage)
	if err != nil {
		return nil, err
	}
	log.Infof("listening on %s (queue %s)", comm.ServiceTopic, comm.ServiceQueue)
	return sub, nil
}

func (b *Broker) handleMessage(msgNat *nats.Msg) {
	reply := b.dispatch(msgNat.Data)
	if msgNat.Reply == "" {
		return
	}
	payload, err := json.Marshal(reply)
	if err != nil {
		log.Errorf("Error marshalling reply: %s", err)
		return
	}
	if err := msgNat.Respond(payload); err != nil {
		log.Errorf("Error responding on %s: %s", msgNat.Reply, err)
	}
}

func (b *Broker) dispatch(payload []byte) comm.Reply {
	msg := &comm.Message{}
	if err := json.Unmarshal(payload, msg); err != nil {
		log.Errorf("Error nats message %s", err)
		return failed("malformed message")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch msg.Type {
	case comm.RequestMarkAttendance:
		var request comm.MarkAttendanceRequest
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &request); err != nil {
				return failed("malformed mark-attendance request")
			}
		}
		res, err := b.Attendance.SweepAbsent(ctx, request.AdminID)
		if err != nil {
			log.Warnf("Error [AttendanceService.SweepAbsent] %s", err)
			return failed(service.MessageOf(err))
		}
		return succeeded("Attendance marked as Absent for all clients", res)

	case comm.RequestCleanupPayments:
		res, err := b.Payments.Purge(ctx)
		if err != nil {
			log.Warnf("Error [PaymentService.Purge] %s", err)
			return failed(service.MessageOf(err))
		}
		return succeeded("Old payments deleted successfully", res)
	}

	log.Warnf("unknown request type %q", msg.Type)
	return failed("unknown request type " + msg.Type)
}

func succeeded(message string, data interface{}) comm.Reply {
	raw, err := json.Marshal(data)
	if err != nil {
		return failed(err.Error())
	}
	return comm.Reply{Status: comm.StatusOK, Message: message, Data: raw}
}

func failed(message string) comm.Reply {
	return comm.Reply{Status: comm.StatusError, Message: message}
}
