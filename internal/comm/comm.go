package comm

import (
	"encoding/json"
	"time"
)

const (
	// EventsTopic carries domain events published by the gym service.
	EventsTopic = "gym.events"
	// ServiceTopic carries control requests answered by the gym service.
	ServiceTopic = "gym.service"
	// ServiceQueue is the queue group gym service instances share on ServiceTopic.
	ServiceQueue = "gymsvc"
)

// event types published on EventsTopic
const (
	EventClientOnboarded = "client-onboarded"
	EventAttendanceSwept = "attendance-swept"
	EventPaymentRecorded = "payment-recorded"
	EventPaymentsPurged  = "payments-purged"
)

// request types accepted on ServiceTopic
const (
	RequestMarkAttendance  = "mark-attendance"
	RequestCleanupPayments = "cleanup-payments"
)

// Message is the envelope of every payload exchanged over NATS.
type Message struct {
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
	Instance string          `json:"instance,omitempty"` // publishing service instance
	SentAt   time.Time       `json:"sent_at"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Reply answers a request received on ServiceTopic.
type Reply struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type MarkAttendanceRequest struct {
	AdminID string `json:"adminId"`
}

type SweepResult struct {
	TotalClients int `json:"totalClients"`
	Marked       int `json:"marked"`
}

type PurgeResult struct {
	Deleted int64     `json:"deleted"`
	Cutoff  time.Time `json:"cutoff"`
}

type ClientOnboarded struct {
	ClientID string `json:"clientId"`
	AdminID  string `json:"adminId"`
	Name     string `json:"name"`
	Date     string `json:"date"`
}

type AttendanceSwept struct {
	AdminID string `json:"adminId"`
	Date    string `json:"date"`
	SweepResult
}

type PaymentRecorded struct {
	PaymentID string `json:"paymentId"`
	ClientID  string `json:"clientId"`
	AdminID   string `json:"adminId"`
	Amount    string `json:"amountPaid"`
	Status    string `json:"status"`
}
