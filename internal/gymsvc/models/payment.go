package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMode string

const (
	ModeCash         PaymentMode = "Cash"
	ModeCard         PaymentMode = "Card"
	ModeUPI          PaymentMode = "UPI"
	ModeBankTransfer PaymentMode = "Bank Transfer"
)

func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeCard, ModeUPI, ModeBankTransfer:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TxCompleted TransactionStatus = "Completed"
	TxPending   TransactionStatus = "Pending"
	TxFailed    TransactionStatus = "Failed"
)

func (s TransactionStatus) Valid() bool {
	switch s {
	case TxCompleted, TxPending, TxFailed:
		return true
	}
	return false
}

// Payment is one billing transaction of a client. PaymentID is the external, unique identifier.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PaymentID     string             `bson:"paymentId" json:"paymentId"`
	ClientID      primitive.ObjectID `bson:"clientId" json:"clientId"`
	AdminID       primitive.ObjectID `bson:"adminId" json:"adminId"`
	AmountPaid    decimal.Decimal    `bson:"amountPaid" json:"amountPaid"`
	TotalAmount   decimal.Decimal    `bson:"totalAmount" json:"totalAmount"`
	DueAmount     decimal.Decimal    `bson:"dueAmount" json:"dueAmount"`
	PaymentDate   time.Time          `bson:"paymentDate" json:"paymentDate"`
	NextDueDate   time.Time          `bson:"nextDueDate" json:"nextDueDate"`
	PaymentMode   PaymentMode        `bson:"paymentMode" json:"paymentMode"`
	TransactionID *string            `bson:"transactionId" json:"transactionId"`
	Status        TransactionStatus  `bson:"status" json:"status"`
	Notes         string             `bson:"notes" json:"notes"`
	ClientName    string             `bson:"clientname" json:"clientname"`
}

// PaymentPatch carries the fields of a partial payment update. Nil fields are left untouched.
type PaymentPatch struct {
	Status      *TransactionStatus
	PaymentMode *PaymentMode
	AmountPaid  *decimal.Decimal
	TotalAmount *decimal.Decimal
	DueAmount   *decimal.Decimal
	PaymentDate *time.Time
	NextDueDate *time.Time
}

func (p PaymentPatch) Empty() bool {
	return p.Status == nil && p.PaymentMode == nil && p.AmountPaid == nil && p.TotalAmount == nil &&
		p.DueAmount == nil && p.PaymentDate == nil && p.NextDueDate == nil
}
