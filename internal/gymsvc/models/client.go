package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentType string

const (
	PaymentMonthly   PaymentType = "Monthly"
	PaymentQuarterly PaymentType = "Quarterly"
	PaymentYearly    PaymentType = "Yearly"
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentMonthly, PaymentQuarterly, PaymentYearly:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
	PaymentOverdue PaymentStatus = "Overdue"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}

// Client is a gym member. AdminID is fixed at creation.
type Client struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AdminID       primitive.ObjectID `bson:"adminId" json:"adminId"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash
	DateOfJoining time.Time          `bson:"dateOfJoining" json:"dateOfJoining"`
	PaymentType   PaymentType        `bson:"paymentType" json:"paymentType"`
	PaymentStatus PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
}

// ClientUpdate lists the member fields that may be patched. Password is already hashed.
type ClientUpdate struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func (u ClientUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Password == nil
}
