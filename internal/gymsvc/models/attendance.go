package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
)

func (s AttendanceStatus) Valid() bool {
	return s == Present || s == Absent
}

// Attendance is one presence row per client per day. Date is YYYY-MM-DD.
type Attendance struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ClientID   primitive.ObjectID `bson:"clientId" json:"clientId"`
	AdminID    primitive.ObjectID `bson:"adminId" json:"adminId"`
	Date       string             `bson:"date" json:"date"`
	Status     AttendanceStatus   `bson:"status" json:"status"`
	ClientName string             `bson:"clientname" json:"clientname"`
}
