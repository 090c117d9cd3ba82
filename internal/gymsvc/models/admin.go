package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a gym owner account. Clients, attendance and payments are scoped under it.
type Admin struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	AdminName     string             `bson:"AdminName" json:"AdminName"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"` // bcrypt hash
	MobileNumber  string             `bson:"mobile_Number" json:"mobile_Number"`
	BussinessName string             `bson:"bussiness_name" json:"bussiness_name"`
	Address       string             `bson:"address" json:"address"`
}

const (
	DefaultAdminName     = "New Admin"
	DefaultBussinessName = "Your Business"
	DefaultAddress       = "Not Set"
)

// AdminUpdate lists the owner fields that may be patched. Nil fields are left untouched.
type AdminUpdate struct {
	AdminName     *string
	Email         *string
	MobileNumber  *string
	BussinessName *string
	Address       *string
}

func (u AdminUpdate) Empty() bool {
	return u.AdminName == nil && u.Email == nil && u.MobileNumber == nil && u.BussinessName == nil && u.Address == nil
}
