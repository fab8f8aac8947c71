package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleMedicalStaff  = "medical_staff"
	RoleDisposalStaff = "disposal_staff"
)

// User struct matches the document in MongoDB.
// The password hash is never serialized to JSON.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	UserType   string             `bson:"userType" json:"userType"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidUserType reports whether t is one of the two staff roles.
func ValidUserType(t string) bool {
	return t == RoleMedicalStaff || t == RoleDisposalStaff
}
