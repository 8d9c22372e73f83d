package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. Only RoleUser and RolePublisher may be chosen at
// registration; RoleAdmin is assigned out of band.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// User is the aggregate root for the account domain.
// Password always holds a bcrypt hash once the user has been persisted and is
// never serialized to JSON.
type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Role                string             `bson:"role" json:"role"`
	Password            string             `bson:"password" json:"-"`
	ResetPasswordToken  string             `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordExpire time.Time          `bson:"resetPasswordExpire,omitempty" json:"-"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// Owns reports whether the user owns the resource identified by ownerID, or
// may act on it anyway because they are an admin.
func (u *User) Owns(ownerID primitive.ObjectID) bool {
	return u.ID == ownerID || u.IsAdmin()
}
