package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

type User struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name" validate:"required"`
	Email     string               `json:"email" bson:"email" validate:"required,email"`
	Password  string               `json:"password,omitempty" bson:"password" validate:"required,min=6"`
	Phone     string               `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string               `json:"role" bson:"role"`
	Favorites []primitive.ObjectID `json:"favorites" bson:"favorites"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time            `json:"updated_at" bson:"updated_at"`
}

// Public returns a copy safe for API responses, without the credential hash.
func (u User) Public() User {
	u.Password = ""
	return u
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}
