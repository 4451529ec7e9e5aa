// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model (scratch-card player)
type User struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"password,omitempty" bson:"password"`
	FullName       string             `json:"fullName" bson:"fullName"`
	Phone          string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Balance        float64            `json:"balance" bson:"balance"`
	TotalWagered   float64            `json:"totalWagered" bson:"totalWagered"` // lifetime wagered, drives level progression
	TotalDeposits  float64            `json:"totalDeposits" bson:"totalDeposits"`
	ReferredBy     string             `json:"referredBy,omitempty" bson:"referredBy,omitempty"` // affiliate or partner code used at signup
	IsActive       bool               `json:"isActive" bson:"isActive"`
	LastActivityAt time.Time          `json:"lastActivityAt" bson:"lastActivityAt"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// LoginRequest is the shared login payload for affiliates, partners and admins
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Response model
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
