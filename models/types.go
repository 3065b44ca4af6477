package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRole enumerates the user roles.
type UserRole string

const (
	UserRoleADMIN UserRole = "admin" // full access, including user management
	UserRoleUSER  UserRole = "user"  // dashboard access only
)

// User is an account of the dashboard.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password" json:"-"` // never returned
	Role      UserRole           `bson:"role" json:"role"`
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updated_at"`
}

// Request and response shapes.
type (
	// LoginRequest is the credential payload.
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse carries the issued token and the user record.
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// CreateUserRequest creates an account.
	CreateUserRequest struct {
		Name     string   `json:"name" binding:"required,min=2"`
		Email    string   `json:"email" binding:"required,email"`
		Password string   `json:"password" binding:"required,min=6"`
		Role     UserRole `json:"role" binding:"required,oneof=admin user"`
	}

	// UpdateUserRequest updates an account; zero values are left untouched.
	UpdateUserRequest struct {
		Name     string   `json:"name" binding:"omitempty,min=2"`
		Email    string   `json:"email" binding:"omitempty,email"`
		Password string   `json:"password" binding:"omitempty,min=6"`
		Role     UserRole `json:"role" binding:"omitempty,oneof=admin user"`
		Active   *bool    `json:"active"`
	}
)
