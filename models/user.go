// models/user.go
package models

import "time"

// AuthProvider identifies how a user authenticates.
const (
	AuthProviderPassword = "password"
	AuthProviderGoogle   = "google"
)

// User represents an account on the platform.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash,omitempty" json:"-"`
	AuthProvider string    `bson:"auth_provider" json:"auth_provider"`
	TokenHash    string    `bson:"token_hash,omitempty" json:"-"` // SHA-256 of the active session token
	DeviceTokens []string  `bson:"device_tokens,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// RegisterRequest is the payload for email/password signup.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

// LoginRequest is the payload for email/password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleSignInRequest carries a Google-issued ID token.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// AuthResponse is returned on successful signup/login.
type AuthResponse struct {
	Token   string  `json:"token"`
	User    User    `json:"user"`
	Profile Profile `json:"profile"`
}
