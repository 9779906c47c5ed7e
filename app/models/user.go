package models

import (
	"strings"
	"time"
)

// Role distinguishes shoppers from catalogue administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is an account record. Password holds a bcrypt hash, never plain text,
// and is empty for federated accounts (they authenticate upstream). The hash
// is part of the stored representation: accounts must survive a reload.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      Role      `json:"role"`
	Password  string    `json:"password,omitempty"`
	Federated bool      `json:"federated,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins the name parts for display.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail case-folds an email for uniqueness comparisons.
// No two users may share a case-folded email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
