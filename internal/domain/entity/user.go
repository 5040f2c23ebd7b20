package entity

import (
	"time"
)

// User represents a registered account on the platform
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         UserRole  `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleStudent    UserRole = "student"
	UserRoleInstructor UserRole = "instructor"
	UserRoleAdmin      UserRole = "admin"
)

func DefaultRole() UserRole {
	return UserRoleStudent
}

// IsValid reports whether r is one of the closed set of roles.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleStudent, UserRoleInstructor, UserRoleAdmin:
		return true
	}
	return false
}

// ParseRole converts s to a UserRole, rejecting anything outside the enum.
func ParseRole(s string) (UserRole, bool) {
	r := UserRole(s)
	return r, r.IsValid()
}

// ProfileUpdate carries the optional fields of a self-service profile edit.
// A nil field is left unchanged; an empty ProfileImage clears the image.
type ProfileUpdate struct {
	FirstName    *string
	LastName     *string
	ProfileImage *string
}

// UserPage is one page of users ordered newest first.
type UserPage struct {
	Users []User
	Page  Page
}
