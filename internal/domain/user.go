package domain

import "time"

// UserStatus is the wire representation of the active flag.
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// MinFullNameLength is the shortest accepted full name, after trimming.
const MinFullNameLength = 2

// User is an agent record joined with its team.
type User struct {
	ID        int64
	Username  string
	FullName  string
	Role      Role
	TeamID    *int64
	TeamName  *string
	IsActive  bool
	CreatedAt time.Time
}

// Status maps the active flag to its display value.
func (u *User) Status() UserStatus {
	if u.IsActive {
		return UserStatusActive
	}
	return UserStatusInactive
}

// StatusActive parses a display status. The second value is false for
// anything other than Active or Inactive.
func StatusActive(status UserStatus) (bool, bool) {
	switch status {
	case UserStatusActive:
		return true, true
	case UserStatusInactive:
		return false, true
	default:
		return false, false
	}
}
