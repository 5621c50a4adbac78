package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/agent-admin/internal/domain"
)

// OptionalID is a JSON team reference that remembers whether the field was
// present. Numbers and numeric strings set an id; null and "" clear it.
type OptionalID struct {
	Set   bool
	Value *int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Value = nil

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	raw := string(trimmed)
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("teamId must be an integer: %w", err)
	}
	o.Value = &id
	return nil
}

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Role     string     `json:"role"`
	TeamID   OptionalID `json:"teamId"`
}

// UpdateUserRequest is the payload for PUT /api/users/:id. Absent fields
// are left unchanged.
type UpdateUserRequest struct {
	Username *string    `json:"username"`
	FullName *string    `json:"fullName"`
	Role     *string    `json:"role"`
	TeamID   OptionalID `json:"teamId"`
	Status   *string    `json:"status"`
	IsActive *bool      `json:"isActive"`
}

// UserResponse is the public user representation.
type UserResponse struct {
	ID        int64       `json:"id"`
	Username  string      `json:"username"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	TeamID    *int64      `json:"teamId"`
	TeamName  *string     `json:"teamName"`
	IsActive  bool        `json:"isActive"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		TeamID:    u.TeamID,
		TeamName:  u.TeamName,
		IsActive:  u.IsActive,
		Status:    string(u.Status()),
		CreatedAt: u.CreatedAt,
	}
}

// NewUserResponses converts a slice of domain users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// ProfileResponse is the subset of user fields returned on login.
type ProfileResponse struct {
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	FullName string      `json:"fullName"`
	Role     domain.Role `json:"role"`
	TeamID   *int64      `json:"teamId"`
	TeamName *string     `json:"teamName"`
}

// NewProfileResponse converts a domain user.
func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		TeamID:   u.TeamID,
		TeamName: u.TeamName,
	}
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success   bool            `json:"success"`
	User      ProfileResponse `json:"user"`
	Token     string          `json:"token"`
	ExpiresIn string          `json:"expiresIn"`
	ExpiresAt time.Time       `json:"expiresAt"`
}
