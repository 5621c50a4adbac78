package domain

import "time"

// Session describes an issued session token.
type Session struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
	Lifetime  time.Duration
}
