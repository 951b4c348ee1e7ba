package models

import "time"

// Session correlates an opaque cookie/bearer token with an identity.
// The persisted field name for the token is "cookie", kept for
// compatibility with existing session documents.
type Session struct {
	Token     string    `bson:"cookie" json:"cookie"`
	Username  string    `bson:"username" json:"username"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at,omitempty" json:"created_at,omitempty"`
	ExpiresAt time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// Expired reports whether the session has an expiry in the past. Sessions
// without an expiry never expire (legacy documents).
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}
