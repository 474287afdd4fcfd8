package session

import (
	"context"
	"time"
)

// Session is the server-side record behind one browser's cookie. It is
// written wholesale at login (never merged) and deleted at logout; the
// authorization claims on it are owned exclusively by the login flow.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	UserName  string    `json:"user_name"`
	UserType  string    `json:"user_type"` // "admin" or "client"
	UserRole  string    `json:"user_role"`
	UserAreas []string  `json:"user_areas,omitempty"` // admin only
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute expiry time
}

// Store defines how sessions are stored and retrieved. Implementations
// must remain stateless and opaque; lookup by session id only.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s Session) error
	Delete(ctx context.Context, sessionID string) error
}
