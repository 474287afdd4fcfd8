package auth

import (
	"encoding/json"
	"time"
)

// Admin roles.
const (
	RoleAdmin     = "admin"
	RoleAreaAdmin = "area_admin"
	RoleReviewer  = "reviewer"
	RoleClient    = "client"
)

// Principal types carried on the session.
const (
	TypeAdmin  = "admin"
	TypeClient = "client"
)

const StatusActive = "active"

// Principal is the resolved local identity behind a session. The
// variant is closed: a login resolves to Admin or Client exactly once,
// admin-first, never both.
type Principal interface {
	principal()
}

type Admin struct {
	ID        string
	Email     string
	Name      string
	Role      string
	Areas     []string
	Status    string
	LastLogin time.Time
}

type Client struct {
	ID            string
	Email         string
	Name          string
	FirstName     string
	LastName      string
	Department    string
	Status        string
	EmailVerified bool
	LastLogin     time.Time
}

func (Admin) principal()  {}
func (Client) principal() {}

// DecodeAreas parses the serialized area set stored on an admin row.
// Anything that does not decode to a string list yields an empty set;
// a malformed column must not block a login.
func DecodeAreas(raw string) []string {
	if raw == "" {
		return []string{}
	}

	var areas []string
	if err := json.Unmarshal([]byte(raw), &areas); err != nil {
		return []string{}
	}
	if areas == nil {
		return []string{}
	}
	return areas
}

// EncodeAreas is the inverse of DecodeAreas.
func EncodeAreas(areas []string) string {
	if areas == nil {
		areas = []string{}
	}
	data, err := json.Marshal(areas)
	if err != nil {
		return "[]"
	}
	return string(data)
}
