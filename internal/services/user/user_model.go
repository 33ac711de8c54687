package user

import (
	"strings"
	"time"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"fullname"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	IsStaff      bool      `db:"is_staff" json:"is_staff"`
	DateJoined   time.Time `db:"date_joined" json:"date_joined"`
}

// Brief is the compact user projection embedded in board/task responses.
type Brief struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
}

// NewBrief projects a user row into a Brief. Nil in, nil out.
func NewBrief(u *User) *Brief {
	if u == nil {
		return nil
	}

	return BriefFromParts(BriefParts{
		ID:       u.ID,
		Email:    u.Email,
		Fullname: u.FullName,
	})
}

// BriefParts carries loose user fields, e.g. scanned from a LEFT JOIN,
// for callers that do not hold a full User row.
type BriefParts struct {
	ID        int64
	Email     string
	Fullname  string
	FirstName string
	LastName  string
	Username  string
}

// BriefFromParts normalizes loose fields into a Brief. The full name is
// resolved as: explicit fullname, then composed first+last, then the
// username fallback, then empty string.
func BriefFromParts(p BriefParts) *Brief {
	fullname := strings.TrimSpace(p.Fullname)
	if fullname == "" {
		fullname = strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	}
	if fullname == "" {
		fullname = strings.TrimSpace(p.Username)
	}

	return &Brief{
		ID:       p.ID,
		Email:    p.Email,
		Fullname: fullname,
	}
}

// RegisterRequest captures payload for registering a user
type RegisterRequest struct {
	Fullname         string `json:"fullname"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	RepeatedPassword string `json:"repeated_password"`
}

// LoginRequest captures payload for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by both registration and login.
type AuthResponse struct {
	Token    string `json:"token"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	UserID   int64  `json:"user_id"`
}
