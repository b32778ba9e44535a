package dto

import (
	"time"

	"news_backend/internal/feature/auth/domain/entity"
)

// SignupResp returns the id of the new user.
type SignupResp struct {
	ID uint `json:"id"`
}

// UserResp is the public view of a user.
type UserResp struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResp drops the password hash.
func NewUserResp(u *entity.User) UserResp {
	return UserResp{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}

// LoginResp carries the session token for clients that do not keep cookies.
type LoginResp struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserResp  `json:"user"`
}

// SessionResp describes one active login.
type SessionResp struct {
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Current   bool      `json:"current"`
}
