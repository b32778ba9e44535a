package entity

import "time"

// Session binds a client to an authenticated user until it is revoked or expires.
type Session struct {
	ID        string     // Random 64-character hex string
	UserID    uint       // Associated user ID
	UserAgent string     // Client's User-Agent header
	IPAddress string     // Client's IP address
	CreatedAt time.Time  // Session creation time
	ExpiresAt time.Time  // Session expiration time
	RevokedAt *time.Time // Logout time (nil while active)
}

// IsExpired reports whether the session has passed its expiration time at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsRevoked returns true if the session has been ended by logout.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsValid returns true if the session is neither expired nor revoked at now.
func (s *Session) IsValid(now time.Time) bool {
	return !s.IsExpired(now) && !s.IsRevoked()
}
