package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	Languages  []string
	CreatedAt  time.Time
}

// Speaks reports whether the user knows the language with the given code
func (u User) Speaks(code string) bool {
	for _, l := range u.Languages {
		if l == code {
			return true
		}
	}
	return false
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle     UserState = "idle"
	StateLearning UserState = "learning"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State     UserState
	SessionID int64
}
