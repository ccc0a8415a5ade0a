package domain

import "time"

// WordAttempt is one answer given by the learner.
// A session is fully described by its vocabulary and its attempts.
type WordAttempt struct {
	Word      Word
	TypedWord string
	Success   bool
	Time      time.Time
}
