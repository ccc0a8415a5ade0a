package domain

import "time"

// Day represents a day with the number of answers given
type Day struct {
	Date         time.Time
	AttemptCount int
	SuccessCount int
}

// DateString returns date in YYYYMMDD format
func (d Day) DateString() string {
	return d.Date.Format("20060102")
}

// Accuracy returns the share of right answers given that day, in percent
func (d Day) Accuracy() float64 {
	if d.AttemptCount == 0 {
		return 100.0
	}
	return float64(d.SuccessCount) / float64(d.AttemptCount) * 100.0
}

// DisplayString returns user-friendly date string
func (d Day) DisplayString() string {
	now := time.Now()
	date := d.Date

	if sameDay(date, now) {
		return "Today"
	}

	if sameDay(date, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}

	return date.Format("2 Jan 2006")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
