package lifecycle

import "time"

// IsEditable reports whether the teacher may still amend their own session:
// the status must be early and uncommitted, and the record younger than the
// configured grace period.
func IsEditable(s Session, now time.Time, windowMinutes int) bool {
	if s.Status != StatusSubmitted && s.Status != StatusIncomplete {
		return false
	}
	return withinEditWindow(s.CreatedAt, now, windowMinutes)
}

func withinEditWindow(createdAt, now time.Time, windowMinutes int) bool {
	if windowMinutes <= 0 {
		windowMinutes = DefaultEditWindowMinutes
	}
	return now.Sub(createdAt) <= time.Duration(windowMinutes)*time.Minute
}
