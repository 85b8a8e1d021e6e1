package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsEditable(t *testing.T) {
	base := newSession(StatusSubmitted)

	tests := []struct {
		name    string
		status  Status
		age     time.Duration
		window  int
		want    bool
	}{
		{"fresh submitted", StatusSubmitted, 10 * time.Minute, 60, true},
		{"fresh incomplete", StatusIncomplete, 10 * time.Minute, 60, true},
		{"exactly at window", StatusSubmitted, 60 * time.Minute, 60, true},
		{"just past window", StatusSubmitted, 61 * time.Minute, 60, false},
		{"two hours old, default window", StatusSubmitted, 2 * time.Hour, 60, false},
		{"reviewed is locked even when fresh", StatusReviewed, 1 * time.Minute, 60, false},
		{"paid is locked", StatusPaid, 1 * time.Minute, 60, false},
		{"custom short window", StatusSubmitted, 20 * time.Minute, 15, false},
		{"zero window falls back to default", StatusSubmitted, 30 * time.Minute, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			s.Status = tt.status
			s.CreatedAt = now.Add(-tt.age)
			assert.Equal(t, tt.want, IsEditable(s, now, tt.window))
		})
	}
}
