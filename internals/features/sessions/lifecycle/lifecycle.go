package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the in-memory view of a claim record the state machine operates
// on. It is loaded from and saved through the repository; this package never
// touches storage itself.
type Session struct {
	ID           uuid.UUID
	Type         SessionType
	OriginalType SessionType // snapshot at creation, never changes
	Date         time.Time
	TimeSlot     TimeSlot

	TeacherID   uuid.UUID
	TeacherName string
	InPacte     bool

	Status  Status
	Payload Payload

	CreatedAt time.Time
	UpdatedAt time.Time
	UpdatedBy string

	ReviewedBy      string
	ReviewedAt      *time.Time
	ValidatedBy     string
	ValidatedAt     *time.Time
	RejectionReason string
	Comment         string
}

// Actor identifies who is requesting a transition.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

// Event is what the notification sink receives after a successful transition.
type Event struct {
	SessionID uuid.UUID
	TeacherID uuid.UUID
	From      Status
	To        Status
	ActorRole Role
	ActorName string
	Comment   string
	At        time.Time
}

// DefaultEditWindowMinutes is the fallback for the edit_window_minutes
// system setting.
const DefaultEditWindowMinutes = 60

// Transition validates and applies one status change, returning the updated
// session and the lifecycle event to emit. The input session is not mutated.
//
// Guard order: same-status check, edge lookup, required comment, teacher
// edit window, payload completeness on the way into REVIEWED.
func Transition(s Session, requested Status, actor Actor, comment string, now time.Time, windowMinutes int) (Session, Event, error) {
	if requested == s.Status {
		// A no-op request is invalid; real self-edits go through the session
		// update path, which tracks field changes, not through the machine.
		return s, Event{}, fmt.Errorf("%w: session already %s", ErrIllegalTransition, s.Status)
	}
	if _, err := ParseStatus(string(requested)); err != nil {
		return s, Event{}, fmt.Errorf("%w: %v", ErrIllegalTransition, err)
	}

	if !CanTransition(s.Status, requested, actor.Role) {
		return s, Event{}, fmt.Errorf("%w: %s may not move %s -> %s",
			ErrIllegalTransition, actor.Role, s.Status, requested)
	}

	if CommentRequired(requested) && isBlank(comment) {
		return s, Event{}, fmt.Errorf("%w: target %s", ErrMissingRequiredComment, requested)
	}

	// Teacher pulling a reviewed session back is only allowed while the
	// record is still fresh.
	if actor.Role == RoleTeacher && s.Status == StatusReviewed && requested == StatusSubmitted {
		if !withinEditWindow(s.CreatedAt, now, windowMinutes) {
			return s, Event{}, fmt.Errorf("%w: created %s", ErrEditWindowExpired, s.CreatedAt.Format(time.RFC3339))
		}
	}

	if requested == StatusReviewed && !IsComplete(s) {
		return s, Event{}, fmt.Errorf("%w: type %s", ErrIncompletePayload, s.OriginalType)
	}

	out := s
	from := s.Status
	out.Status = requested
	out.UpdatedAt = now
	out.UpdatedBy = actor.Name
	if comment != "" {
		out.Comment = comment
	}

	switch requested {
	case StatusReviewed:
		at := now
		out.ReviewedBy = actor.Name
		out.ReviewedAt = &at
	case StatusValidated:
		at := now
		out.ValidatedBy = actor.Name
		out.ValidatedAt = &at
	case StatusRejected:
		out.RejectionReason = comment
	}

	ev := Event{
		SessionID: s.ID,
		TeacherID: s.TeacherID,
		From:      from,
		To:        requested,
		ActorRole: actor.Role,
		ActorName: actor.Name,
		Comment:   comment,
		At:        now,
	}
	return out, ev, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
