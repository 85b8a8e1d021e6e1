// Package lifecycle owns the approval state machine for compensation-claim
// sessions.
//
// Status graph (happy path left to right):
//
//	SUBMITTED ──► REVIEWED ──► VALIDATED ──► READY_FOR_PAYMENT ──► PAID
//	    │ ▲            │            ▲
//	    │ └─ PENDING_DOCUMENTS / INCOMPLETE (teacher completes, resubmits)
//	    └──────────────┴──► REJECTED
//
// PAID and REJECTED are terminal.
package lifecycle

import "fmt"

// Status values mirror the session_status enum in PostgreSQL.
type Status string

const (
	StatusSubmitted        Status = "SUBMITTED"
	StatusIncomplete       Status = "INCOMPLETE"
	StatusPendingDocuments Status = "PENDING_DOCUMENTS"
	StatusReviewed         Status = "REVIEWED"
	StatusValidated        Status = "VALIDATED"
	StatusReadyForPayment  Status = "READY_FOR_PAYMENT"
	StatusPaid             Status = "PAID"
	StatusRejected         Status = "REJECTED"
)

// ParseStatus converts a raw string to a Status, erroring on unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusSubmitted, StatusIncomplete, StatusPendingDocuments, StatusReviewed,
		StatusValidated, StatusReadyForPayment, StatusPaid, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown session status %q", s)
}

// IsTerminal reports whether the status has no outgoing edges.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusRejected
}

// Role is the authorization input of the state machine. Values match the
// users.role column and the JWT role claim.
type Role string

const (
	RoleTeacher   Role = "TEACHER"
	RoleSecretary Role = "SECRETARY"
	RolePrincipal Role = "PRINCIPAL"
	RoleAdmin     Role = "ADMIN"
)

func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleTeacher, RoleSecretary, RolePrincipal, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// SessionType classifies what kind of work the claim covers.
type SessionType string

const (
	TypeRCD          SessionType = "RCD"
	TypeDevoirsFaits SessionType = "DEVOIRS_FAITS"
	TypeHSE          SessionType = "HSE"
	TypeAutre        SessionType = "AUTRE"
)

func ParseSessionType(s string) (SessionType, error) {
	t := SessionType(s)
	switch t {
	case TypeRCD, TypeDevoirsFaits, TypeHSE, TypeAutre:
		return t, nil
	}
	return "", fmt.Errorf("unknown session type %q", s)
}

// TimeSlot is one of the 8 fixed daily slots (M1–M4 morning, S1–S4 afternoon).
type TimeSlot string

const (
	SlotM1 TimeSlot = "M1"
	SlotM2 TimeSlot = "M2"
	SlotM3 TimeSlot = "M3"
	SlotM4 TimeSlot = "M4"
	SlotS1 TimeSlot = "S1"
	SlotS2 TimeSlot = "S2"
	SlotS3 TimeSlot = "S3"
	SlotS4 TimeSlot = "S4"
)

func ParseTimeSlot(s string) (TimeSlot, error) {
	ts := TimeSlot(s)
	switch ts {
	case SlotM1, SlotM2, SlotM3, SlotM4, SlotS1, SlotS2, SlotS3, SlotS4:
		return ts, nil
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}
