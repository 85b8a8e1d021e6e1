package dto

import (
	"encoding/json"
	"time"

	"supchaissac_backend/internals/features/sessions/lifecycle"
	"supchaissac_backend/internals/features/sessions/model"
)

// =======================
// Requests
// =======================

// CreateSessionRequest opens a new claim. Payload fields are flat; only the
// ones matching session_type are read.
type CreateSessionRequest struct {
	Type     string `json:"session_type" validate:"required,oneof=RCD DEVOIRS_FAITS HSE AUTRE"`
	Date     string `json:"session_date" validate:"required,datetime=2006-01-02"`
	TimeSlot string `json:"session_time_slot" validate:"required,oneof=M1 M2 M3 M4 S1 S2 S3 S4"`

	// RCD
	ReplacedTeacher string `json:"replaced_teacher,omitempty"`
	ClassName       string `json:"class_name,omitempty"`
	Subject         string `json:"subject,omitempty"`
	// DEVOIRS_FAITS
	StudentCount int    `json:"student_count,omitempty"`
	GradeLevel   string `json:"grade_level,omitempty"`
	// HSE / AUTRE
	Description string `json:"description,omitempty"`
}

func (r CreateSessionRequest) ParsedDate() (time.Time, error) {
	return time.Parse("2006-01-02", r.Date)
}

// ToPayload builds the variant for the requested type.
func (r CreateSessionRequest) ToPayload() (lifecycle.Payload, error) {
	t, err := lifecycle.ParseSessionType(r.Type)
	if err != nil {
		return nil, err
	}
	switch t {
	case lifecycle.TypeRCD:
		return lifecycle.RCDPayload{
			ReplacedTeacher: r.ReplacedTeacher,
			ClassName:       r.ClassName,
			Subject:         r.Subject,
		}, nil
	case lifecycle.TypeDevoirsFaits:
		return lifecycle.DevoirsFaitsPayload{
			StudentCount: r.StudentCount,
			GradeLevel:   r.GradeLevel,
		}, nil
	case lifecycle.TypeHSE:
		return lifecycle.HSEPayload{Description: r.Description}, nil
	default:
		return lifecycle.AutrePayload{Description: r.Description}, nil
	}
}

// UpdateSessionRequest is a teacher self-edit; nil fields stay unchanged.
type UpdateSessionRequest struct {
	Date     *string `json:"session_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TimeSlot *string `json:"session_time_slot,omitempty" validate:"omitempty,oneof=M1 M2 M3 M4 S1 S2 S3 S4"`
	Type     *string `json:"session_type,omitempty" validate:"omitempty,oneof=RCD DEVOIRS_FAITS HSE AUTRE"`

	ReplacedTeacher *string `json:"replaced_teacher,omitempty"`
	ClassName       *string `json:"class_name,omitempty"`
	Subject         *string `json:"subject,omitempty"`
	StudentCount    *int    `json:"student_count,omitempty"`
	GradeLevel      *string `json:"grade_level,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// HasPayloadChange reports whether any type-specific field was sent.
func (r UpdateSessionRequest) HasPayloadChange() bool {
	return r.ReplacedTeacher != nil || r.ClassName != nil || r.Subject != nil ||
		r.StudentCount != nil || r.GradeLevel != nil || r.Description != nil
}

// MergePayload overlays the request onto the current payload of originalType.
func (r UpdateSessionRequest) MergePayload(current lifecycle.Payload) lifecycle.Payload {
	switch p := current.(type) {
	case lifecycle.RCDPayload:
		if r.ReplacedTeacher != nil {
			p.ReplacedTeacher = *r.ReplacedTeacher
		}
		if r.ClassName != nil {
			p.ClassName = *r.ClassName
		}
		if r.Subject != nil {
			p.Subject = *r.Subject
		}
		return p
	case lifecycle.DevoirsFaitsPayload:
		if r.StudentCount != nil {
			p.StudentCount = *r.StudentCount
		}
		if r.GradeLevel != nil {
			p.GradeLevel = *r.GradeLevel
		}
		return p
	case lifecycle.HSEPayload:
		if r.Description != nil {
			p.Description = *r.Description
		}
		return p
	case lifecycle.AutrePayload:
		if r.Description != nil {
			p.Description = *r.Description
		}
		return p
	default:
		return current
	}
}

// TransitionRequest asks for one status change.
type TransitionRequest struct {
	Status  string `json:"status" validate:"required,oneof=SUBMITTED INCOMPLETE PENDING_DOCUMENTS REVIEWED VALIDATED READY_FOR_PAYMENT PAID REJECTED"`
	Comment string `json:"comment,omitempty"`
}

// =======================
// Responses
// =======================

type SessionResponse struct {
	SessionID       string          `json:"session_id"`
	Type            string          `json:"session_type"`
	OriginalType    string          `json:"session_original_type"`
	Date            string          `json:"session_date"`
	TimeSlot        string          `json:"session_time_slot"`
	TeacherID       string          `json:"session_teacher_id"`
	TeacherName     string          `json:"session_teacher_name"`
	InPacte         bool            `json:"session_in_pacte"`
	Status          string          `json:"session_status"`
	Payload         json.RawMessage `json:"session_payload"`
	Comment         string          `json:"session_comment,omitempty"`
	RejectionReason string          `json:"session_rejection_reason,omitempty"`
	ReviewedBy      string          `json:"session_reviewed_by,omitempty"`
	ReviewedAt      *time.Time      `json:"session_reviewed_at,omitempty"`
	ValidatedBy     string          `json:"session_validated_by,omitempty"`
	ValidatedAt     *time.Time      `json:"session_validated_at,omitempty"`
	UpdatedBy       string          `json:"session_updated_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Editable        bool            `json:"editable"`
}

func FromModel(m *model.SessionModel, editable bool) SessionResponse {
	return SessionResponse{
		SessionID:       m.SessionID.String(),
		Type:            m.SessionType,
		OriginalType:    m.SessionOriginalType,
		Date:            m.SessionDate.Format("2006-01-02"),
		TimeSlot:        m.SessionTimeSlot,
		TeacherID:       m.SessionTeacherID.String(),
		TeacherName:     m.SessionTeacherName,
		InPacte:         m.SessionInPacte,
		Status:          m.SessionStatus,
		Payload:         json.RawMessage(m.SessionPayload),
		Comment:         m.SessionComment,
		RejectionReason: m.SessionRejectionReason,
		ReviewedBy:      m.SessionReviewedBy,
		ReviewedAt:      m.SessionReviewedAt,
		ValidatedBy:     m.SessionValidatedBy,
		ValidatedAt:     m.SessionValidatedAt,
		UpdatedBy:       m.SessionUpdatedBy,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		Editable:        editable,
	}
}

func FromModels(ms []model.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i], false))
	}
	return out
}
