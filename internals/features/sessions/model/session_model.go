package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/sessions/lifecycle"
)

// SessionModel is the persisted compensation-claim record.
// session_version backs the optimistic-concurrency check in the repository.
type SessionModel struct {
	SessionID           uuid.UUID      `json:"session_id" gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionType         string         `json:"session_type" gorm:"column:session_type;type:varchar(20);not null"`
	SessionOriginalType string         `json:"session_original_type" gorm:"column:session_original_type;type:varchar(20);not null"`
	SessionDate         time.Time      `json:"session_date" gorm:"column:session_date;type:date;not null;index"`
	SessionTimeSlot     string         `json:"session_time_slot" gorm:"column:session_time_slot;type:varchar(2);not null"`

	SessionTeacherID   uuid.UUID `json:"session_teacher_id" gorm:"column:session_teacher_id;type:uuid;not null;index"`
	SessionTeacherName string    `json:"session_teacher_name" gorm:"column:session_teacher_name;type:varchar(100);not null"`
	SessionInPacte     bool      `json:"session_in_pacte" gorm:"column:session_in_pacte;not null;default:false"`

	SessionStatus  string         `json:"session_status" gorm:"column:session_status;type:varchar(20);not null;default:'SUBMITTED';index"`
	SessionPayload datatypes.JSON `json:"session_payload" gorm:"column:session_payload;type:jsonb"`

	SessionComment         string     `json:"session_comment" gorm:"column:session_comment;type:text"`
	SessionRejectionReason string     `json:"session_rejection_reason,omitempty" gorm:"column:session_rejection_reason;type:text"`
	SessionReviewedBy      string     `json:"session_reviewed_by,omitempty" gorm:"column:session_reviewed_by;type:varchar(100)"`
	SessionReviewedAt      *time.Time `json:"session_reviewed_at,omitempty" gorm:"column:session_reviewed_at"`
	SessionValidatedBy     string     `json:"session_validated_by,omitempty" gorm:"column:session_validated_by;type:varchar(100)"`
	SessionValidatedAt     *time.Time `json:"session_validated_at,omitempty" gorm:"column:session_validated_at"`
	SessionUpdatedBy       string     `json:"session_updated_by,omitempty" gorm:"column:session_updated_by;type:varchar(100)"`

	SessionVersion int `json:"session_version" gorm:"column:session_version;not null;default:1"`

	CreatedAt time.Time      `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain maps the row into the lifecycle view, decoding the JSONB payload
// into the variant for the original type.
func (m *SessionModel) ToDomain() (lifecycle.Session, error) {
	origType, err := lifecycle.ParseSessionType(m.SessionOriginalType)
	if err != nil {
		return lifecycle.Session{}, err
	}
	status, err := lifecycle.ParseStatus(m.SessionStatus)
	if err != nil {
		return lifecycle.Session{}, err
	}
	payload, err := lifecycle.PayloadFromJSON(origType, m.SessionPayload)
	if err != nil {
		return lifecycle.Session{}, err
	}

	return lifecycle.Session{
		ID:              m.SessionID,
		Type:            lifecycle.SessionType(m.SessionType),
		OriginalType:    origType,
		Date:            m.SessionDate,
		TimeSlot:        lifecycle.TimeSlot(m.SessionTimeSlot),
		TeacherID:       m.SessionTeacherID,
		TeacherName:     m.SessionTeacherName,
		InPacte:         m.SessionInPacte,
		Status:          status,
		Payload:         payload,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		UpdatedBy:       m.SessionUpdatedBy,
		ReviewedBy:      m.SessionReviewedBy,
		ReviewedAt:      m.SessionReviewedAt,
		ValidatedBy:     m.SessionValidatedBy,
		ValidatedAt:     m.SessionValidatedAt,
		RejectionReason: m.SessionRejectionReason,
		Comment:         m.SessionComment,
	}, nil
}

// ApplyDomain writes a transitioned lifecycle view back onto the row.
// session_original_type is deliberately left alone.
func (m *SessionModel) ApplyDomain(s lifecycle.Session) error {
	payload, err := lifecycle.PayloadToJSON(s.Payload)
	if err != nil {
		return err
	}
	m.SessionType = string(s.Type)
	m.SessionStatus = string(s.Status)
	m.SessionPayload = payload
	m.SessionComment = s.Comment
	m.SessionRejectionReason = s.RejectionReason
	m.SessionReviewedBy = s.ReviewedBy
	m.SessionReviewedAt = s.ReviewedAt
	m.SessionValidatedBy = s.ValidatedBy
	m.SessionValidatedAt = s.ValidatedAt
	m.SessionUpdatedBy = s.UpdatedBy
	m.UpdatedAt = s.UpdatedAt
	return nil
}
