package model

import (
	"time"

	"github.com/google/uuid"
)

// AttachmentModel is one supporting document attached to a session
// (signed attendance sheet, convocation, ...). Images are normalized to WebP
// on upload; PDFs are stored as-is.
type AttachmentModel struct {
	AttachmentID uuid.UUID  `json:"attachment_id" gorm:"column:attachment_id;type:uuid;primaryKey"`
	SessionID    uuid.UUID  `json:"session_id" gorm:"column:session_id;type:uuid;not null;index"`
	FileName     string     `json:"file_name" gorm:"column:file_name;type:varchar(255);not null"`
	OriginalName string     `json:"original_name" gorm:"column:original_name;type:varchar(255);not null"`
	ContentType  string     `json:"content_type" gorm:"column:content_type;type:varchar(100);not null"`
	SizeBytes    int64      `json:"size_bytes" gorm:"column:size_bytes;not null"`
	IsVerified   bool       `json:"is_verified" gorm:"column:is_verified;default:false;index"`
	VerifiedBy   string     `json:"verified_by,omitempty" gorm:"column:verified_by;type:varchar(100)"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty" gorm:"column:verified_at"`
	IsArchived   bool       `json:"is_archived" gorm:"column:is_archived;default:false"`
	UploadedBy   uuid.UUID  `json:"uploaded_by" gorm:"column:uploaded_by;type:uuid;not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (AttachmentModel) TableName() string {
	return "session_attachments"
}
