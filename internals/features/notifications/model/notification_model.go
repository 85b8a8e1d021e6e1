package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is one in-app notification row, addressed to the teacher
// who owns the session the event happened on.
type NotificationModel struct {
	NotificationID uuid.UUID `json:"notification_id" gorm:"column:notification_id;type:uuid;primaryKey"`
	UserID         uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;not null;index"`
	SessionID      uuid.UUID `json:"session_id" gorm:"column:session_id;type:uuid;not null;index"`
	FromStatus     string    `json:"from_status" gorm:"column:from_status;type:varchar(30);not null"`
	ToStatus       string    `json:"to_status" gorm:"column:to_status;type:varchar(30);not null"`
	ActorName      string    `json:"actor_name" gorm:"column:actor_name;type:varchar(100)"`
	Message        string    `json:"message" gorm:"column:message;type:text;not null"`
	IsRead         bool      `json:"is_read" gorm:"column:is_read;default:false;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
