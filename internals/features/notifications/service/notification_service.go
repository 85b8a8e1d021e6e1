package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/notifications/model"
	"supchaissac_backend/internals/features/sessions/lifecycle"
)

// NotificationService persists lifecycle events as in-app notifications for
// the session's teacher. It satisfies the session service's NotificationSink
// port.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// statusLabels are the user-facing French labels, matching the frontend.
var statusLabels = map[lifecycle.Status]string{
	lifecycle.StatusSubmitted:        "Soumise",
	lifecycle.StatusIncomplete:       "Incomplète",
	lifecycle.StatusPendingDocuments: "En attente de documents",
	lifecycle.StatusReviewed:         "Vérifiée",
	lifecycle.StatusValidated:        "Validée",
	lifecycle.StatusReadyForPayment:  "Prête pour paiement",
	lifecycle.StatusPaid:             "Payée",
	lifecycle.StatusRejected:         "Rejetée",
}

func statusLabel(s lifecycle.Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

func buildMessage(ev lifecycle.Event) string {
	msg := fmt.Sprintf("Votre séance est passée au statut « %s »", statusLabel(ev.To))
	if ev.ActorName != "" {
		msg += fmt.Sprintf(" (par %s)", ev.ActorName)
	}
	if ev.Comment != "" {
		msg += " : " + ev.Comment
	}
	return msg
}

// Notify writes one notification row for the teacher. Teachers acting on
// their own sessions (resubmit, edit) do not get notified.
func (s *NotificationService) Notify(ctx context.Context, ev lifecycle.Event) error {
	if ev.ActorRole == lifecycle.RoleTeacher {
		return nil
	}
	row := model.NotificationModel{
		NotificationID: uuid.New(),
		UserID:         ev.TeacherID,
		SessionID:      ev.SessionID,
		FromStatus:     string(ev.From),
		ToStatus:       string(ev.To),
		ActorName:      ev.ActorName,
		Message:        buildMessage(ev),
		CreatedAt:      ev.At,
	}
	return s.DB.WithContext(ctx).Create(&row).Error
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, offset, limit int) ([]model.NotificationModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.NotificationModel
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// MarkRead flags one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of the user as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
