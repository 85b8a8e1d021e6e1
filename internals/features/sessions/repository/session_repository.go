package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"supchaissac_backend/internals/features/sessions/model"
)

var (
	// ErrNotFound: unknown session id (or soft-deleted).
	ErrNotFound = errors.New("session not found")
	// ErrConflict: the row changed under us; caller reloads and retries.
	ErrConflict = errors.New("session was modified concurrently")
)

// ListFilter narrows session listings. Zero values mean "no filter".
type ListFilter struct {
	Status    string
	Type      string
	TeacherID uuid.UUID
	Month     string // "2026-03"
}

// SessionRepository is the persistence port of the lifecycle service.
type SessionRepository interface {
	Load(ctx context.Context, id uuid.UUID) (*model.SessionModel, error)
	Create(ctx context.Context, m *model.SessionModel) error
	// Save persists under optimistic concurrency: the UPDATE is conditional
	// on the version the row was loaded with, and bumps it on success.
	Save(ctx context.Context, m *model.SessionModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f ListFilter, offset, limit int) ([]model.SessionModel, int64, error)
}

type GormSessionRepository struct {
	db *gorm.DB
}

func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

func (r *GormSessionRepository) Load(ctx context.Context, id uuid.UUID) (*model.SessionModel, error) {
	var m model.SessionModel
	err := r.db.WithContext(ctx).Where("session_id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *GormSessionRepository) Create(ctx context.Context, m *model.SessionModel) error {
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	m.SessionVersion = 1
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *GormSessionRepository) Save(ctx context.Context, m *model.SessionModel) error {
	loadedVersion := m.SessionVersion

	res := r.db.WithContext(ctx).Model(&model.SessionModel{}).
		Where("session_id = ? AND session_version = ?", m.SessionID, loadedVersion).
		Updates(map[string]interface{}{
			"session_type":             m.SessionType,
			"session_status":           m.SessionStatus,
			"session_date":             m.SessionDate,
			"session_time_slot":        m.SessionTimeSlot,
			"session_teacher_name":     m.SessionTeacherName,
			"session_in_pacte":         m.SessionInPacte,
			"session_payload":          m.SessionPayload,
			"session_comment":          m.SessionComment,
			"session_rejection_reason": m.SessionRejectionReason,
			"session_reviewed_by":      m.SessionReviewedBy,
			"session_reviewed_at":      m.SessionReviewedAt,
			"session_validated_by":     m.SessionValidatedBy,
			"session_validated_at":     m.SessionValidatedAt,
			"session_updated_by":       m.SessionUpdatedBy,
			"session_version":          loadedVersion + 1,
			"updated_at":               m.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the id is gone or someone bumped the version first.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.SessionModel{}).
			Where("session_id = ?", m.SessionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return fmt.Errorf("%w: session %s version %d", ErrConflict, m.SessionID, loadedVersion)
	}
	m.SessionVersion = loadedVersion + 1
	return nil
}

func (r *GormSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("session_id = ?", id).Delete(&model.SessionModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormSessionRepository) List(ctx context.Context, f ListFilter, offset, limit int) ([]model.SessionModel, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.SessionModel{})

	if f.Status != "" {
		q = q.Where("session_status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("session_type = ?", f.Type)
	}
	if f.TeacherID != uuid.Nil {
		q = q.Where("session_teacher_id = ?", f.TeacherID)
	}
	if f.Month != "" {
		if start, err := time.Parse("2006-01", f.Month); err == nil {
			q = q.Where("session_date >= ? AND session_date < ?", start, start.AddDate(0, 1, 0))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.SessionModel
	if err := q.Order("session_date DESC, created_at DESC").
		Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
