package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"supchaissac_backend/internals/features/sessions/lifecycle"
	"supchaissac_backend/internals/features/sessions/model"
	"supchaissac_backend/internals/features/sessions/repository"
	"supchaissac_backend/pkg/logger"
)

var (
	// ErrNotOwner: a teacher touched a session that is not theirs.
	ErrNotOwner = errors.New("session belongs to another teacher")
	// ErrSessionLocked: the session status no longer admits self-edits.
	ErrSessionLocked = errors.New("session is locked for review")
)

// NotificationSink receives lifecycle events, best effort.
type NotificationSink interface {
	Notify(ctx context.Context, ev lifecycle.Event) error
}

// AttachmentStore answers the "has verified attachments?" guard.
type AttachmentStore interface {
	HasVerifiedAttachments(ctx context.Context, sessionID uuid.UUID) (bool, error)
}

// SettingsProvider exposes the system settings the lifecycle consumes.
type SettingsProvider interface {
	EditWindowMinutes(ctx context.Context) int
	RequireAttachmentsForValidation(ctx context.Context) bool
}

// maxConflictRetries bounds the reload-and-revalidate loop when the
// optimistic write loses the race.
const maxConflictRetries = 3

type SessionService struct {
	repo        repository.SessionRepository
	notifier    NotificationSink
	attachments AttachmentStore
	settings    SettingsProvider
	log         *zap.Logger
	now         func() time.Time
}

func NewSessionService(
	repo repository.SessionRepository,
	notifier NotificationSink,
	attachments AttachmentStore,
	settings SettingsProvider,
	log *zap.Logger,
) *SessionService {
	return &SessionService{
		repo:        repo,
		notifier:    notifier,
		attachments: attachments,
		settings:    settings,
		log:         log,
		now:         time.Now,
	}
}

// CreateInput is everything needed to open a new claim. The status is always
// SUBMITTED and originalType is snapshotted from Type.
type CreateInput struct {
	Type        lifecycle.SessionType
	Date        time.Time
	TimeSlot    lifecycle.TimeSlot
	Payload     lifecycle.Payload
	TeacherID   uuid.UUID
	TeacherName string
	InPacte     bool
}

func (s *SessionService) Create(ctx context.Context, in CreateInput) (*model.SessionModel, error) {
	payload, err := lifecycle.PayloadToJSON(in.Payload)
	if err != nil {
		return nil, err
	}
	now := s.now()
	m := &model.SessionModel{
		SessionID:           uuid.New(),
		SessionType:         string(in.Type),
		SessionOriginalType: string(in.Type),
		SessionDate:         in.Date,
		SessionTimeSlot:     string(in.TimeSlot),
		SessionTeacherID:    in.TeacherID,
		SessionTeacherName:  in.TeacherName,
		SessionInPacte:      in.InPacte,
		SessionStatus:       string(lifecycle.StatusSubmitted),
		SessionPayload:      payload,
		SessionUpdatedBy:    in.TeacherName,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	s.log.Info("session created",
		zap.String(logger.FieldSessionID, m.SessionID.String()),
		zap.String(logger.FieldUserID, in.TeacherID.String()),
		zap.String("type", string(in.Type)),
	)
	return m, nil
}

func (s *SessionService) Get(ctx context.Context, id uuid.UUID) (*model.SessionModel, error) {
	return s.repo.Load(ctx, id)
}

func (s *SessionService) List(ctx context.Context, f repository.ListFilter, offset, limit int) ([]model.SessionModel, int64, error) {
	return s.repo.List(ctx, f, offset, limit)
}

// Transition runs one status change end to end: load, validate through the
// state machine, save under the version check, notify. On a lost write race
// it reloads and revalidates, bounded by maxConflictRetries.
func (s *SessionService) Transition(ctx context.Context, id uuid.UUID, requested lifecycle.Status, actor lifecycle.Actor, comment string) (*model.SessionModel, error) {
	window := s.settings.EditWindowMinutes(ctx)

	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		m, err := s.repo.Load(ctx, id)
		if err != nil {
			return nil, err
		}
		// Teachers only drive their own sessions; staff roles act on any.
		if actor.Role == lifecycle.RoleTeacher && m.SessionTeacherID != actor.ID {
			return nil, ErrNotOwner
		}
		dom, err := m.ToDomain()
		if err != nil {
			return nil, err
		}

		next, ev, err := lifecycle.Transition(dom, requested, actor, comment, s.now(), window)
		if err != nil {
			return nil, err
		}

		// The attachment gate sits after the machine so an illegal request is
		// reported as such, never masked as a missing-document failure.
		if requested == lifecycle.StatusValidated && s.settings.RequireAttachmentsForValidation(ctx) {
			ok, err := s.attachments.HasVerifiedAttachments(ctx, id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, lifecycle.ErrMissingVerifiedAttachment
			}
		}
		if err := m.ApplyDomain(next); err != nil {
			return nil, err
		}

		if err := s.repo.Save(ctx, m); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				lastErr = err
				s.log.Warn("transition lost write race, retrying",
					zap.String(logger.FieldSessionID, id.String()),
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			return nil, err
		}

		s.emit(ev)
		return m, nil
	}
	return nil, fmt.Errorf("transition retries exhausted: %w", lastErr)
}

// UpdateInput carries a teacher's self-edit. Nil/zero fields are unchanged.
type UpdateInput struct {
	Date     *time.Time
	TimeSlot *lifecycle.TimeSlot
	Type     *lifecycle.SessionType
	Payload  lifecycle.Payload
}

// UpdateOwn applies a self-edit inside the grace period. originalType is
// untouched even when the display type is corrected.
func (s *SessionService) UpdateOwn(ctx context.Context, id, teacherID uuid.UUID, in UpdateInput) (*model.SessionModel, error) {
	m, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.SessionTeacherID != teacherID {
		return nil, ErrNotOwner
	}
	dom, err := m.ToDomain()
	if err != nil {
		return nil, err
	}

	window := s.settings.EditWindowMinutes(ctx)
	now := s.now()
	if !lifecycle.IsEditable(dom, now, window) {
		if dom.Status == lifecycle.StatusSubmitted || dom.Status == lifecycle.StatusIncomplete {
			return nil, lifecycle.ErrEditWindowExpired
		}
		return nil, ErrSessionLocked
	}

	if in.Date != nil {
		m.SessionDate = *in.Date
	}
	if in.TimeSlot != nil {
		m.SessionTimeSlot = string(*in.TimeSlot)
	}
	if in.Type != nil {
		m.SessionType = string(*in.Type)
	}
	if in.Payload != nil {
		payload, err := lifecycle.PayloadToJSON(in.Payload)
		if err != nil {
			return nil, err
		}
		m.SessionPayload = payload
	}
	m.SessionUpdatedBy = m.SessionTeacherName
	m.UpdatedAt = now

	if err := s.repo.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteOwn removes a teacher's own session while it is still editable.
func (s *SessionService) DeleteOwn(ctx context.Context, id, teacherID uuid.UUID) error {
	m, err := s.repo.Load(ctx, id)
	if err != nil {
		return err
	}
	if m.SessionTeacherID != teacherID {
		return ErrNotOwner
	}
	dom, err := m.ToDomain()
	if err != nil {
		return err
	}
	if !lifecycle.IsEditable(dom, s.now(), s.settings.EditWindowMinutes(ctx)) {
		if dom.Status == lifecycle.StatusSubmitted || dom.Status == lifecycle.StatusIncomplete {
			return lifecycle.ErrEditWindowExpired
		}
		return ErrSessionLocked
	}
	return s.repo.Delete(ctx, id)
}

// IsEditable reports whether the teacher edit window is still open for the
// row, using the configured window.
func (s *SessionService) IsEditable(ctx context.Context, m *model.SessionModel) bool {
	dom, err := m.ToDomain()
	if err != nil {
		return false
	}
	return lifecycle.IsEditable(dom, s.now(), s.settings.EditWindowMinutes(ctx))
}

// AllowedActions returns the next statuses the caller's role may request,
// straight from the same table enforcement uses.
func (s *SessionService) AllowedActions(ctx context.Context, id uuid.UUID, role lifecycle.Role) ([]lifecycle.Status, error) {
	m, err := s.repo.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	status, err := lifecycle.ParseStatus(m.SessionStatus)
	if err != nil {
		return nil, err
	}
	return lifecycle.AllowedNext(status, role), nil
}

// emit delivers the event to the sink off the request path. A sink failure
// never fails the transition.
func (s *SessionService) emit(ev lifecycle.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.notifier.Notify(ctx, ev); err != nil {
			s.log.Warn("notification sink failed",
				zap.String(logger.FieldSessionID, ev.SessionID.String()),
				zap.Error(err),
			)
		}
	}()
}
