package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"supchaissac_backend/internals/features/sessions/lifecycle"
	"supchaissac_backend/internals/features/sessions/model"
	"supchaissac_backend/internals/features/sessions/repository"
)

// fakeRepo is an in-memory SessionRepository with the same version-CAS
// semantics as the GORM implementation.
type fakeRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]model.SessionModel
	failSave int // fail the next N saves with ErrConflict
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[uuid.UUID]model.SessionModel{}}
}

func (r *fakeRepo) Load(ctx context.Context, id uuid.UUID) (*model.SessionModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := m
	return &out, nil
}

func (r *fakeRepo) Create(ctx context.Context, m *model.SessionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	m.SessionVersion = 1
	r.rows[m.SessionID] = *m
	return nil
}

func (r *fakeRepo) Save(ctx context.Context, m *model.SessionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSave > 0 {
		r.failSave--
		return repository.ErrConflict
	}
	cur, ok := r.rows[m.SessionID]
	if !ok {
		return repository.ErrNotFound
	}
	if cur.SessionVersion != m.SessionVersion {
		return repository.ErrConflict
	}
	m.SessionVersion++
	r.rows[m.SessionID] = *m
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f repository.ListFilter, offset, limit int) ([]model.SessionModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SessionModel
	for _, m := range r.rows {
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

type fakeNotifier struct {
	events chan lifecycle.Event
}

func (n *fakeNotifier) Notify(ctx context.Context, ev lifecycle.Event) error {
	n.events <- ev
	return nil
}

type fakeAttachments struct{ verified bool }

func (a *fakeAttachments) HasVerifiedAttachments(ctx context.Context, _ uuid.UUID) (bool, error) {
	return a.verified, nil
}

type fakeSettings struct {
	window             int
	requireAttachments bool
}

func (s *fakeSettings) EditWindowMinutes(context.Context) int { return s.window }
func (s *fakeSettings) RequireAttachmentsForValidation(context.Context) bool {
	return s.requireAttachments
}

var testNow = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

type fixture struct {
	svc      *SessionService
	repo     *fakeRepo
	notifier *fakeNotifier
	attach   *fakeAttachments
	settings *fakeSettings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:     newFakeRepo(),
		notifier: &fakeNotifier{events: make(chan lifecycle.Event, 16)},
		attach:   &fakeAttachments{verified: true},
		settings: &fakeSettings{window: 60},
	}
	f.svc = NewSessionService(f.repo, f.notifier, f.attach, f.settings, zap.NewNop())
	f.svc.now = func() time.Time { return testNow }
	return f
}

func (f *fixture) createRCD(t *testing.T, teacherID uuid.UUID) *model.SessionModel {
	t.Helper()
	m, err := f.svc.Create(context.Background(), CreateInput{
		Type:        lifecycle.TypeRCD,
		Date:        testNow,
		TimeSlot:    lifecycle.SlotM1,
		Payload:     lifecycle.RCDPayload{ReplacedTeacher: "Jean Dupont", ClassName: "6A"},
		TeacherID:   teacherID,
		TeacherName: "Sophie Martin",
	})
	require.NoError(t, err)
	return m
}

func secretary() lifecycle.Actor {
	return lifecycle.Actor{ID: uuid.New(), Name: "Mme Bernard", Role: lifecycle.RoleSecretary}
}

func TestCreateSetsSubmittedAndSnapshotsType(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())

	assert.Equal(t, string(lifecycle.StatusSubmitted), m.SessionStatus)
	assert.Equal(t, string(lifecycle.TypeRCD), m.SessionOriginalType)
	assert.Equal(t, 1, m.SessionVersion)
}

func TestTransitionPersistsAndNotifies(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())

	out, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusReviewed, secretary(), "")
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusReviewed), out.SessionStatus)
	assert.Equal(t, 2, out.SessionVersion)

	select {
	case ev := <-f.notifier.events:
		assert.Equal(t, lifecycle.StatusSubmitted, ev.From)
		assert.Equal(t, lifecycle.StatusReviewed, ev.To)
		assert.Equal(t, m.SessionID, ev.SessionID)
	case <-time.After(time.Second):
		t.Fatal("no lifecycle event emitted")
	}
}

func TestTransitionRetriesOnConflict(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())
	f.repo.failSave = 2 // lose twice, win on the third load

	out, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusReviewed, secretary(), "")
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusReviewed), out.SessionStatus)
}

func TestTransitionGivesUpAfterBoundedRetries(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())
	f.repo.failSave = maxConflictRetries

	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusReviewed, secretary(), "")
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestTransitionValidationErrorsPassThrough(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())

	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusRejected, secretary(), "")
	assert.ErrorIs(t, err, lifecycle.ErrMissingRequiredComment)

	// failed attempts leave the row untouched
	cur, err := f.repo.Load(context.Background(), m.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusSubmitted), cur.SessionStatus)
	assert.Equal(t, 1, cur.SessionVersion)
}

func TestTransitionUnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Transition(context.Background(), uuid.New(), lifecycle.StatusReviewed, secretary(), "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestValidationAttachmentGate(t *testing.T) {
	f := newFixture(t)
	f.settings.requireAttachments = true
	f.attach.verified = false

	m := f.createRCD(t, uuid.New())
	principal := lifecycle.Actor{ID: uuid.New(), Name: "M. le Principal", Role: lifecycle.RolePrincipal}

	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusValidated, principal, "")
	assert.ErrorIs(t, err, lifecycle.ErrMissingVerifiedAttachment)

	f.attach.verified = true
	out, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusValidated, principal, "")
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusValidated), out.SessionStatus)
}

func TestTransitionWrongTeacherCannotPullBack(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	m := f.createRCD(t, ownerID)

	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusReviewed, secretary(), "")
	require.NoError(t, err)

	intruder := lifecycle.Actor{ID: uuid.New(), Name: "Paul Durand", Role: lifecycle.RoleTeacher}
	_, err = f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusSubmitted, intruder, "")
	assert.ErrorIs(t, err, ErrNotOwner)

	cur, err := f.repo.Load(context.Background(), m.SessionID)
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusReviewed), cur.SessionStatus)

	// the owning teacher may still pull the session back
	owner := lifecycle.Actor{ID: ownerID, Name: "Sophie Martin", Role: lifecycle.RoleTeacher}
	out, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusSubmitted, owner, "")
	require.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusSubmitted), out.SessionStatus)
}

func TestIllegalTransitionReportedBeforeAttachmentGate(t *testing.T) {
	f := newFixture(t)
	f.settings.requireAttachments = true
	f.attach.verified = false

	m := f.createRCD(t, uuid.New())

	// SUBMITTED -> VALIDATED is not a secretary edge; the edge lookup must
	// answer first, not the missing-document gate.
	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusValidated, secretary(), "")
	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)
	assert.NotErrorIs(t, err, lifecycle.ErrMissingVerifiedAttachment)
}

func TestUpdateOwnInsideWindow(t *testing.T) {
	f := newFixture(t)
	teacherID := uuid.New()
	m := f.createRCD(t, teacherID)

	slot := lifecycle.SlotS2
	out, err := f.svc.UpdateOwn(context.Background(), m.SessionID, teacherID, UpdateInput{
		TimeSlot: &slot,
		Payload:  lifecycle.RCDPayload{ReplacedTeacher: "Marie Petit", ClassName: "5B"},
	})
	require.NoError(t, err)
	assert.Equal(t, "S2", out.SessionTimeSlot)
	assert.Equal(t, string(lifecycle.TypeRCD), out.SessionOriginalType)
}

func TestUpdateOwnExpiredWindow(t *testing.T) {
	// Scenario E: two-hour-old session, default 60-minute window.
	f := newFixture(t)
	teacherID := uuid.New()
	m := f.createRCD(t, teacherID)

	f.svc.now = func() time.Time { return testNow.Add(2 * time.Hour) }
	slot := lifecycle.SlotS2
	_, err := f.svc.UpdateOwn(context.Background(), m.SessionID, teacherID, UpdateInput{TimeSlot: &slot})
	assert.ErrorIs(t, err, lifecycle.ErrEditWindowExpired)
}

func TestUpdateOwnWrongTeacher(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())

	slot := lifecycle.SlotS2
	_, err := f.svc.UpdateOwn(context.Background(), m.SessionID, uuid.New(), UpdateInput{TimeSlot: &slot})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestUpdateOwnLockedStatus(t *testing.T) {
	f := newFixture(t)
	teacherID := uuid.New()
	m := f.createRCD(t, teacherID)

	_, err := f.svc.Transition(context.Background(), m.SessionID, lifecycle.StatusReviewed, secretary(), "")
	require.NoError(t, err)

	slot := lifecycle.SlotS2
	_, err = f.svc.UpdateOwn(context.Background(), m.SessionID, teacherID, UpdateInput{TimeSlot: &slot})
	assert.ErrorIs(t, err, ErrSessionLocked)
}

func TestDeleteOwn(t *testing.T) {
	f := newFixture(t)
	teacherID := uuid.New()
	m := f.createRCD(t, teacherID)

	require.NoError(t, f.svc.DeleteOwn(context.Background(), m.SessionID, teacherID))
	_, err := f.repo.Load(context.Background(), m.SessionID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAllowedActionsFollowsTable(t *testing.T) {
	f := newFixture(t)
	m := f.createRCD(t, uuid.New())

	actions, err := f.svc.AllowedActions(context.Background(), m.SessionID, lifecycle.RoleSecretary)
	require.NoError(t, err)
	assert.ElementsMatch(t, []lifecycle.Status{
		lifecycle.StatusReviewed,
		lifecycle.StatusPendingDocuments,
		lifecycle.StatusIncomplete,
		lifecycle.StatusRejected,
	}, actions)

	actions, err = f.svc.AllowedActions(context.Background(), m.SessionID, lifecycle.RoleTeacher)
	require.NoError(t, err)
	assert.Empty(t, actions)
}
