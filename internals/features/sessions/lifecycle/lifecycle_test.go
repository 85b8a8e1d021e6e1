package lifecycle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

func newSession(status Status) Session {
	return Session{
		ID:           uuid.New(),
		Type:         TypeRCD,
		OriginalType: TypeRCD,
		Date:         now.Truncate(24 * time.Hour),
		TimeSlot:     SlotM2,
		TeacherID:    uuid.New(),
		TeacherName:  "Sophie Martin",
		Status:       status,
		Payload:      RCDPayload{ReplacedTeacher: "Jean Dupont", ClassName: "6A"},
		CreatedAt:    now.Add(-10 * time.Minute),
		UpdatedAt:    now.Add(-10 * time.Minute),
	}
}

func actor(role Role) Actor {
	return Actor{ID: uuid.New(), Name: string(role) + " user", Role: role}
}

func TestSameStatusIsIllegal(t *testing.T) {
	// Scenario A: a no-op request is not a valid self-edit.
	s := newSession(StatusSubmitted)
	_, _, err := Transition(s, StatusSubmitted, actor(RoleTeacher), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestSecretaryReview(t *testing.T) {
	// Scenario B: complete session reviewed by the secretary.
	s := newSession(StatusSubmitted)
	sec := actor(RoleSecretary)

	out, ev, err := Transition(s, StatusReviewed, sec, "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusReviewed, out.Status)
	assert.Equal(t, sec.Name, out.ReviewedBy)
	require.NotNil(t, out.ReviewedAt)
	assert.Equal(t, now, *out.ReviewedAt)
	assert.Equal(t, StatusSubmitted, ev.From)
	assert.Equal(t, StatusReviewed, ev.To)
	assert.Equal(t, s.TeacherID, ev.TeacherID)

	// input not mutated
	assert.Equal(t, StatusSubmitted, s.Status)
}

func TestRejectionNeedsComment(t *testing.T) {
	// Scenario C
	s := newSession(StatusSubmitted)
	_, _, err := Transition(s, StatusRejected, actor(RoleSecretary), "  ", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrMissingRequiredComment)

	out, _, err := Transition(s, StatusRejected, actor(RoleSecretary), "pièce illisible", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, "pièce illisible", out.RejectionReason)
}

func TestPendingDocumentsNeedsComment(t *testing.T) {
	s := newSession(StatusSubmitted)
	_, _, err := Transition(s, StatusPendingDocuments, actor(RoleSecretary), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrMissingRequiredComment)
}

func TestPrincipalValidatesReviewed(t *testing.T) {
	// Scenario D
	s := newSession(StatusReviewed)
	pr := actor(RolePrincipal)

	out, _, err := Transition(s, StatusValidated, pr, "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusValidated, out.Status)
	assert.Equal(t, pr.Name, out.ValidatedBy)
	require.NotNil(t, out.ValidatedAt)
}

func TestPrincipalDirectValidateShortcut(t *testing.T) {
	s := newSession(StatusSubmitted)
	_, _, err := Transition(s, StatusValidated, actor(RolePrincipal), "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)

	// Secretary has no such shortcut.
	_, _, err = Transition(s, StatusValidated, actor(RoleSecretary), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTeacherPullBackWithinWindow(t *testing.T) {
	s := newSession(StatusReviewed)
	out, _, err := Transition(s, StatusSubmitted, actor(RoleTeacher), "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, out.Status)
}

func TestTeacherPullBackExpiredWindow(t *testing.T) {
	// Scenario E analogue on the REVIEWED -> SUBMITTED edge.
	s := newSession(StatusReviewed)
	s.CreatedAt = now.Add(-2 * time.Hour)
	_, _, err := Transition(s, StatusSubmitted, actor(RoleTeacher), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrEditWindowExpired)
}

func TestPaymentPipeline(t *testing.T) {
	// Scenario F: VALIDATED -> READY_FOR_PAYMENT -> PAID, no way back.
	s := newSession(StatusValidated)
	sec := actor(RoleSecretary)

	s1, _, err := Transition(s, StatusReadyForPayment, sec, "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusReadyForPayment, s1.Status)

	s2, _, err := Transition(s1, StatusPaid, sec, "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s2.Status)

	_, _, err = Transition(s2, StatusValidated, sec, "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTerminalStatesHaveNoEdges(t *testing.T) {
	roles := []Role{RoleTeacher, RoleSecretary, RolePrincipal, RoleAdmin}
	targets := []Status{
		StatusSubmitted, StatusIncomplete, StatusPendingDocuments, StatusReviewed,
		StatusValidated, StatusReadyForPayment, StatusPaid, StatusRejected,
	}
	for _, terminal := range []Status{StatusPaid, StatusRejected} {
		for _, r := range roles {
			assert.Empty(t, AllowedNext(terminal, r))
			for _, target := range targets {
				if target == terminal {
					continue
				}
				_, _, err := Transition(newSession(terminal), target, actor(r), "reason", now, DefaultEditWindowMinutes)
				assert.ErrorIs(t, err, ErrIllegalTransition, "%s: %s -> %s", r, terminal, target)
			}
		}
	}
}

func TestIncompletePayloadBlocksReview(t *testing.T) {
	s := newSession(StatusSubmitted)
	s.Payload = RCDPayload{} // nothing filled in
	_, _, err := Transition(s, StatusReviewed, actor(RoleSecretary), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err, ErrIncompletePayload)

	// PENDING_DOCUMENTS stays open for the same session.
	_, _, err = Transition(s, StatusPendingDocuments, actor(RoleSecretary), "attestation manquante", now, DefaultEditWindowMinutes)
	assert.NoError(t, err)
}

func TestPrincipalOverrideReject(t *testing.T) {
	for _, st := range []Status{StatusIncomplete, StatusPendingDocuments, StatusValidated, StatusReadyForPayment} {
		out, _, err := Transition(newSession(st), StatusRejected, actor(RolePrincipal), "doublon", now, DefaultEditWindowMinutes)
		require.NoError(t, err, "override from %s", st)
		assert.Equal(t, StatusRejected, out.Status)

		// Secretary has no override outside her own rows.
		if st == StatusValidated || st == StatusReadyForPayment || st == StatusIncomplete {
			_, _, err = Transition(newSession(st), StatusRejected, actor(RoleSecretary), "doublon", now, DefaultEditWindowMinutes)
			assert.ErrorIs(t, err, ErrIllegalTransition, "secretary reject from %s", st)
		}
	}
}

func TestTransitionNeverMutatesOriginalType(t *testing.T) {
	s := newSession(StatusSubmitted)
	s.Type = TypeHSE
	s.OriginalType = TypeHSE
	s.Payload = HSEPayload{Description: "surveillance examen"}

	out, _, err := Transition(s, StatusReviewed, actor(RoleSecretary), "", now, DefaultEditWindowMinutes)
	require.NoError(t, err)
	assert.Equal(t, TypeHSE, out.OriginalType)
	assert.Equal(t, TypeHSE, out.Type)
}

func TestFailedTransitionIsIdempotent(t *testing.T) {
	s := newSession(StatusSubmitted)
	_, _, err1 := Transition(s, StatusPaid, actor(RoleTeacher), "", now, DefaultEditWindowMinutes)
	_, _, err2 := Transition(s, StatusPaid, actor(RoleTeacher), "", now, DefaultEditWindowMinutes)
	assert.ErrorIs(t, err1, ErrIllegalTransition)
	assert.ErrorIs(t, err2, ErrIllegalTransition)
	assert.Equal(t, StatusSubmitted, s.Status)
}

func TestTransitionMatchesTableExactly(t *testing.T) {
	// For every (current, requested, role) triple, Transition succeeds iff the
	// table has the edge (given a comment and a complete payload).
	statuses := []Status{
		StatusSubmitted, StatusIncomplete, StatusPendingDocuments, StatusReviewed,
		StatusValidated, StatusReadyForPayment, StatusPaid, StatusRejected,
	}
	roles := []Role{RoleTeacher, RoleSecretary, RolePrincipal, RoleAdmin}

	for _, cur := range statuses {
		for _, req := range statuses {
			if cur == req {
				continue
			}
			for _, r := range roles {
				_, _, err := Transition(newSession(cur), req, actor(r), "motif", now, DefaultEditWindowMinutes)
				if CanTransition(cur, req, r) {
					assert.NoError(t, err, "%s: %s -> %s", r, cur, req)
				} else {
					assert.ErrorIs(t, err, ErrIllegalTransition, "%s: %s -> %s", r, cur, req)
				}
			}
		}
	}
}

func TestAdminIsUnionOfSecretaryAndPrincipal(t *testing.T) {
	statuses := []Status{
		StatusSubmitted, StatusIncomplete, StatusPendingDocuments, StatusReviewed,
		StatusValidated, StatusReadyForPayment,
	}
	for _, cur := range statuses {
		union := map[Status]bool{}
		for _, r := range []Role{RoleSecretary, RolePrincipal} {
			for _, s := range AllowedNext(cur, r) {
				union[s] = true
			}
		}
		got := map[Status]bool{}
		for _, s := range AllowedNext(cur, RoleAdmin) {
			got[s] = true
		}
		assert.Equal(t, union, got, "admin edges from %s", cur)
	}
}

func TestPrincipalSupersetOfSecretary(t *testing.T) {
	statuses := []Status{
		StatusSubmitted, StatusIncomplete, StatusPendingDocuments, StatusReviewed,
	}
	for _, cur := range statuses {
		principal := map[Status]bool{}
		for _, s := range AllowedNext(cur, RolePrincipal) {
			principal[s] = true
		}
		for _, s := range AllowedNext(cur, RoleSecretary) {
			assert.True(t, principal[s], "principal missing secretary edge %s -> %s", cur, s)
		}
	}
}
