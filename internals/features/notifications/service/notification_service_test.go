package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"supchaissac_backend/internals/features/sessions/lifecycle"
)

func TestBuildMessage(t *testing.T) {
	ev := lifecycle.Event{
		SessionID: uuid.New(),
		TeacherID: uuid.New(),
		From:      lifecycle.StatusSubmitted,
		To:        lifecycle.StatusReviewed,
		ActorRole: lifecycle.RoleSecretary,
		ActorName: "Mme Martin",
		At:        time.Now(),
	}
	assert.Equal(t, "Votre séance est passée au statut « Vérifiée » (par Mme Martin)", buildMessage(ev))

	ev.To = lifecycle.StatusRejected
	ev.Comment = "Date incohérente"
	assert.Equal(t, "Votre séance est passée au statut « Rejetée » (par Mme Martin) : Date incohérente", buildMessage(ev))

	ev.ActorName = ""
	ev.Comment = ""
	ev.To = lifecycle.StatusPaid
	assert.Equal(t, "Votre séance est passée au statut « Payée »", buildMessage(ev))
}

func TestStatusLabelFallsBackToRawValue(t *testing.T) {
	assert.Equal(t, "Validée", statusLabel(lifecycle.StatusValidated))
	assert.Equal(t, "WEIRD", statusLabel(lifecycle.Status("WEIRD")))
}
