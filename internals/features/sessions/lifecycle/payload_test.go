package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadCompleteness(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    bool
	}{
		{"rcd full", RCDPayload{ReplacedTeacher: "Jean Dupont", ClassName: "6A"}, true},
		{"rcd missing class", RCDPayload{ReplacedTeacher: "Jean Dupont"}, false},
		{"rcd whitespace teacher", RCDPayload{ReplacedTeacher: "   ", ClassName: "6A"}, false},
		{"devoirs faits full", DevoirsFaitsPayload{StudentCount: 12, GradeLevel: "5e"}, true},
		{"devoirs faits zero students", DevoirsFaitsPayload{StudentCount: 0, GradeLevel: "5e"}, false},
		{"hse with description", HSEPayload{Description: "surveillance"}, true},
		{"hse empty", HSEPayload{}, false},
		{"autre with description", AutrePayload{Description: "sortie scolaire"}, true},
		{"autre empty", AutrePayload{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.payload.Complete())
		})
	}
}

func TestIsCompleteNilPayload(t *testing.T) {
	s := newSession(StatusSubmitted)
	s.Payload = nil
	assert.False(t, IsComplete(s))
}

func TestPayloadFromJSON(t *testing.T) {
	p, err := PayloadFromJSON(TypeRCD, []byte(`{"replaced_teacher":"Jean Dupont","class_name":"6A"}`))
	require.NoError(t, err)
	rcd, ok := p.(RCDPayload)
	require.True(t, ok)
	assert.Equal(t, "Jean Dupont", rcd.ReplacedTeacher)
	assert.True(t, rcd.Complete())

	p, err = PayloadFromJSON(TypeDevoirsFaits, []byte(`{"student_count":8,"grade_level":"4e"}`))
	require.NoError(t, err)
	df, ok := p.(DevoirsFaitsPayload)
	require.True(t, ok)
	assert.Equal(t, 8, df.StudentCount)

	// empty column decodes to an incomplete variant, not an error
	p, err = PayloadFromJSON(TypeHSE, nil)
	require.NoError(t, err)
	assert.False(t, p.Complete())

	_, err = PayloadFromJSON(SessionType("PRONOTE"), []byte(`{}`))
	assert.Error(t, err)
}

func TestHSEAndAutreAreDistinctVariants(t *testing.T) {
	// HSE is sometimes displayed as AUTRE, but storage keeps them apart.
	hse, err := PayloadFromJSON(TypeHSE, []byte(`{"description":"x"}`))
	require.NoError(t, err)
	autre, err := PayloadFromJSON(TypeAutre, []byte(`{"description":"x"}`))
	require.NoError(t, err)
	assert.IsType(t, HSEPayload{}, hse)
	assert.IsType(t, AutrePayload{}, autre)
}

func TestPayloadRoundTrip(t *testing.T) {
	in := DevoirsFaitsPayload{StudentCount: 15, GradeLevel: "3e"}
	data, err := PayloadToJSON(in)
	require.NoError(t, err)
	out, err := PayloadFromJSON(TypeDevoirsFaits, data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
