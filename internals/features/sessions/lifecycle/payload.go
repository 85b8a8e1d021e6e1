package lifecycle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the type-specific part of a session, a tagged union keyed by the
// session's originalType. Each variant carries only its own fields so the
// completeness check stays exhaustive instead of a pile of optional lookups.
type Payload interface {
	// Complete reports whether every field the variant requires is filled.
	Complete() bool
	isPayload()
}

// RCDPayload describes a short-term replacement lesson.
type RCDPayload struct {
	ReplacedTeacher string `json:"replaced_teacher"`
	ClassName       string `json:"class_name"`
	Subject         string `json:"subject,omitempty"`
}

func (p RCDPayload) Complete() bool {
	return strings.TrimSpace(p.ReplacedTeacher) != "" && strings.TrimSpace(p.ClassName) != ""
}
func (RCDPayload) isPayload() {}

// DevoirsFaitsPayload describes a supervised homework-help session.
type DevoirsFaitsPayload struct {
	StudentCount int    `json:"student_count"`
	GradeLevel   string `json:"grade_level"`
}

func (p DevoirsFaitsPayload) Complete() bool {
	return p.StudentCount > 0 && strings.TrimSpace(p.GradeLevel) != ""
}
func (DevoirsFaitsPayload) isPayload() {}

// HSEPayload describes effective overtime hours.
type HSEPayload struct {
	Description string `json:"description"`
}

func (p HSEPayload) Complete() bool { return strings.TrimSpace(p.Description) != "" }
func (HSEPayload) isPayload()       {}

// AutrePayload describes miscellaneous activities. Some front-end views fold
// HSE into AUTRE; the distinction lives only here, never in the state machine.
type AutrePayload struct {
	Description string `json:"description"`
}

func (p AutrePayload) Complete() bool { return strings.TrimSpace(p.Description) != "" }
func (AutrePayload) isPayload()       {}

// PayloadFromJSON decodes the stored JSONB column into the variant matching
// the session's originalType.
func PayloadFromJSON(t SessionType, data []byte) (Payload, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch t {
	case TypeRCD:
		var p RCDPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode RCD payload: %w", err)
		}
		return p, nil
	case TypeDevoirsFaits:
		var p DevoirsFaitsPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode DEVOIRS_FAITS payload: %w", err)
		}
		return p, nil
	case TypeHSE:
		var p HSEPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode HSE payload: %w", err)
		}
		return p, nil
	case TypeAutre:
		var p AutrePayload
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("decode AUTRE payload: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown session type %q", t)
	}
}

// PayloadToJSON is the inverse of PayloadFromJSON.
func PayloadToJSON(p Payload) ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p)
}

// IsComplete is the completeness predicate gating the path into REVIEWED.
// A nil payload is never complete.
func IsComplete(s Session) bool {
	return s.Payload != nil && s.Payload.Complete()
}
