package lifecycle

import "errors"

// All lifecycle failures are deterministic validation failures: surfaced to
// the caller as 4xx responses, never retried inside the core.
var (
	ErrIllegalTransition        = errors.New("illegal transition")
	ErrMissingRequiredComment   = errors.New("a comment is required for this transition")
	ErrEditWindowExpired        = errors.New("edit window has expired")
	ErrIncompletePayload        = errors.New("session payload is incomplete for its type")
	ErrMissingVerifiedAttachment = errors.New("validation requires a verified attachment")
)
