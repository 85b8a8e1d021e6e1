package lifecycle

// transitions is the single source of truth for who may move a session where.
// Both enforcement (Transition) and the "available actions" API read it, so
// displayed and enforced permissions cannot drift apart.
//
// Principal's edge set is a strict superset of Secretary's plus validation
// and rejection; Admin holds the union of both. The Principal/Admin override
// (any non-terminal → REJECTED) is folded into each row rather than
// special-cased at evaluation time.
var transitions = map[Status]map[Role][]Status{
	StatusSubmitted: {
		RoleTeacher:   {},
		RoleSecretary: {StatusReviewed, StatusPendingDocuments, StatusIncomplete, StatusRejected},
		RolePrincipal: {StatusReviewed, StatusPendingDocuments, StatusIncomplete, StatusRejected, StatusValidated},
		RoleAdmin:     {StatusReviewed, StatusPendingDocuments, StatusIncomplete, StatusRejected, StatusValidated},
	},
	StatusIncomplete: {
		RoleTeacher:   {StatusSubmitted},
		RolePrincipal: {StatusRejected},
		RoleAdmin:     {StatusRejected},
	},
	StatusPendingDocuments: {
		RoleTeacher:   {StatusSubmitted},
		RoleSecretary: {StatusReviewed},
		RolePrincipal: {StatusReviewed, StatusRejected},
		RoleAdmin:     {StatusReviewed, StatusRejected},
	},
	StatusReviewed: {
		RoleTeacher:   {StatusSubmitted}, // pull back for edits, window-guarded
		RolePrincipal: {StatusValidated, StatusRejected},
		RoleAdmin:     {StatusValidated, StatusRejected},
	},
	StatusValidated: {
		RoleSecretary: {StatusReadyForPayment},
		RolePrincipal: {StatusRejected},
		RoleAdmin:     {StatusReadyForPayment, StatusRejected},
	},
	StatusReadyForPayment: {
		RoleSecretary: {StatusPaid},
		RolePrincipal: {StatusRejected},
		RoleAdmin:     {StatusPaid, StatusRejected},
	},
	// PAID and REJECTED are terminal — no outgoing transitions.
}

// AllowedNext returns the statuses the given role may move the session to.
// The returned slice is a copy; callers may reorder it freely.
func AllowedNext(current Status, role Role) []Status {
	byRole, ok := transitions[current]
	if !ok {
		return nil
	}
	next, ok := byRole[role]
	if !ok || len(next) == 0 {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the (current, requested) edge exists for role.
func CanTransition(current, requested Status, role Role) bool {
	for _, s := range AllowedNext(current, role) {
		if s == requested {
			return true
		}
	}
	return false
}

// CommentRequired reports whether the target status demands a non-empty
// comment (rejection reason, or what documents are missing).
func CommentRequired(requested Status) bool {
	return requested == StatusRejected || requested == StatusPendingDocuments
}
