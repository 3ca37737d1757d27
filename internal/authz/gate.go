// Package authz decides what an authenticated user may access. The decision
// is separate from authentication on purpose: a PENDING teacher can hold a
// session yet still be denied role content.
package authz

import "github.com/educafacil/educafacil-api/internal/models"

// Verdict is the outcome of gating a user against role content.
type Verdict string

const (
	Allow         Verdict = "ALLOW"
	DenyPending   Verdict = "DENY_PENDING"
	DenySuspended Verdict = "DENY_SUSPENDED"
	DenyRejected  Verdict = "DENY_REJECTED"
	DenyAnonymous Verdict = "DENY_ANONYMOUS"
)

// Allowed reports whether the verdict grants access.
func (v Verdict) Allowed() bool {
	return v == Allow
}

// Decide maps (role, status) to an access verdict. Students and admins are
// active from creation and skip the gate; only teacher accounts carry a
// lifecycle that can deny access.
func Decide(user *models.User) Verdict {
	if user == nil {
		return DenyAnonymous
	}
	if user.Role != models.RoleTeacher {
		return Allow
	}
	switch user.Status {
	case models.StatusActive:
		return Allow
	case models.StatusPending:
		return DenyPending
	case models.StatusSuspended:
		return DenySuspended
	case models.StatusRejected:
		return DenyRejected
	default:
		return DenyPending
	}
}

// transitions encodes the teacher status state machine:
//
//	PENDING --approve--> ACTIVE
//	PENDING --reject---> REJECTED
//	ACTIVE  --suspend--> SUSPENDED
//	SUSPENDED --reactivate--> ACTIVE
//
// REJECTED is terminal: there is no path back.
var transitions = map[models.UserStatus][]models.UserStatus{
	models.StatusPending:   {models.StatusActive, models.StatusRejected},
	models.StatusActive:    {models.StatusSuspended},
	models.StatusSuspended: {models.StatusActive},
	models.StatusRejected:  {},
}

// CanTransition reports whether an administrator may move a teacher account
// from one status to another.
func CanTransition(from, to models.UserStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
