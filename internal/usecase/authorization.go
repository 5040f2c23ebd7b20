package usecase

import "github.com/mikiasgoitom/Edulearn/internal/domain/entity"

type DenyReason int

const (
	DenyNone DenyReason = iota
	DenyNoIdentity
	DenyRoleNotPermitted
)

// Decision is the outcome of checking an identity against a role set.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Authorize allows user only when it is present and its role is exactly one
// of allowed. Roles outside the known enum never pass.
func Authorize(user *entity.User, allowed ...entity.UserRole) Decision {
	if user == nil {
		return Decision{Reason: DenyNoIdentity}
	}
	if !user.Role.IsValid() {
		return Decision{Reason: DenyRoleNotPermitted}
	}
	for _, r := range allowed {
		if user.Role == r {
			return Decision{Allowed: true}
		}
	}
	return Decision{Reason: DenyRoleNotPermitted}
}
