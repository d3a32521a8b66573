// Package auth is the single authorization choke point. Handlers never compare
// role strings themselves; they ask Authorize and act on the decision.
package auth

import (
	"fmt"
	"venuebook/src/types"
)

type Subject struct {
	UserID uint
	Role   types.Role
}

// Resource describes the target of an action. OwnerID is the owning user for
// ownership-scoped resources; TargetRole is set when the resource is a user.
type Resource struct {
	Kind       string
	ID         uint
	OwnerID    uint
	TargetRole types.Role
}

type Action string

const (
	ActionUserRead    Action = "user.read"
	ActionUserDelete  Action = "user.delete"
	ActionUserDisable Action = "user.disable"
	ActionUserEnable  Action = "user.enable"
	ActionVenueRead   Action = "venue.read"
	ActionVenueDelete Action = "venue.delete"
	ActionVenueManage Action = "venue.manage"
	ActionWidgetIssue Action = "widget.issue"
	ActionBookingView Action = "booking.view"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...any) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// Authorize evaluates one subject/action/resource triple. Guards on protected
// roles are checked before any privilege shortcut so that a super admin cannot
// delete or disable another super admin either.
func Authorize(sub Subject, action Action, res Resource) Decision {
	switch action {
	case ActionUserDelete:
		if res.TargetRole == types.ROLE_SUPER_ADMIN {
			return deny("super admin accounts cannot be deleted")
		}
		return requireSuperAdmin(sub)
	case ActionUserDisable:
		if res.TargetRole == types.ROLE_SUPER_ADMIN {
			return deny("super admin accounts cannot be deactivated")
		}
		return requireSuperAdmin(sub)
	case ActionUserEnable, ActionUserRead:
		return requireSuperAdmin(sub)
	case ActionVenueRead, ActionVenueDelete:
		return requireSuperAdmin(sub)
	case ActionVenueManage, ActionWidgetIssue, ActionBookingView:
		if sub.Role == types.ROLE_SUPER_ADMIN {
			return allow()
		}
		if sub.UserID != 0 && sub.UserID == res.OwnerID {
			return allow()
		}
		return deny("%s requires ownership of %s %d", action, res.Kind, res.ID)
	default:
		return deny("unknown action %s", action)
	}
}

func requireSuperAdmin(sub Subject) Decision {
	if sub.Role != types.ROLE_SUPER_ADMIN {
		return deny("role %s is not permitted to perform this action", sub.Role)
	}
	return allow()
}
