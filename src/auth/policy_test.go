package auth

import (
	"testing"
	"venuebook/src/types"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeUserActions(t *testing.T) {
	superAdmin := Subject{UserID: 1, Role: types.ROLE_SUPER_ADMIN}
	admin := Subject{UserID: 2, Role: types.ROLE_ADMIN}
	owner := Subject{UserID: 3, Role: types.ROLE_VENUE_OWNER}

	t.Run("only super admins manage users", func(t *testing.T) {
		target := Resource{Kind: "user", ID: 10, TargetRole: types.ROLE_CUSTOMER}

		assert.True(t, Authorize(superAdmin, ActionUserDelete, target).Allowed)
		assert.True(t, Authorize(superAdmin, ActionUserDisable, target).Allowed)
		assert.True(t, Authorize(superAdmin, ActionUserEnable, target).Allowed)
		assert.False(t, Authorize(admin, ActionUserDelete, target).Allowed)
		assert.False(t, Authorize(owner, ActionUserRead, target).Allowed)
	})

	t.Run("super admin accounts are protected from everyone", func(t *testing.T) {
		target := Resource{Kind: "user", ID: 11, TargetRole: types.ROLE_SUPER_ADMIN}

		del := Authorize(superAdmin, ActionUserDelete, target)
		assert.False(t, del.Allowed)
		assert.Contains(t, del.Reason, "cannot be deleted")

		dis := Authorize(superAdmin, ActionUserDisable, target)
		assert.False(t, dis.Allowed)
		assert.Contains(t, dis.Reason, "cannot be deactivated")
	})

	t.Run("denials carry a reason", func(t *testing.T) {
		d := Authorize(owner, ActionUserDelete, Resource{Kind: "user", ID: 12})
		assert.False(t, d.Allowed)
		assert.NotEmpty(t, d.Reason)
	})
}

func TestAuthorizeOwnershipActions(t *testing.T) {
	venue := Resource{Kind: "venue", ID: 5, OwnerID: 3}

	t.Run("the owner manages their venue", func(t *testing.T) {
		owner := Subject{UserID: 3, Role: types.ROLE_VENUE_OWNER}
		assert.True(t, Authorize(owner, ActionVenueManage, venue).Allowed)
		assert.True(t, Authorize(owner, ActionWidgetIssue, venue).Allowed)
		assert.True(t, Authorize(owner, ActionBookingView, venue).Allowed)
	})

	t.Run("a different owner is denied", func(t *testing.T) {
		other := Subject{UserID: 4, Role: types.ROLE_VENUE_OWNER}
		d := Authorize(other, ActionVenueManage, venue)
		assert.False(t, d.Allowed)
		assert.NotEmpty(t, d.Reason)
	})

	t.Run("super admins bypass ownership", func(t *testing.T) {
		superAdmin := Subject{UserID: 1, Role: types.ROLE_SUPER_ADMIN}
		assert.True(t, Authorize(superAdmin, ActionVenueManage, venue).Allowed)
		assert.True(t, Authorize(superAdmin, ActionVenueDelete, venue).Allowed)
	})

	t.Run("an anonymous subject never matches owner zero", func(t *testing.T) {
		anon := Subject{}
		d := Authorize(anon, ActionVenueManage, Resource{Kind: "venue", ID: 6, OwnerID: 0})
		assert.False(t, d.Allowed)
	})
}

func TestAuthorizeUnknownAction(t *testing.T) {
	d := Authorize(Subject{UserID: 1, Role: types.ROLE_SUPER_ADMIN}, Action("venue.fly"), Resource{})
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Reason, "unknown action")
}
