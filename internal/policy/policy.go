package policy

import "ratehub/internal/models"

// Action is a gated operation against the system.
type Action string

const (
	ActionManageUsers      Action = "manage_users"
	ActionManageStores     Action = "manage_stores"
	ActionViewDashboard    Action = "view_dashboard"
	ActionBrowseStores     Action = "browse_stores"
	ActionSubmitRating     Action = "submit_rating"
	ActionViewOwnRating    Action = "view_own_rating"
	ActionDeleteOwnRating  Action = "delete_own_rating"
	ActionViewStoreAverage Action = "view_store_average"
	ActionViewStoreRatings Action = "view_store_ratings"
)

var allowed = map[models.Role]map[Action]bool{
	models.RoleAdmin: {
		ActionManageUsers:   true,
		ActionManageStores:  true,
		ActionViewDashboard: true,
		ActionBrowseStores:  true,
	},
	models.RoleNormalUser: {
		ActionBrowseStores:     true,
		ActionSubmitRating:     true,
		ActionViewOwnRating:    true,
		ActionDeleteOwnRating:  true,
		ActionViewStoreAverage: true,
	},
	models.RoleStoreOwner: {
		ActionViewStoreAverage: true,
		ActionViewStoreRatings: true,
	},
}

// CanPerform reports whether the role is allowed to perform the action.
// Admins do not rate stores; there is no role mixing.
func CanPerform(role models.Role, action Action) bool {
	return allowed[role][action]
}

// OwnsStore binds a requested store to the caller. Store owner dashboards
// must deny access to any store the caller does not own, even by guessed id.
func OwnsStore(store *models.Store, userID string) bool {
	return store != nil && userID != "" && store.OwnerID == userID
}
